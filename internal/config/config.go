// Package config loads the banner scripts and animation timings from a YAML
// or TOML file, with REVEAL_* environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/csheth/reveal/internal/reveal"
)

// DefaultFile is tried when no -config flag is given.
const DefaultFile = "reveal.yml"

const (
	envTypingMs      = "REVEAL_TYPING_MS"
	envDeletingMs    = "REVEAL_DELETING_MS"
	envPauseMs       = "REVEAL_PAUSE_MS"
	envDeletePauseMs = "REVEAL_DELETE_PAUSE_MS"
	envCaretMs       = "REVEAL_CARET_MS"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("config: unsupported file format")

// File is the on-disk description of the banner.
type File struct {
	Headline   Track      `yaml:"headline" toml:"headline"`
	Tagline    Track      `yaml:"tagline" toml:"tagline"`
	Alternates [][]string `yaml:"alternates" toml:"alternates"`
	Theme      string     `yaml:"theme" toml:"theme"`
}

// Track configures one animated line. Unset timing fields inherit from the
// base config passed to Reveal.
type Track struct {
	Script            []string `yaml:"script" toml:"script"`
	TypingSpeedMs     *int     `yaml:"typing_speed_ms" toml:"typing_speed_ms"`
	DeletingSpeedMs   *int     `yaml:"deleting_speed_ms" toml:"deleting_speed_ms"`
	PostTypePauseMs   *int     `yaml:"post_type_pause_ms" toml:"post_type_pause_ms"`
	PostDeletePauseMs *int     `yaml:"post_delete_pause_ms" toml:"post_delete_pause_ms"`
	CaretIntervalMs   *int     `yaml:"caret_interval_ms" toml:"caret_interval_ms"`
	Repeat            *bool    `yaml:"repeat" toml:"repeat"`
	Swap              string   `yaml:"swap" toml:"swap"`
}

// Load reads path. An empty path tries DefaultFile, and a missing default
// file yields the built-in banner. A missing explicit path is an error.
// A file that sets its own tagline script gets only the alternates it lists.
func Load(path string) (*File, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	defaults := Defaults()
	cfg := Defaults()
	cfg.Tagline.Script = nil
	cfg.Alternates = nil
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	// Built-in alternates only make sense next to the built-in tagline.
	if cfg.Tagline.Script == nil {
		cfg.Tagline.Script = defaults.Tagline.Script
		if cfg.Alternates == nil {
			cfg.Alternates = defaults.Alternates
		}
	}
	return cfg, nil
}

// Defaults is the banner shown when no file is configured.
func Defaults() *File {
	once := false
	return &File{
		Headline: Track{
			Script: []string{"Hi, I'm a developer."},
			Repeat: &once,
		},
		Tagline: Track{
			Script: []string{
				"Software Engineer",
				"Go Enthusiast",
				"Terminal Tinkerer",
				"Lifelong Learner",
			},
		},
		Alternates: [][]string{
			{"Backend Developer", "Systems Programmer"},
			{"Open Source Contributor", "Technical Writer", "Mentor"},
		},
		Theme: "auto",
	}
}

// Reveal overlays the track's timings on base.
func (t Track) Reveal(base reveal.Config) (reveal.Config, error) {
	cfg := base
	setMs(&cfg.TypingSpeed, t.TypingSpeedMs)
	setMs(&cfg.DeletingSpeed, t.DeletingSpeedMs)
	setMs(&cfg.PostTypePause, t.PostTypePauseMs)
	setMs(&cfg.PostDeletePause, t.PostDeletePauseMs)
	setMs(&cfg.CaretInterval, t.CaretIntervalMs)
	if t.Repeat != nil {
		cfg.Repeat = *t.Repeat
	}
	if t.Swap != "" {
		policy, err := reveal.ParseSwapPolicy(t.Swap)
		if err != nil {
			return base, fmt.Errorf("config: %w", err)
		}
		cfg.Swap = policy
	}
	return cfg, nil
}

// RevealScript segments the track's script for animation.
func (t Track) RevealScript() reveal.Script {
	return reveal.NewScript(t.Script...)
}

// ApplyEnv overrides timings from REVEAL_* variables.
func ApplyEnv(cfg reveal.Config) (reveal.Config, error) {
	overrides := []struct {
		name   string
		target *time.Duration
	}{
		{envTypingMs, &cfg.TypingSpeed},
		{envDeletingMs, &cfg.DeletingSpeed},
		{envPauseMs, &cfg.PostTypePause},
		{envDeletePauseMs, &cfg.PostDeletePause},
		{envCaretMs, &cfg.CaretInterval},
	}
	for _, o := range overrides {
		raw := strings.TrimSpace(os.Getenv(o.name))
		if raw == "" {
			continue
		}
		ms, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("config: %s=%q is not a whole number of milliseconds", o.name, raw)
		}
		*o.target = time.Duration(ms) * time.Millisecond
	}
	return cfg, nil
}

// AlternateScripts converts the alternates list.
func (f *File) AlternateScripts() []reveal.Script {
	scripts := make([]reveal.Script, 0, len(f.Alternates))
	for _, lines := range f.Alternates {
		scripts = append(scripts, reveal.NewScript(lines...))
	}
	return scripts
}

func setMs(dst *time.Duration, ms *int) {
	if ms != nil {
		*dst = time.Duration(*ms) * time.Millisecond
	}
}

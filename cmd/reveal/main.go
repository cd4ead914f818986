package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	_ "github.com/joho/godotenv/autoload"

	"github.com/csheth/reveal/internal/config"
	"github.com/csheth/reveal/internal/reveal"
	"github.com/csheth/reveal/internal/tui"
)

const plainCaret = "▌"

func main() {
	configPath := flag.String("config", "", "path to a YAML or TOML banner file (default ./"+config.DefaultFile+" when present)")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	plain := flag.Bool("plain", false, "print the tagline animation to stdout without the TUI")
	once := flag.Bool("once", false, "type the tagline script once instead of looping")
	themeFlag := flag.String("theme", "", "colour theme: auto, light or dark (overrides the config file)")
	logPath := flag.String("log", "", "write debug logs to this file")
	flag.Parse()

	file, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("failed to load config:", err)
		os.Exit(1)
	}
	if args := flag.Args(); len(args) > 0 {
		file.Tagline.Script = args
	}

	headline, err := buildTrack(file.Headline)
	if err != nil {
		fmt.Println("invalid headline:", err)
		os.Exit(1)
	}
	tagline, err := buildTrack(file.Tagline)
	if err != nil {
		fmt.Println("invalid tagline:", err)
		os.Exit(1)
	}
	if *once {
		tagline.Config.Repeat = false
	}

	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "reveal")
		if err != nil {
			fmt.Println("failed to open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	if *plain {
		if err := runPlain(os.Stdout, headline, tagline); err != nil {
			fmt.Println("plain mode error:", err)
			os.Exit(1)
		}
		return
	}

	themeName := file.Theme
	if *themeFlag != "" {
		themeName = *themeFlag
	}
	theme, err := tui.ParseTheme(themeName)
	if err != nil {
		fmt.Println("invalid theme:", err)
		os.Exit(1)
	}
	if theme == tui.ThemeAuto {
		theme = tui.ThemeLight
		if lipgloss.HasDarkBackground() {
			theme = tui.ThemeDark
		}
	}

	opts := []tea.ProgramOption{}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Headline:   headline,
			Tagline:    tagline,
			Alternates: file.AlternateScripts(),
			Theme:      theme,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}

// buildTrack applies the file's per-track timings to the defaults, then lets
// REVEAL_* variables override them.
func buildTrack(track config.Track) (tui.Track, error) {
	cfg, err := track.Reveal(reveal.DefaultConfig())
	if err != nil {
		return tui.Track{}, err
	}
	cfg, err = config.ApplyEnv(cfg)
	if err != nil {
		return tui.Track{}, err
	}
	return tui.Track{Script: track.RevealScript(), Config: cfg}, nil
}

// runPlain prints the headline once and animates the tagline in place until
// it finishes or the process is interrupted.
func runPlain(w io.Writer, headline, tagline tui.Track) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !headline.Script.Empty() {
		if _, err := fmt.Fprintln(w, headline.Script.At(headline.Script.Len()-1)); err != nil {
			return err
		}
	}

	done := make(chan struct{}, 1)
	animator := reveal.NewAnimator(tagline.Script, tagline.Config, reveal.WithObserver(func(f reveal.Frame) {
		caret := " "
		if f.CaretVisible {
			caret = plainCaret
		}
		fmt.Fprint(w, "\r\x1b[K"+f.Text+caret)
		if f.Phase == reveal.Done || f.Phase == reveal.Idle {
			select {
			case done <- struct{}{}:
			default:
			}
		}
	}))
	animator.Start()
	defer animator.Stop()

	select {
	case <-ctx.Done():
	case <-done:
	}
	_, err := fmt.Fprintln(w)
	return err
}

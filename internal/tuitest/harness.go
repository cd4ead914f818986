// Package tuitest drives a terminal program inside a pseudo terminal and
// records what it draws.
package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 100
	defaultHeight  = 30
	defaultTimeout = 5 * time.Second
)

// Step is one scripted interaction: wait Delay, then write Input.
type Step struct {
	Delay time.Duration
	Input []byte
}

// Wait is a step that only sleeps.
func Wait(d time.Duration) Step {
	return Step{Delay: d}
}

// Type is a step that writes s immediately.
func Type(s string) Step {
	return Step{Input: []byte(s)}
}

// Config describes the program to spawn and how to drive it.
type Config struct {
	Command []string
	Dir     string
	// Env is appended to the current environment.
	Env     []string
	Width   int
	Height  int
	Steps   []Step
	Timeout time.Duration
	// AllowedExitCodes are treated as success in addition to 0.
	AllowedExitCodes []int
	AllowInterrupt   bool
}

// Recording is the raw terminal stream plus the frames parsed from it.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	Duration time.Duration
}

// Run starts cfg.Command in a PTY, replays cfg.Steps, waits for the program
// to exit and returns everything it wrote.
func Run(ctx context.Context, cfg Config) (*Recording, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	cfg = withDefaults(cfg)
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(cfg.Height), Cols: uint16(cfg.Width)})
	if err != nil {
		return nil, fmt.Errorf("tuitest: start %s: %w", cfg.Command[0], err)
	}
	defer func() { _ = ptmx.Close() }()

	var output bytes.Buffer
	copyDone := make(chan struct{})
	go func() {
		defer close(copyDone)
		responder := newTerminalResponder(ptmx)
		buf := make([]byte, 4096)
		for {
			n, readErr := ptmx.Read(buf)
			if n > 0 {
				responder.Process(buf[:n])
				output.Write(buf[:n])
			}
			if readErr != nil {
				return
			}
		}
	}()

	start := time.Now()
	if err := replay(ctx, ptmx, cfg.Steps); err != nil {
		return nil, err
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
	}()

	select {
	case err := <-waitErr:
		if !exitAllowed(cfg, err) {
			return nil, fmt.Errorf("tuitest: program exited with error: %w", err)
		}
	case <-ctx.Done():
		return nil, fmt.Errorf("tuitest: timeout waiting for program exit: %w", ctx.Err())
	}

	// Closing the PTY lets the reader goroutine finish draining.
	_ = ptmx.Close()
	<-copyDone

	raw := output.Bytes()
	return &Recording{Raw: raw, Frames: parseFrames(raw), Duration: time.Since(start)}, nil
}

func withDefaults(cfg Config) Config {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return cfg
}

func replay(ctx context.Context, ptmx *os.File, steps []Step) error {
	for i, step := range steps {
		if step.Delay > 0 {
			timer := time.NewTimer(step.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("tuitest: step %d: %w", i, ctx.Err())
			case <-timer.C:
			}
		}
		if len(step.Input) == 0 {
			continue
		}
		if _, err := ptmx.Write(step.Input); err != nil {
			return fmt.Errorf("tuitest: step %d: write input: %w", i, err)
		}
	}
	return nil
}

func exitAllowed(cfg Config, err error) bool {
	if err == nil {
		return true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		for _, code := range cfg.AllowedExitCodes {
			if exitErr.ExitCode() == code {
				return true
			}
		}
	}
	return cfg.AllowInterrupt && strings.Contains(err.Error(), "signal: interrupt")
}

func buildEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}

var (
	// KeyEnter sends a carriage return.
	KeyEnter = []byte{'\r'}
	// KeyCtrlC interrupts the program.
	KeyCtrlC = []byte{3}
	// KeyEsc closes the editor.
	KeyEsc = []byte{27}
)

package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/sandeepkv93/focusd/internal/app"
	"github.com/sandeepkv93/focusd/internal/update"
)

var ErrNoTerminal = errors.New("interactive mode needs a terminal; see focusd --help for the task and stats commands")

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// startTUI builds the App for an interactive session. The logger writes to
// the configured log file so the alternate screen stays clean.
func startTUI(ctx context.Context, env Env, ro *rootOptions) error {
	if !env.IsTerminal() {
		return ErrNoTerminal
	}
	cfg, err := ro.runtimeConfig()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "focusd")
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}

	a, err := app.New(ctx, cfg, app.Options{
		Logger:      slog.New(slog.NewTextHandler(logOut, nil)),
		KV:          env.KV,
		Getenv:      env.Getenv,
		PrefersDark: lipgloss.HasDarkBackground,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			a.Log.Warn("close app", "err", cerr)
		}
	}()
	return env.RunTUI(ctx, a)
}

func runTUI(ctx context.Context, a *app.App) error {
	m := update.NewModel(a)
	defer m.Close()
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

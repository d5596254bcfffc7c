package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/focusd/internal/app"
	"github.com/sandeepkv93/focusd/internal/config"
	"github.com/sandeepkv93/focusd/internal/storage"
)

// Env carries the process dependencies of the command tree. The zero value
// uses the real terminal, environment and configured storage.
type Env struct {
	Out    io.Writer
	Err    io.Writer
	Getenv func(string) string
	// KV replaces the configured storage backend.
	KV storage.KV
	// RunTUI replaces the interactive program.
	RunTUI func(ctx context.Context, a *app.App) error
	// IsTerminal reports whether stdout is an interactive terminal.
	IsTerminal func() bool
}

type rootOptions struct {
	configFile string
	ephemeral  bool
	output     OutputOptions
}

func New(env Env) *cobra.Command {
	if env.Out == nil {
		env.Out = color.Output
	}
	if env.Err == nil {
		env.Err = os.Stderr
	}
	if env.Getenv == nil {
		env.Getenv = os.Getenv
	}
	if env.RunTUI == nil {
		env.RunTUI = runTUI
	}
	if env.IsTerminal == nil {
		env.IsTerminal = stdoutIsTerminal
	}

	ro := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "focusd",
		Short:         "Pomodoro timer and task list for the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return startTUI(cmd.Context(), env, ro)
		},
	}
	cmd.SetOut(env.Out)
	cmd.SetErr(env.Err)
	cmd.PersistentFlags().StringVar(&ro.configFile, "config", "", "Config file (default ./.focusd.yaml).")
	cmd.PersistentFlags().BoolVar(&ro.ephemeral, "ephemeral", false, "Keep state in memory only.")
	AddOutputArg(cmd, &ro.output)

	addTasks(cmd, env, ro)
	addStats(cmd, env, ro)
	addTheme(cmd, env, ro)
	addVersion(cmd, env)
	return cmd
}

// Execute runs the command tree against the real process environment.
func Execute(ctx context.Context) error {
	return New(Env{}).ExecuteContext(ctx)
}

func (ro *rootOptions) runtimeConfig() (config.RuntimeConfig, error) {
	cfg, err := config.Load(config.DefaultRuntimeConfig(), config.LoadOptions{File: ro.configFile})
	if err != nil {
		return cfg, err
	}
	if ro.ephemeral {
		cfg.Storage = storage.DriverMemory
	}
	return cfg, nil
}

// openApp builds an App for a one-shot subcommand. Logs go to stderr and
// completion notifications are disabled.
func openApp(ctx context.Context, env Env, ro *rootOptions) (*app.App, error) {
	cfg, err := ro.runtimeConfig()
	if err != nil {
		return nil, err
	}
	cfg.Bell = false
	cfg.DesktopNotifications = false
	if ctx == nil {
		ctx = context.Background()
	}
	return app.New(ctx, cfg, app.Options{
		Logger: slog.New(slog.NewTextHandler(env.Err, &slog.HandlerOptions{Level: slog.LevelWarn})),
		KV:     env.KV,
		Getenv: env.Getenv,
	})
}

// withApp opens the App, runs fn and closes it again. Errors are rendered
// through the output options.
func withApp(cmd *cobra.Command, env Env, ro *rootOptions, fn func(*app.App) error) error {
	a, err := openApp(cmd.Context(), env, ro)
	if err != nil {
		return ro.output.HandleError(env.Out, err)
	}
	err = fn(a)
	if cerr := a.Close(); err == nil {
		err = cerr
	}
	return ro.output.HandleError(env.Out, err)
}

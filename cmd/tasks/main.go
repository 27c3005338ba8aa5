// Package main implements the tasks CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/amonks/tasks/internal/config"
	"github.com/amonks/tasks/internal/paths"
	"github.com/amonks/tasks/task"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "tasks",
	Short:         "Track tasks in a local JSON file",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr(), rootVerbose)
	},
}

var (
	rootFile    string
	rootVerbose bool

	logger = slog.New(slog.DiscardHandler)
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFile, "file", "f", "", "Task file (default: [storage] file from tasks.toml, or tasks.json)")
	rootCmd.PersistentFlags().BoolVar(&rootVerbose, "verbose", false, "Log debug output to stderr")
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadConfig loads config for the working directory and applies --file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("file") {
		cfg.Storage.File = rootFile
	}
	logger.Debug("loaded config", "file", cfg.Storage.File)
	return cfg, nil
}

// openManager loads config and the task file it names.
func openManager(cmd *cobra.Command) (*task.Manager, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	m, err := task.Open(cfg.Storage.File, task.OpenOptions{Logger: logger})
	if err != nil {
		return nil, nil, err
	}
	return m, cfg, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"photo-viewer/internal/config"
	"photo-viewer/internal/logger"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	stale      string
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&rootOptions{})
}

func buildRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "photo-viewer [files...]",
		Short:        "Desktop photo viewer with rotation and color adjustment",
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, os.Getenv)
			if err != nil {
				return err
			}

			appLogger := logger.New(cfg.Log.Format, cfg.LogLevel())
			application, err := NewApplication(cfg, appLogger)
			if err != nil {
				appLogger.Error("main", err, nil)
				return err
			}
			return application.Run(args)
		},
	}

	cmd.Version = AppVersion
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", config.DefaultPath(), "path to the YAML config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: console or json")
	flags.StringVar(&opts.stale, "stale-completions", "", "late decode results: discard or apply")

	return cmd
}

// resolveConfig layers defaults, the config file, the environment and flags
func resolveConfig(cmd *cobra.Command, opts *rootOptions, getenv func(string) string) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(getenv)

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = opts.logFormat
	}
	if flags.Changed("stale-completions") {
		cfg.Loader.StaleCompletions = opts.stale
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

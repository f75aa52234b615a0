// Package cli implements the dyntable command-line interface.
//
// The root command opens the demo table in the terminal. The config
// subcommand prints the effective configuration as TOML, which is a good
// starting point for a config file.
//
// # Logging
//
// The table owns the terminal, so log output goes to the file named by
// --log. --verbose (-v) lowers the level to debug.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ayn2op/dyntable/config"
	"github.com/ayn2op/dyntable/demo"
)

// Execute runs the dyntable CLI. Cancelling ctx closes the table.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var (
		verbose    bool
		logPath    string
		configPath string
		kind       string
		logFile    io.WriteCloser
	)

	root := &cobra.Command{
		Use:          "dyntable",
		Short:        "Scroll through rows of different heights",
		Long:         `dyntable shows text, files or remote documents as rows of varying height. Only the rows on screen are built; the others are measured once and recycled as you scroll.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			w, err := openLog(logPath)
			if err != nil {
				return err
			}
			logFile = w
			cmd.SetContext(withLogger(cmd.Context(), newLogger(w, level)))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logFile == nil {
				return nil
			}
			return logFile.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if kind != "" {
				cfg.Demo.Kind = kind
			}
			k, err := demo.ParseKind(cfg.Demo.Kind)
			if err != nil {
				return err
			}
			return runTable(cmd.Context(), cfg, k, loggerFromContext(cmd.Context()))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&logPath, "log", "", "append log output to this file")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: dyntable/config.toml in the user config dir)")
	root.Flags().StringVarP(&kind, "kind", "k", "", "rows to show: text, files or remote")

	root.AddCommand(newConfigCmd(&configPath))
	return root
}

func newConfigCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}
}

// loadConfig reads the file at path. Without a path the default location is
// tried and a missing file there selects the defaults.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	path, err := defaultConfigPath()
	if err != nil {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, "dyntable", "config.toml"), nil
}

// Package cli implements the gudang command line: serve, migrate and
// purge-tokens. Every command loads its configuration from the environment.
package cli

import (
	"fmt"
	"os"

	"gudang/internal/config"
	"gudang/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Runtime is the state shared between commands, filled in before any
// subcommand runs.
type Runtime struct {
	Config *config.Config
	Log    *zap.Logger
}

// NewRootCmd creates the root command and registers the subcommands.
func NewRootCmd() *cobra.Command {
	rt := &Runtime{}

	cmd := &cobra.Command{
		Use:   "gudang",
		Short: "Product catalogue API with bearer-token auth",
		Long: `gudang serves a small product catalogue over HTTP.

Commands:
  serve         Start the HTTP server
  migrate       Create or update the database schema
  purge-tokens  Remove revocation entries of expired tokens

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
			if err != nil {
				return err
			}
			rt.Config = cfg
			rt.Log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.Log != nil {
				_ = rt.Log.Sync()
			}
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.AddCommand(NewServeCmd(rt))
	cmd.AddCommand(NewMigrateCmd(rt))
	cmd.AddCommand(NewPurgeTokensCmd(rt))

	return cmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

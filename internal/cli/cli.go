//-------------------------------------------------------------------------
//
// procgen - procurement data synthesizer
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for procgen.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/procdata/procgen/internal/config"
	"github.com/procdata/procgen/internal/logging"
	"github.com/procdata/procgen/pkg/version"
)

var (
	// Global flags
	cfgFile  string
	logLevel string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "procgen",
		Short: "Synthetic SAP-style procurement dataset generator and validator",
		Long: `procgen generates a synthetic procurement dataset in SAP table
conventions (vendor master, material master, contracts, purchase orders,
line items and order history) as parquet files, with controlled statistical
properties: Pareto spend concentration, seasonal ordering, contract pricing
and realistic delivery behavior.

The companion 'validate' command independently checks a dataset against
schema, referential-integrity, business-logic and statistical rules and
reports a weighted 0-100 quality score.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./procgen.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

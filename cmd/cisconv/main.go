// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cisconv CLI.
package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cisconv/internal/logger"
	"github.com/pdiddy/cisconv/internal/pdftext"
)

// version is set at build time via ldflags.
var version = "dev"

// log is configured from log_level and log_format before any subcommand runs.
var log = logger.Nop()

// rootCmd is the base command for the cisconv CLI.
var rootCmd = &cobra.Command{
	Use:   "cisconv",
	Short: "Convert CIS benchmark PDFs into compliance-audit workbooks",
	Long: `cisconv reads a CIS benchmark PDF, recovers each numbered recommendation
with its sections (Description, Audit, Remediation, ...), groups them into
categories by leading number, and writes an Excel workbook with one sheet
per category plus a SCORE sheet that tallies review status.

Parsed recommendations can also be kept in a SQLite audit store (--db) and
searched or exported later with the query and export subcommands.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logger.New(logger.Config{
			Level:  viper.GetString("log_level"),
			Format: viper.GetString("log_format"),
			Out:    os.Stderr,
		})
		if f := viper.ConfigFileUsed(); f != "" {
			log.Debug().Str("file", f).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	viper.SetDefault("categories", "cis_categories.json")
	viper.SetDefault("start_page", 10)
	viper.SetDefault("backend", "native")
	viper.SetDefault("poppler_image", pdftext.DefaultPopplerImage)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "console")

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cisconv.yaml or ~/.config/cisconv/cisconv.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")
	rootCmd.PersistentFlags().String("db", "", "SQLite audit store path (empty disables persistence)")

	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cisconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cisconv"))
		}
	}

	viper.SetEnvPrefix("CISCONV")
	viper.AutomaticEnv()

	// A missing cisconv.yaml is fine; flags and defaults cover everything.
	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

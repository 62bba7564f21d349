// Package cmd implements the CLI commands for paperimport using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/paperimport/config"
	"github.com/gaurav-prasanna/paperimport/core/fetch"
	"github.com/gaurav-prasanna/paperimport/core/registry"
)

var (
	flagConfig  string
	flagVerbose bool

	// cfg is resolved before any subcommand runs.
	cfg     config.Config
	cfgUsed string
	cfgErr  error
)

var rootCmd = &cobra.Command{
	Use:   "paperimport",
	Short: "Turn academic paper URLs into notes",
	Long: `paperimport extracts the title, authors, abstract and publication date
from an academic paper's landing page and renders them into a note.

Supported sites: arXiv, OpenReview, ACL Anthology.

Usage:
  paperimport import <url>... [flags]
  paperimport resolve <url>
  paperimport sites`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ./paperimport.yaml or ~/.config/paperimport/paperimport.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")
}

func initConfig() {
	cfgUsed, cfgErr = config.Init(viper.GetViper(), flagConfig)
}

// loadConfig validates the configuration and sets up logging.
func loadConfig(cmd *cobra.Command, args []string) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if cfgErr != nil {
		return cfgErr
	}
	c, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = c

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfgUsed != "" {
		log.Debug().Str("file", cfgUsed).Msg("using config file")
	}
	return nil
}

// newRegistry builds the site registry over an HTTP fetcher configured
// from cfg.
func newRegistry() *registry.Registry {
	return registry.Default(fetch.New(fetch.Options{
		Timeout:   cfg.HTTP.Timeout,
		UserAgent: cfg.HTTP.UserAgent,
	}))
}

// Execute runs the root command. An interrupt cancels in-flight fetches.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"log"

	"github.com/justsurfingit/job-search-assistant/internal/config"
	"github.com/justsurfingit/job-search-assistant/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "jobassist"

var rootCmd = &cobra.Command{
	Use:          app,
	Short:        "jobassist serves the job search assistant API",
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	if err := viper.BindPFlag("log_debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		log.Fatalf("binding debug flag: %v", err)
	}
	if err := viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("json")); err != nil {
		log.Fatalf("binding json flag: %v", err)
	}
}

// setup loads and validates the config and builds the logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(logger.Options{JSON: cfg.LogJSON, Debug: cfg.LogDebug})
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", zap.Error(err))
		return nil, nil, err
	}
	return cfg, log, nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/shapestone/byteeval/internal/config"
)

var (
	configPath string
	logFile    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "byteeval-demo",
	Short: "Exercise the byteeval evaluation core's Skip/Take/Peek facade",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file path")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log to this file instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")
	rootCmd.AddCommand(tokenizeCmd)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if logFile != "" {
		cfg.Log.LogFile = logFile
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

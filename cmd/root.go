/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/interviewqa/apiserver/config"
	"github.com/interviewqa/apiserver/internal/logger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "apiserver",
	Short: "Interview question bank backend",
	Long: `Interview question bank backend. Serves the job catalog, questions,
likes and accounts over HTTP, or as message-driven functions.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogger)
}

func initLogger() {
	slog.SetDefault(logger.New(os.Getenv("ENV")))
}

// loadConfig reads configuration and re-installs the logger for the
// environment it resolved.
func loadConfig() config.Config {
	cfg := config.LoadConfig()
	slog.SetDefault(logger.New(cfg.Env))
	return cfg
}

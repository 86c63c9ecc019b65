package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	root := &cobra.Command{
		Use:           "crewload",
		Short:         "Three-week-ahead team saturation analysis",
		Long:          "crewload reads per-member daily hour allocations from CSV and computes saturation, status, and week-over-week change for the current, next, and next-next week.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")

	root.AddCommand(
		newAnalyzeCmd(),
		newValidateCmd(),
		newHistoryCmd(),
		newShowCmd(),
		newDeleteCmd(),
	)

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/crewload/crewload/internal/config"
	"github.com/crewload/crewload/internal/ingest"
	"github.com/crewload/crewload/internal/store"
	"github.com/crewload/crewload/internal/workload"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		inputPath string
		baseDate  string
		outDir    string
		noSave    bool
		watch     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute the three-week saturation analysis for a CSV allocation table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			base, err := resolveBaseDate(baseDate)
			if err != nil {
				return err
			}

			// One full pass: read, validate, compute, render, persist.
			// The input file is re-read every pass so watch mode picks up
			// allocation edits alongside config edits.
			runOnce := func(cfg *config.Config) error {
				tab, err := readTable(inputPath)
				if err != nil {
					return err
				}
				if err := ingest.Validate(tab, base); err != nil {
					return err
				}

				analysis, err := workload.Analyze(tab.WorkloadInput(), cfg.Params(), base)
				if err != nil {
					return err
				}
				summary := workload.Summarize(analysis.Rows)

				renderAnalysis(cmd.OutOrStdout(), analysis, summary)

				if noSave {
					return nil
				}
				st, err := store.Open(outDir)
				if err != nil {
					return err
				}
				path, err := st.SaveRun(st.NewRun(analysis.DateInfo.BaseDate, analysis, summary))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nsaved: %s\n", path)
				return nil
			}

			if err := runOnce(cfg); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			// Resident mode: stay up and re-run on every valid config
			// save until interrupted. A failing re-run (bad input edit,
			// table gone) keeps the last rendered result on screen.
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			slog.Info("watching for config changes", "config", configPath, "input", inputPath)
			return config.Watch(ctx, configPath, func(updated *config.Config) {
				if err := runOnce(updated); err != nil {
					slog.Error("re-analysis failed — keeping previous result", "err", err)
				}
			})
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "path to the allocation CSV (required)")
	cmd.Flags().StringVar(&baseDate, "base-date", "", "base date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&outDir, "out", "data", "directory for persisted runs")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "print the analysis without persisting it")
	cmd.Flags().BoolVar(&watch, "watch", false, "stay resident and re-run whenever the config file changes")
	cmd.MarkFlagRequired("input")

	return cmd
}

// resolveBaseDate parses flag input or substitutes today's local date.
// Defaulting happens here so the calculator itself stays clock-free.
func resolveBaseDate(s string) (time.Time, error) {
	if s == "" {
		return workload.Day(time.Now()), nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid base date %q: expected YYYY-MM-DD", s)
	}
	return workload.Day(d), nil
}

func readTable(path string) (*ingest.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	slog.Info("reading allocation table", "path", path)
	return ingest.ReadCSV(f)
}

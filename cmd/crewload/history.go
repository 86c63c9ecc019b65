package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/crewload/crewload/internal/store"
)

func newHistoryCmd() *cobra.Command {
	var (
		outDir string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List persisted analysis runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(outDir)
			if err != nil {
				return err
			}
			runs, err := st.ListRuns(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN\tMODIFIED\tPATH")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.ModTime.Format(time.RFC3339), r.Path)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "data", "directory holding persisted runs")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum runs to list (0 = all)")

	return cmd
}

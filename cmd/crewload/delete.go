package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crewload/crewload/internal/store"
)

func newDeleteCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "delete <run-file>",
		Short: "Delete a persisted analysis run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(outDir)
			if err != nil {
				return err
			}
			if err := st.DeleteRun(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted: %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "data", "directory holding persisted runs")

	return cmd
}

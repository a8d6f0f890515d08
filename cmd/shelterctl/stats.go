package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show shelter statistics (requires login)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.resources.Stats().Load(cmd.Context())
			if r.Err != nil {
				return r.Err
			}
			return a.print(cmd.OutOrStdout(), r.Data, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Dogs in shelter: %d\nNew requests: %d\n", r.Data.TotalDogsCount, r.Data.NewRequestsCount)
				return err
			})
		},
	}
}

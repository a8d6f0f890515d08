package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
)

func newNewsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "news [id]",
		Short: "List news, or show one item",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				r := a.resources.News(id).Load(cmd.Context())
				if r.Err != nil {
					return r.Err
				}
				return a.print(cmd.OutOrStdout(), r.Data, func(w io.Writer) error {
					return printNewsItem(w, r.Data)
				})
			}

			r := a.resources.NewsList().Load(cmd.Context())
			if r.Err != nil {
				return r.Err
			}
			return a.print(cmd.OutOrStdout(), r.Data, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tDATE\tTITLE\tTAGS")
				for _, n := range r.Data {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", n.ID, n.Date.Format("2006-01-02"), n.Title, tagNames(names(n.Tags)))
				}
				return tw.Flush()
			})
		},
	}
}

func printNewsItem(w io.Writer, n domain.News) error {
	_, err := fmt.Fprintf(w, "%s\n%s | %s\n\n%s\n", n.Title, n.Date.Format("2006-01-02 15:04"), tagNames(names(n.Tags)), n.Body)
	return err
}

func names(tags []domain.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Name)
	}
	return out
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTagsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.resources.Tags().Load(cmd.Context())
			if r.Err != nil {
				return r.Err
			}
			return a.print(cmd.OutOrStdout(), r.Data, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME")
				for _, t := range r.Data {
					fmt.Fprintf(tw, "%d\t%s\n", t.ID, t.Name)
				}
				return tw.Flush()
			})
		},
	}
	cmd.AddCommand(newTagCreateCmd(a), newTagDeleteCmd(a))
	return cmd
}

func newTagCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a tag (requires login)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := a.resources.CreateTag(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), tag, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Created tag %d %s\n", tag.ID, tag.Name)
				return err
			})
		},
	}
}

func newTagDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tag (requires login)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.resources.DeleteTag(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag %d\n", id)
			return nil
		},
	}
}

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
)

func newDogsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dogs [id]",
		Short: "List dogs, or show one dog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				r := a.resources.Dog(id).Load(cmd.Context())
				if r.Err != nil {
					return r.Err
				}
				return a.print(cmd.OutOrStdout(), r.Data, func(w io.Writer) error {
					return printDog(w, &r.Data)
				})
			}

			r := a.resources.Dogs().Load(cmd.Context())
			if r.Err != nil {
				return r.Err
			}
			return a.print(cmd.OutOrStdout(), r.Data, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tAGE\tBREED\tGENDER")
				for i := range r.Data {
					d := &r.Data[i]
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.AgeText(), d.Breed, d.Gender)
				}
				return tw.Flush()
			})
		},
	}
}

func printDog(w io.Writer, d *domain.Dog) error {
	passport := "no"
	if d.VeterinaryPassport {
		passport = "yes"
	}
	_, err := fmt.Fprintf(w, "%s (%s, %s)\nBreed: %s\nIn shelter since: %s\nVeterinary passport: %s\nTags: %s\n\n%s\n",
		d.Name, d.AgeText(), d.Gender, d.Breed,
		d.IntakeDate.Format("2006-01-02"), passport,
		tagNames(names(d.Tags)), d.Description,
	)
	return err
}

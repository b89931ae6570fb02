package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newProjectsCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Portfolio projects",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List portfolio projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := current().projects.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list projects: %w", err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tTECHNOLOGIES")
			for _, p := range projects {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Title, strings.Join(p.Technologies, ", "))
			}
			return tw.Flush()
		},
	})
	return cmd
}

func newTestimonialsCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testimonials",
		Short: "Client testimonials",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List client testimonials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := current().testimonials.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list testimonials: %w", err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCLIENT\tCOMPANY\tQUOTE")
			for _, t := range items {
				company := "-"
				if t.Company != nil {
					company = *t.Company
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.ClientName, company, truncate(t.Content, 50))
			}
			return tw.Flush()
		},
	})
	return cmd
}

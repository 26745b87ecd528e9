package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Dan9191/irpf-calculator/internal/scales"
	"github.com/spf13/cobra"
)

func countriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List supported countries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Supported countries"))

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, subtleStyle.Render("CODE")+"\t"+subtleStyle.Render("NAME")+"\t"+subtleStyle.Render("TOP RATE"))
			for _, c := range scales.Countries() {
				fmt.Fprintf(w, "%s %s\t%s\t%.0f%%\n", c.Flag, c.Code, c.Name, scales.MaxPercentage(c.Code))
			}
			return nil
		},
	}
}

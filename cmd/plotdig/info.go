package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/plotdig/plotdig"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <figure.svg>",
		Short: "Show the curves, calibration and annotations found in a figure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, warnings, err := plotdig.Open(args[0]).Plot()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			xUnit, yUnit := p.AxisUnits()
			fmt.Fprintf(out, "x axis: %s\n", orDimensionless(xUnit))
			fmt.Fprintf(out, "y axis: %s\n", orDimensionless(yUnit))

			if rate := p.Rate(); rate != nil {
				fmt.Fprintf(out, "scan rate: %g %s\n", rate.Value, rate.Unit.Symbol)
			}

			fmt.Fprintln(out, "curves:")
			for _, c := range p.Curves() {
				id := c.ID
				if id == "" {
					id = "(unlabeled)"
				}
				fmt.Fprintf(out, "  %s (%d segments)\n", id, len(c.Path.Path.Segments))
			}

			fields := p.Fields()
			if len(fields) > 0 {
				keys := make([]string, 0, len(fields))
				for k := range fields {
					keys = append(keys, k)
				}
				sort.Strings(keys)

				fmt.Fprintln(out, "fields:")
				for _, k := range keys {
					fmt.Fprintf(out, "  %s: %s\n", k, fields[k])
				}
			}

			if len(warnings) > 0 {
				fmt.Fprintln(out, "warnings:")
				for _, w := range warnings {
					fmt.Fprintf(out, "  %s\n", w.Message)
				}
			}

			return nil
		},
	}

	return cmd
}

func orDimensionless(unit string) string {
	if unit == "" {
		return "(dimensionless)"
	}
	return unit
}

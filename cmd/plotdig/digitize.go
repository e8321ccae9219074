package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDigitizeCmd() *cobra.Command {
	var flags digitizeFlags
	var output string

	cmd := &cobra.Command{
		Use:   "digitize <figure.svg>",
		Short: "Digitize a figure to a CSV table in its axis units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, warnings, err := flags.digitizer(args[0]).Table()
			if err != nil {
				return err
			}
			reportWarnings(warnings)

			if output == "" || output == "-" {
				return table.WriteCSV(os.Stdout)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer f.Close()

			if err := table.WriteCSV(f); err != nil {
				return err
			}
			return f.Close()
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "CSV output file (default stdout)")

	return cmd
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plotdig/plotdig/render"
)

func newPlotCmd() *cobra.Command {
	var flags digitizeFlags
	var output string
	var width, height int
	var title string

	cmd := &cobra.Command{
		Use:   "plot <figure.svg>",
		Short: "Render the digitized curve as a PNG for visual comparison",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, warnings, err := flags.digitizer(args[0]).Table()
			if err != nil {
				return err
			}
			reportWarnings(warnings)

			cfg := render.DefaultConfig()
			cfg.Width = width
			cfg.Height = height
			cfg.Title = title

			if output == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				output = base + ".png"
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer f.Close()

			if err := render.WritePNG(f, table, cfg); err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG output file (default <figure>.png)")
	cmd.Flags().IntVar(&width, "width", 800, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 600, "image height in pixels")
	cmd.Flags().StringVar(&title, "title", "", "title drawn above the plot")

	return cmd
}

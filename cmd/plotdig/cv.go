package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/plotdig/plotdig/model"
	"github.com/plotdig/plotdig/units"
)

func newCVCmd() *cobra.Command {
	var flags digitizeFlags
	var metadataFile string
	var outdir string

	cmd := &cobra.Command{
		Use:   "cv <figure.svg>",
		Short: "Digitize a cyclic voltammogram to CSV and JSON metadata in SI units",
		Long: "cv digitizes a cyclic voltammogram: potential in V, current or current\n" +
			"density in SI units, and time recovered from the annotated scan rate.\n" +
			"It writes <figure>.csv with the data and <figure>.json with the merged\n" +
			"metadata next to each other in the output directory.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The output is in SI units, so the sampling interval here is
			// denominated in volts and has to be converted into the
			// figure's own x unit before resampling.
			interval := flags.samplingInterval
			flags.samplingInterval = 0
			d := flags.digitizer(args[0])

			if interval > 0 {
				p, _, err := d.Plot()
				if err != nil {
					return err
				}
				step := interval
				if xUnit, _ := p.AxisUnits(); xUnit != "" {
					u, err := units.Lookup(xUnit)
					if err != nil {
						return fmt.Errorf("x axis unit %q: %w", xUnit, err)
					}
					step = interval / u.Factor
				}
				d = d.SamplingInterval(step)
			}

			if metadataFile != "" {
				meta, err := loadMetadata(metadataFile)
				if err != nil {
					return err
				}
				d = d.WithMetadata(meta)
			}

			cv, warnings, err := d.CV()
			if err != nil {
				return err
			}
			reportWarnings(warnings)

			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			if err := os.MkdirAll(outdir, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", outdir, err)
			}

			csvPath := filepath.Join(outdir, base+".csv")
			f, err := os.Create(csvPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", csvPath, err)
			}
			defer f.Close()
			if err := cv.Table.WriteCSV(f); err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			jsonPath := filepath.Join(outdir, base+".json")
			encoded, err := json.MarshalIndent(cv.Metadata, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding metadata: %w", err)
			}
			if err := os.WriteFile(jsonPath, append(encoded, '\n'), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", jsonPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s\n", csvPath, jsonPath)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().Lookup("sampling-interval").Usage = "resample so potential advances by at most this step, in volts"
	cmd.Flags().StringVar(&metadataFile, "metadata", "", "YAML file merged into the output metadata")
	cmd.Flags().StringVar(&outdir, "outdir", ".", "directory for the CSV and JSON outputs")

	return cmd
}

// loadMetadata reads a YAML metadata file.
func loadMetadata(path string) (model.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var meta model.Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return meta, nil
}

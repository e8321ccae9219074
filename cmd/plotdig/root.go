package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plotdig/plotdig"
)

// digitizeFlags holds the options shared by the commands that run the
// digitization pipeline.
type digitizeFlags struct {
	curve            string
	samplingInterval float64
	chordTolerance   float64
	logX             bool
	logY             bool
}

func (f *digitizeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.curve, "curve", "", "id of the labeled curve to digitize")
	cmd.Flags().Float64Var(&f.samplingInterval, "sampling-interval", 0, "resample so x advances by at most this step, in data units")
	cmd.Flags().Float64Var(&f.chordTolerance, "chord-tolerance", 0, "maximum deviation between curve and polyline, in pixels")
	cmd.Flags().BoolVar(&f.logX, "log-x", false, "treat the x axis as log scaled")
	cmd.Flags().BoolVar(&f.logY, "log-y", false, "treat the y axis as log scaled")
}

// digitizer builds the configured digitizer for a figure.
func (f *digitizeFlags) digitizer(figure string) *plotdig.Digitizer {
	d := plotdig.Open(figure)
	if f.curve != "" {
		d = d.Curve(f.curve)
	}
	if f.samplingInterval > 0 {
		d = d.SamplingInterval(f.samplingInterval)
	}
	if f.chordTolerance > 0 {
		d = d.ChordTolerance(f.chordTolerance)
	}
	if f.logX {
		d = d.LogX()
	}
	if f.logY {
		d = d.LogY()
	}
	return d
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "plotdig",
		Short:         "Digitize scientific plots from SVG figures",
		Long:          "plotdig recovers numeric data from SVG figures whose axes are annotated\nwith reference labels, producing CSV tables and cyclic voltammetry data.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newDigitizeCmd())
	root.AddCommand(newCVCmd())
	root.AddCommand(newPlotCmd())
	root.AddCommand(newInfoCmd())

	return root
}

// reportWarnings prints warnings to stderr so stdout stays clean for
// data output.
func reportWarnings(warnings []plotdig.Warning) {
	if len(warnings) > 0 {
		fmt.Fprintln(os.Stderr, plotdig.FormatWarnings(warnings))
	}
}

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-magjam/dsp/jamming"
	"github.com/cwbudde/algo-magjam/stats/field"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newReplayCmd() *cobra.Command {
	var (
		ff          filterFlags
		summaryOnly bool
	)

	cmd := &cobra.Command{
		Use:   "replay [trace.csv]",
		Short: "Run a recorded trace through the jamming filter",
		Long: `replay feeds every sample of a recorded magnetometer trace to the
jamming filter and prints one "index,intensity,baseline,jammed" row per
sample followed by a summary.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, name, err := openTrace(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			defer rc.Close()

			tr, err := readTrace(rc)
			if err != nil {
				return err
			}

			log := logrus.WithField("trace", name)
			f, err := ff.build(log)
			if err != nil {
				return err
			}

			out := jamming.BlockOutput{
				Intensity: make([]float64, tr.len()),
				Baseline:  make([]float64, tr.len()),
				Active:    make([]bool, tr.len()),
			}
			if err := f.ProcessBlock(tr.X, tr.Y, tr.Z, out); err != nil {
				return err
			}
			log.WithField("samples", tr.len()).Debug("replay finished")

			w := cmd.OutOrStdout()
			if !summaryOnly {
				if err := writeRows(w, out); err != nil {
					return err
				}
			}

			s, err := field.Summarize(out.Intensity, out.Active)
			if err != nil {
				return err
			}
			return writeSummary(w, s, f)
		},
	}

	ff.register(cmd)
	cmd.Flags().BoolVarP(&summaryOnly, "summary", "s", false, "print only the summary")
	return cmd
}

func writeRows(w io.Writer, out jamming.BlockOutput) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "intensity", "baseline", "jammed"}); err != nil {
		return err
	}
	for i := range out.Intensity {
		rec := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(out.Intensity[i], 'f', 4, 64),
			strconv.FormatFloat(out.Baseline[i], 'f', 4, 64),
			strconv.FormatBool(out.Active[i]),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeSummary(w io.Writer, s field.Summary, f *jamming.Filter) error {
	lo, hi := f.Bounds()
	m := f.Metrics()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\nsamples\t%d\n", s.Samples)
	fmt.Fprintf(tw, "intensity mean\t%.3f\n", s.Mean)
	fmt.Fprintf(tw, "intensity std\t%.3f\n", s.StdDev)
	fmt.Fprintf(tw, "intensity min/median/p95/max\t%.3f / %.3f / %.3f / %.3f\n", s.Min, s.Median, s.P95, s.Max)
	fmt.Fprintf(tw, "final baseline\t%.3f\n", f.FieldIntensityFiltered())
	fmt.Fprintf(tw, "baseline bounds\t[%.3f, %.3f]\n", lo, hi)
	fmt.Fprintf(tw, "threshold\t%.3f\n", f.Threshold())
	fmt.Fprintf(tw, "jammed\t%d (%.1f%%)\n", s.JammedSamples, 100*s.JammedFraction)
	fmt.Fprintf(tw, "activations\t%d\n", s.Activations)
	fmt.Fprintf(tw, "longest jam\t%d samples\n", s.LongestJam)
	fmt.Fprintf(tw, "outliers rejected\t%d\n", m.OutliersRejected)
	fmt.Fprintf(tw, "dwell skips\t%d\n", m.DwellSkips)
	return tw.Flush()
}

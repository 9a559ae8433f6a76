package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/cwbudde/algo-magjam/dsp/jamming"
	"github.com/cwbudde/algo-magjam/measure/disturbance"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newSpectrumCmd() *cobra.Command {
	var (
		ff      filterFlags
		minFreq float64
		fftSize int
		top     int
	)

	cmd := &cobra.Command{
		Use:   "spectrum [trace.csv]",
		Short: "Find periodic interference in a trace's field intensity",
		Long: `spectrum computes the amplitude spectrum of the field intensity of a
recorded trace and lists the strongest components, together with how much of
the trace the jamming filter flagged.`,
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

			f, err := ff.build(logrus.WithField("trace", name))
			if err != nil {
				return err
			}
			intensity := make([]float64, tr.len())
			if err := f.ProcessBlock(tr.X, tr.Y, tr.Z, jamming.BlockOutput{Intensity: intensity}); err != nil {
				return err
			}

			res, err := disturbance.Analyze(intensity, ff.rate,
				disturbance.WithMinFrequency(minFreq),
				disturbance.WithFFTSize(fftSize))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "samples\t%d\n", tr.len())
			fmt.Fprintf(tw, "fft size\t%d (%.4f Hz/bin)\n", res.FFTSize, res.BinHz)
			fmt.Fprintf(tw, "mean intensity\t%.3f\n", res.Mean)
			fmt.Fprintf(tw, "jammed\t%.1f%%\n", 100*f.Metrics().ActiveFraction())
			fmt.Fprintf(tw, "peak\t%.3f Hz, amplitude %.4f\n", res.PeakFrequency, res.PeakAmplitude)
			fmt.Fprintf(tw, "\nfrequency (Hz)\tamplitude\n")
			for _, k := range strongestBins(res, minFreq, top) {
				fmt.Fprintf(tw, "%.3f\t%.4f\n", float64(k)*res.BinHz, res.Amplitude[k])
			}
			return tw.Flush()
		},
	}

	ff.register(cmd)
	cmd.Flags().Float64Var(&minFreq, "min-freq", 0.5, "ignore components below this frequency in Hz")
	cmd.Flags().IntVar(&fftSize, "fft-size", 0, "transform length, 0 selects the next power of two")
	cmd.Flags().IntVarP(&top, "top", "n", 5, "number of strongest bins to list")
	return cmd
}

// strongestBins returns up to n local maxima above minFreq, strongest first.
func strongestBins(res disturbance.Result, minFreq float64, n int) []int {
	var peaks []int
	amp := res.Amplitude
	for k := 1; k < len(amp)-1; k++ {
		if float64(k)*res.BinHz < minFreq {
			continue
		}
		if amp[k] >= amp[k-1] && amp[k] > amp[k+1] {
			peaks = append(peaks, k)
		}
	}
	sort.SliceStable(peaks, func(i, j int) bool { return amp[peaks[i]] > amp[peaks[j]] })
	if n >= 0 && len(peaks) > n {
		peaks = peaks[:n]
	}
	return peaks
}

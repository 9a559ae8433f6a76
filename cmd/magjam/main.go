// Command magjam replays recorded magnetometer traces through the jamming
// filter and inspects calibration blobs.
//
// Usage:
//
//	magjam replay [flags] [trace.csv]
//	magjam spectrum [flags] [trace.csv]
//	magjam calib inspect [flags] image.bin
//	magjam calib make [flags] image.bin
//
// Traces are CSV files with one "mx,my,mz" sample per line. A header line
// and lines starting with '#' are skipped. Without a file argument the
// trace is read from standard input.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "magjam",
		Short: "Magnetometer jamming filter tools",
		Long: `magjam runs recorded 3-axis magnetometer traces through the jamming
filter used by the attitude estimator, analyses the field intensity for
periodic interference and reads or writes the persisted calibration blob.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(cmd.ErrOrStderr())
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log calibration decisions and progress")

	cmd.AddCommand(newReplayCmd(), newSpectrumCmd(), newCalibCmd())
	return cmd
}

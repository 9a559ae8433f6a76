package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cwbudde/algo-magjam/calibration"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newCalibCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calib",
		Short: "Inspect or write the persisted calibration blob",
	}
	cmd.AddCommand(newCalibInspectCmd(), newCalibMakeCmd())
	return cmd
}

func newCalibInspectCmd() *cobra.Command {
	var offset int64

	cmd := &cobra.Command{
		Use:   "inspect image.bin",
		Short: "Verify and print a calibration blob",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := &calibration.FileStore{Path: args[0], Offset: offset}
			blob, err := store.ReadCalibration()
			if err != nil {
				return err
			}

			c, err := calibration.Decode(blob, nil)
			if err != nil {
				return fmt.Errorf("%s at offset %d: %w", args[0], offset, err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "signature\tok\n")
			fmt.Fprintf(tw, "checksum\tok\n")
			fmt.Fprintf(tw, "accel offset\t%v\n", c.AccelOffset)
			fmt.Fprintf(tw, "gyro offset\t%v\n", c.GyroOffset)
			fmt.Fprintf(tw, "mag hard iron\t%v\n", c.MagOffset)
			fmt.Fprintf(tw, "field strength\t%.3f\n", c.FieldStrength)
			fmt.Fprintf(tw, "soft iron diag\t%v\n", c.SoftIronDiag)
			fmt.Fprintf(tw, "soft iron off-diag\t%v\n", c.SoftIronOffDiag)
			return tw.Flush()
		},
	}
	cmd.Flags().Int64Var(&offset, "offset", calibration.DefaultEEPROMOffset, "byte offset of the blob in the image")
	return cmd
}

func newCalibMakeCmd() *cobra.Command {
	var (
		offset   int64
		strength float32
		hardIron []float32
	)

	cmd := &cobra.Command{
		Use:   "make image.bin",
		Short: "Write a signed calibration blob into an image",
		Long: `make writes a calibration blob carrying the given reference field
strength into an image file, creating it if needed. Identity soft-iron and
zero offsets are used unless overridden. Intended for bench testing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(hardIron) != 3 {
				return fmt.Errorf("--hard-iron needs 3 values, got %d", len(hardIron))
			}

			c := calibration.Calibration{
				FieldStrength: strength,
				SoftIronDiag:  [3]float32{1, 1, 1},
			}
			copy(c.MagOffset[:], hardIron)

			store := &calibration.FileStore{Path: args[0], Offset: offset}
			if err := store.WriteCalibration(calibration.Encode(c)); err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"image":          args[0],
				"offset":         offset,
				"field_strength": strength,
			}).Info("calibration written")
			return nil
		},
	}
	cmd.Flags().Int64Var(&offset, "offset", calibration.DefaultEEPROMOffset, "byte offset of the blob in the image")
	cmd.Flags().Float32Var(&strength, "field", 48, "reference field strength")
	cmd.Flags().Float32SliceVar(&hardIron, "hard-iron", []float32{0, 0, 0}, "magnetometer hard-iron offset x,y,z")
	return cmd
}

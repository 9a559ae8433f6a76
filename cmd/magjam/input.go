package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-magjam/dsp/core"
)

// trace is a recorded magnetometer stream.
type trace struct {
	X, Y, Z []float64
}

func (t *trace) len() int { return len(t.X) }

// openTrace opens args[0], or stdin when no argument or "-" is given.
func openTrace(stdin io.Reader, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(stdin), "stdin", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("open trace: %w", err)
	}
	return f, args[0], nil
}

// readTrace parses "mx,my,mz" rows. Extra columns are ignored, a leading
// non-numeric header row is skipped and '#' starts a comment line.
func readTrace(r io.Reader) (*trace, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	t := &trace{}
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read trace: %w", err)
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("read trace: record %d: want 3 columns, got %d", line, len(rec))
		}

		var v [3]float64
		for i := range v {
			v[i], err = strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				break
			}
		}
		if err != nil {
			if t.len() == 0 && line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("read trace: record %d: %w", line, err)
		}
		if !core.IsFinite3(v[0], v[1], v[2]) {
			return nil, fmt.Errorf("read trace: record %d: non-finite sample", line)
		}

		t.X = append(t.X, v[0])
		t.Y = append(t.Y, v[1])
		t.Z = append(t.Z, v[2])
	}

	if t.len() == 0 {
		return nil, errors.New("read trace: no samples")
	}
	return t, nil
}

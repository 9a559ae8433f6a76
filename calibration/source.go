package calibration

import (
	"fmt"
	"os"
)

// DefaultEEPROMOffset is where the reference firmware stores the blob in
// its EEPROM image.
const DefaultEEPROMOffset = 60

// Source fetches a raw calibration blob from persisted storage.
type Source interface {
	ReadCalibration() ([]byte, error)
}

// Bytes is an in-memory [Source].
type Bytes []byte

// ReadCalibration returns a copy of b.
func (b Bytes) ReadCalibration() ([]byte, error) {
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// FileStore reads and writes a blob at a fixed offset of a byte-addressable
// image file, such as an EEPROM dump.
type FileStore struct {
	Path   string
	Offset int64
}

// NewFileStore returns a store for path at [DefaultEEPROMOffset].
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path, Offset: DefaultEEPROMOffset}
}

// ReadCalibration reads Size bytes at s.Offset.
func (s *FileStore) ReadCalibration() ([]byte, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("calibration: open image: %w", err)
	}
	defer f.Close()

	blob := make([]byte, Size)
	if _, err := f.ReadAt(blob, s.Offset); err != nil {
		return nil, fmt.Errorf("calibration: read %d bytes at offset %d: %w", Size, s.Offset, err)
	}
	return blob, nil
}

// WriteCalibration writes blob at s.Offset, creating the image if needed.
// Bytes outside the blob's range are preserved.
func (s *FileStore) WriteCalibration(blob []byte) error {
	if len(blob) != Size {
		return fmt.Errorf("%w: got %d bytes, want exactly %d", ErrBlobLength, len(blob), Size)
	}

	f, err := os.OpenFile(s.Path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("calibration: open image: %w", err)
	}

	if _, err := f.WriteAt(blob, s.Offset); err != nil {
		f.Close()
		return fmt.Errorf("calibration: write at offset %d: %w", s.Offset, err)
	}
	return f.Close()
}

package calibration

import (
	"errors"
	"path/filepath"
	"testing"
)

func sampleCalibration() Calibration {
	return Calibration{
		AccelOffset:     [3]float32{0.01, -0.02, 0.03},
		GyroOffset:      [3]float32{0.5, -0.25, 0.125},
		MagOffset:       [3]float32{12.5, -7.25, 30},
		FieldStrength:   48.5,
		SoftIronDiag:    [3]float32{1.02, 0.98, 1.01},
		SoftIronOffDiag: [3]float32{0.01, -0.02, 0.005},
	}
}

func TestChecksumCheckValue(t *testing.T) {
	// CRC-16/MODBUS check value for "123456789".
	if got := Checksum([]byte("123456789")); got != 0x4B37 {
		t.Fatalf("Checksum() = %#04x, want 0x4b37", got)
	}
}

func TestEncodeLayout(t *testing.T) {
	blob := Encode(sampleCalibration())

	if len(blob) != Size {
		t.Fatalf("len = %d, want %d", len(blob), Size)
	}
	if blob[0] != 117 || blob[1] != 84 {
		t.Fatalf("signature = %v %v, want 117 84", blob[0], blob[1])
	}
	if !DefaultVerifier().Verify(blob) {
		t.Fatal("encoded blob does not verify")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	want := sampleCalibration()

	got, err := Decode(Encode(want), nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got != want {
		t.Fatalf("Decode() = %+v, want %+v", got, want)
	}
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	blob := append(Encode(sampleCalibration()), 0xFF, 0xFF, 0x00)

	fs, err := FieldStrength(blob, nil)
	if err != nil {
		t.Fatalf("FieldStrength() error = %v", err)
	}
	if fs != 48.5 {
		t.Fatalf("FieldStrength() = %v, want 48.5", fs)
	}
}

func TestDecodeRejects(t *testing.T) {
	corrupt := Encode(sampleCalibration())
	corrupt[40] ^= 0x10

	badSig := Encode(sampleCalibration())
	badSig[0] = 'x'
	sum := Checksum(badSig[:checksumOffset])
	badSig[checksumOffset] = byte(sum)
	badSig[checksumOffset+1] = byte(sum >> 8)

	tests := []struct {
		name string
		blob []byte
		want error
	}{
		{"nil", nil, ErrShortBlob},
		{"short", Encode(sampleCalibration())[:Size-1], ErrShortBlob},
		{"erased", make([]byte, Size), ErrChecksum},
		{"corrupt payload", corrupt, ErrChecksum},
		{"bad signature", badSig, ErrSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.blob, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeUsesInjectedVerifier(t *testing.T) {
	blob := Encode(sampleCalibration())

	calls := 0
	reject := VerifierFunc(func(b []byte) bool {
		calls++
		if len(b) != Size {
			t.Errorf("verifier saw %d bytes, want %d", len(b), Size)
		}
		return false
	})

	if _, err := Decode(blob, reject); !errors.Is(err, ErrChecksum) {
		t.Fatalf("Decode() error = %v, want ErrChecksum", err)
	}
	if calls != 1 {
		t.Fatalf("verifier called %d times, want 1", calls)
	}
}

func TestBytesSourceCopies(t *testing.T) {
	src := Bytes(Encode(sampleCalibration()))

	blob, err := src.ReadCalibration()
	if err != nil {
		t.Fatalf("ReadCalibration() error = %v", err)
	}
	blob[0] = 0
	if src[0] != Signature[0] {
		t.Fatal("ReadCalibration returned an aliased buffer")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.bin")
	store := NewFileStore(path)
	blob := Encode(sampleCalibration())

	if err := store.WriteCalibration(blob); err != nil {
		t.Fatalf("WriteCalibration() error = %v", err)
	}

	got, err := store.ReadCalibration()
	if err != nil {
		t.Fatalf("ReadCalibration() error = %v", err)
	}
	if string(got) != string(blob) {
		t.Fatal("read blob differs from written blob")
	}

	other := &FileStore{Path: path, Offset: 0}
	if _, err := other.ReadCalibration(); err != nil {
		t.Fatalf("ReadCalibration() at offset 0 error = %v", err)
	}
}

func TestFileStoreErrors(t *testing.T) {
	dir := t.TempDir()

	missing := NewFileStore(filepath.Join(dir, "missing.bin"))
	if _, err := missing.ReadCalibration(); err == nil {
		t.Fatal("expected error for missing image")
	}

	store := NewFileStore(filepath.Join(dir, "eeprom.bin"))
	for _, n := range []int{0, 10, Size - 1, Size + 1, 2 * Size} {
		err := store.WriteCalibration(make([]byte, n))
		if !errors.Is(err, ErrBlobLength) || errors.Is(err, ErrShortBlob) {
			t.Fatalf("WriteCalibration(%d bytes) error = %v, want ErrBlobLength only", n, err)
		}
	}

	short := &FileStore{Path: store.Path, Offset: 0}
	if err := short.WriteCalibration(Encode(sampleCalibration())); err != nil {
		t.Fatalf("WriteCalibration() error = %v", err)
	}
	// The image now holds exactly Size bytes, so reading at the default
	// offset runs past its end.
	if _, err := store.ReadCalibration(); err == nil {
		t.Fatal("expected error reading past end of image")
	}
}

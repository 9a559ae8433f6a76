// Package calibration decodes the persisted sensor calibration blob that an
// external motion-calibration tool writes to non-volatile storage.
//
// The blob layout is fixed:
//
//	offset  size  content
//	0       2     signature bytes 117, 84
//	2       64    16 little-endian float32 slots
//	66      2     CRC-16 of bytes [0, 66), little-endian
//
// Slots 0-8 hold the accelerometer, gyroscope and magnetometer offsets,
// slot 9 the reference field strength and slots 10-15 the soft-iron map.
// Only the field strength is consumed by the jamming filter; the remaining
// slots are decoded for inspection.
package calibration

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	// Size is the length of a calibration blob in bytes.
	Size = 68

	// SlotCount is the number of float32 slots in the payload.
	SlotCount = 16

	// SignatureLen is the number of signature bytes at the start of the blob.
	SignatureLen = 2

	payloadOffset  = SignatureLen
	checksumOffset = payloadOffset + SlotCount*4

	slotFieldStrength = 9
)

// Signature is the magic prefix of a valid calibration blob.
var Signature = [SignatureLen]byte{117, 84}

var (
	// ErrShortBlob is returned when the buffer is smaller than Size.
	ErrShortBlob = errors.New("calibration: blob too short")

	// ErrBlobLength is returned when writing a blob that is not exactly Size bytes.
	ErrBlobLength = errors.New("calibration: blob length mismatch")

	// ErrChecksum is returned when the verifier rejects the blob.
	ErrChecksum = errors.New("calibration: checksum mismatch")

	// ErrSignature is returned when the blob does not start with Signature.
	ErrSignature = errors.New("calibration: bad signature")
)

// Calibration holds the decoded calibration constants.
type Calibration struct {
	AccelOffset     [3]float32 // accelerometer zero-g offset
	GyroOffset      [3]float32 // gyroscope zero-rate offset
	MagOffset       [3]float32 // magnetometer hard-iron offset
	FieldStrength   float32    // reference field intensity (uT)
	SoftIronDiag    [3]float32 // soft-iron map diagonal
	SoftIronOffDiag [3]float32 // soft-iron map off-diagonal (xy, xz, yz)
}

// Slots returns the calibration in storage order.
func (c Calibration) Slots() [SlotCount]float32 {
	var s [SlotCount]float32
	copy(s[0:3], c.AccelOffset[:])
	copy(s[3:6], c.GyroOffset[:])
	copy(s[6:9], c.MagOffset[:])
	s[slotFieldStrength] = c.FieldStrength
	copy(s[10:13], c.SoftIronDiag[:])
	copy(s[13:16], c.SoftIronOffDiag[:])
	return s
}

func fromSlots(s [SlotCount]float32) Calibration {
	var c Calibration
	copy(c.AccelOffset[:], s[0:3])
	copy(c.GyroOffset[:], s[3:6])
	copy(c.MagOffset[:], s[6:9])
	c.FieldStrength = s[slotFieldStrength]
	copy(c.SoftIronDiag[:], s[10:13])
	copy(c.SoftIronOffDiag[:], s[13:16])
	return c
}

// Decode verifies blob and returns the calibration it carries.
//
// The checksum is checked over the first Size bytes with v, then the
// signature. If v is nil, [DefaultVerifier] is used. Bytes beyond Size are
// ignored.
func Decode(blob []byte, v Verifier) (Calibration, error) {
	if len(blob) < Size {
		return Calibration{}, fmt.Errorf("%w: got %d bytes, want %d", ErrShortBlob, len(blob), Size)
	}
	blob = blob[:Size]

	if v == nil {
		v = DefaultVerifier()
	}
	if !v.Verify(blob) {
		return Calibration{}, ErrChecksum
	}
	if blob[0] != Signature[0] || blob[1] != Signature[1] {
		return Calibration{}, fmt.Errorf("%w: % x", ErrSignature, blob[:SignatureLen])
	}

	var s [SlotCount]float32
	for i := range s {
		off := payloadOffset + 4*i
		s[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[off : off+4]))
	}
	return fromSlots(s), nil
}

// FieldStrength returns only the reference field strength of blob.
// It applies the same checks as [Decode].
func FieldStrength(blob []byte, v Verifier) (float64, error) {
	c, err := Decode(blob, v)
	if err != nil {
		return 0, err
	}
	return float64(c.FieldStrength), nil
}

// Encode returns a signed blob for c with a valid CRC-16 trailer.
func Encode(c Calibration) []byte {
	blob := make([]byte, Size)
	copy(blob, Signature[:])

	for i, v := range c.Slots() {
		off := payloadOffset + 4*i
		binary.LittleEndian.PutUint32(blob[off:off+4], math.Float32bits(v))
	}

	sum := Checksum(blob[:checksumOffset])
	binary.LittleEndian.PutUint16(blob[checksumOffset:], sum)
	return blob
}

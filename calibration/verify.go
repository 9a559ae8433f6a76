package calibration

import "github.com/sigurn/crc16"

// Verifier checks the integrity of a calibration blob.
//
// The jamming filter treats it as an opaque function: it only needs a
// yes/no answer for the whole buffer.
type Verifier interface {
	Verify(blob []byte) bool
}

// VerifierFunc adapts a plain function to [Verifier].
type VerifierFunc func(blob []byte) bool

// Verify calls f(blob).
func (f VerifierFunc) Verify(blob []byte) bool { return f(blob) }

// modbusTable is the running CRC-16 used by the calibration tool
// (reflected polynomial 0xA001, initial value 0xFFFF).
var modbusTable = crc16.MakeTable(crc16.CRC16_MODBUS)

// CRC16Verifier accepts a blob whose running CRC-16, computed over the whole
// buffer including its trailing checksum bytes, is zero.
type CRC16Verifier struct{}

// Verify reports whether the CRC-16 residue of blob is zero.
func (CRC16Verifier) Verify(blob []byte) bool {
	return len(blob) > 0 && Checksum(blob) == 0
}

// DefaultVerifier returns the CRC-16 verifier matching [Encode].
func DefaultVerifier() Verifier {
	return CRC16Verifier{}
}

// Checksum returns the running CRC-16 of data.
func Checksum(data []byte) uint16 {
	return crc16.Checksum(data, modbusTable)
}

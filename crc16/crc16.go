// Package crc16 implements the CRC-16/XMODEM checksum used by NKey tokens.
//
// Parameters: polynomial 0x1021, initial register 0x0000, MSB-first, no
// input/output reflection, no final XOR. The checksum detects transcription
// errors in hand-copied tokens; it is not a cryptographic integrity check.
package crc16

const poly = 0x1021

// Checksum returns the CRC-16/XMODEM checksum of data.
// The empty input checksums to 0.
func Checksum(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Validate reports whether data checksums to expected.
func Validate(data []byte, expected uint16) bool {
	return Checksum(data) == expected
}

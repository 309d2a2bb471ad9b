package crc16

import "testing"

func TestChecksumKnownVectors(t *testing.T) {
	vectors := []struct {
		input []byte
		want  uint16
	}{
		{[]byte{}, 0x0000},
		{[]byte("abc"), 0x9DD6},
		{[]byte("ABC"), 0x3994},
		{[]byte("This is a string"), 0x21E3},
		{[]byte("123456789"), 0x31C3},
		{[]byte("abcdefghijklmnopqrstuvwxyz0123456789"), 0xCBDE},
		{[]byte{0x7F}, 0x8F78},
		{[]byte{0x80}, 0x9188},
		{[]byte{0xFF}, 0x1EF0},
		{[]byte{0x00, 0x01, 0x7D, 0x7E, 0x7F, 0x80, 0xFE, 0xFF}, 0xE26F},
	}
	for _, v := range vectors {
		if got := Checksum(v.input); got != v.want {
			t.Errorf("Checksum(%q) = 0x%04X, want 0x%04X", v.input, got, v.want)
		}
	}
}

func TestChecksumDeterministic(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	first := Checksum(data)
	for i := 0; i < 10; i++ {
		if got := Checksum(data); got != first {
			t.Fatalf("checksum not deterministic: 0x%04X then 0x%04X", first, got)
		}
	}
}

func TestValidate(t *testing.T) {
	data := []byte("123456789")
	if !Validate(data, 0x31C3) {
		t.Fatalf("expected Validate to accept the correct checksum")
	}
	if Validate(data, 0x31C4) {
		t.Fatalf("expected Validate to reject a wrong checksum")
	}
}

package nkeys

import (
	"encoding/base32"
	"encoding/binary"

	"xdao.co/nkeys/crc16"
)

// Token layout: prefix (1 byte, or 2 for seeds) || payload || CRC-16/XMODEM
// (2 bytes, little-endian, computed over prefix+payload), base32-encoded
// with the RFC 4648 alphabet and no padding.
const (
	seedLen      = 32
	publicKeyLen = 32
	// Expanded Ed25519 private key: seed || public key.
	privateKeyLen = 64

	crcLen = 2
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// DecodedSeed is the transient result of decoding a seed token: the
// recovered role and the 32 raw seed bytes.
type DecodedSeed struct {
	Role Role
	Seed []byte
}

// Encode encodes a 32-byte public key into a role-prefixed token.
func Encode(role Role, payload []byte) (string, error) {
	if !role.Valid() {
		return "", newError(KindPrefix, "NKEY-PFX-004", "unknown role code")
	}
	if len(payload) != publicKeyLen {
		return "", newError(KindPayload, "NKEY-PAY-001", "public key payload must be 32 bytes")
	}
	return encode([]byte{role.prefixByte()}, payload), nil
}

// EncodePrivate encodes a 64-byte expanded Ed25519 private key into a
// private token. Private tokens share the 'P' prefix across all roles.
func EncodePrivate(raw []byte) (string, error) {
	if len(raw) != privateKeyLen {
		return "", newError(KindPayload, "NKEY-PAY-002", "private key payload must be 64 bytes")
	}
	return encode([]byte{codePrivate << prefixShift}, raw), nil
}

// EncodeSeed encodes a 32-byte raw seed into a seed token for role.
// The role code is packed across two prefix bytes so the token always
// begins with "S" followed by the role letter.
func EncodeSeed(role Role, seed []byte) (string, error) {
	if !role.Valid() {
		return "", newError(KindPrefix, "NKEY-PFX-004", "unknown role code")
	}
	if len(seed) != seedLen {
		return "", newError(KindPayload, "NKEY-PAY-001", "seed payload must be 32 bytes")
	}
	p := role.prefixByte()
	b0 := codeSeed<<prefixShift | p>>5
	b1 := (p & 31) << prefixShift
	return encode([]byte{b0, b1}, seed), nil
}

func encode(prefix, payload []byte) string {
	raw := make([]byte, 0, len(prefix)+len(payload)+crcLen)
	raw = append(raw, prefix...)
	raw = append(raw, payload...)
	raw = binary.LittleEndian.AppendUint16(raw, crc16.Checksum(raw))
	return b32.EncodeToString(raw)
}

// Decode decodes a public token, checking that its prefix carries the
// expected role, and returns the 32 payload bytes.
func Decode(role Role, token string) ([]byte, error) {
	if !role.Valid() {
		return nil, newError(KindPrefix, "NKEY-PFX-004", "unknown role code")
	}
	raw, err := decodeRaw(token)
	if err != nil {
		return nil, err
	}
	if raw[0] != role.prefixByte() {
		return nil, newError(KindPrefix, "NKEY-PFX-001", "token is not a "+role.String()+" public key")
	}
	if len(raw[1:]) != publicKeyLen {
		return nil, newError(KindPayload, "NKEY-PAY-001", "public key payload must be 32 bytes")
	}
	return raw[1:], nil
}

// DecodePrivate decodes a private token and returns the 64 payload bytes.
func DecodePrivate(token string) ([]byte, error) {
	raw, err := decodeRaw(token)
	if err != nil {
		return nil, err
	}
	if raw[0] != codePrivate<<prefixShift {
		return nil, newError(KindPrefix, "NKEY-PFX-002", "token is not a private key")
	}
	if len(raw[1:]) != privateKeyLen {
		return nil, newError(KindPayload, "NKEY-PAY-002", "private key payload must be 64 bytes")
	}
	return raw[1:], nil
}

// DecodeSeed decodes a seed token, reversing the two-byte prefix packing.
// The caller checks the recovered role if it expects a particular one.
//
// Besides the 32-byte payload EncodeSeed produces, legacy seed tokens
// carrying the full 64-byte expanded private key are accepted; the raw
// seed is its first 32 bytes.
func DecodeSeed(token string) (DecodedSeed, error) {
	raw, err := decodeRaw(token)
	if err != nil {
		return DecodedSeed{}, err
	}
	if len(raw) < 2 {
		return DecodedSeed{}, newError(KindEncoding, "NKEY-ENC-003", "token too short for a seed")
	}
	if raw[0]&0xf8 != codeSeed<<prefixShift {
		return DecodedSeed{}, newError(KindPrefix, "NKEY-PFX-003", "token is not a seed")
	}
	role, ok := roleFromPrefix((raw[0]&7)<<5 | raw[1]>>prefixShift)
	if !ok {
		return DecodedSeed{}, newError(KindPrefix, "NKEY-PFX-004", "seed carries an unknown role code")
	}
	payload := raw[2:]
	if len(payload) != seedLen && len(payload) != privateKeyLen {
		return DecodedSeed{}, newError(KindPayload, "NKEY-PAY-001", "seed payload must be 32 or 64 bytes")
	}
	return DecodedSeed{Role: role, Seed: payload[:seedLen]}, nil
}

// decodeRaw base32-decodes a token, verifies and strips the checksum
// trailer, and returns the prefix+payload bytes. The checksum is verified
// before any prefix or payload interpretation happens.
func decodeRaw(token string) ([]byte, error) {
	if token == "" {
		return nil, newError(KindEncoding, "NKEY-ENC-001", "empty token")
	}
	raw, err := b32.DecodeString(token)
	if err != nil {
		return nil, wrapError(KindEncoding, "NKEY-ENC-002", "token is not valid base32", err)
	}
	if len(raw) < 1+crcLen {
		return nil, newError(KindEncoding, "NKEY-ENC-003", "token too short")
	}
	body, trailer := raw[:len(raw)-crcLen], raw[len(raw)-crcLen:]
	if !crc16.Validate(body, binary.LittleEndian.Uint16(trailer)) {
		return nil, newError(KindChecksum, "NKEY-CRC-001", "token checksum mismatch")
	}
	return body, nil
}

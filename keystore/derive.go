package keystore

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"xdao.co/nkeys/nkeys"
)

const deriveInfoPrefix = "xdao/nkeys/derive/v1/role:"

// DeriveRoleSeed deterministically derives a role-specific raw seed from a
// 32-byte root seed using HKDF-SHA256. Different roles derive unrelated
// seeds from the same root.
func DeriveRoleSeed(rootSeed []byte, role nkeys.Role) ([]byte, error) {
	if len(rootSeed) != 32 {
		return nil, fmt.Errorf("root seed must be 32 bytes, got %d", len(rootSeed))
	}
	if !role.Valid() {
		return nil, fmt.Errorf("cannot derive a seed for an unknown role")
	}
	reader := hkdf.New(sha256.New, rootSeed, nil, []byte(deriveInfoPrefix+role.String()))
	out := make([]byte, 32)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeriveRoleKey derives a full key of the given role from a root key's seed.
func DeriveRoleKey(root *nkeys.NKey, role nkeys.Role) (*nkeys.NKey, error) {
	seedToken, err := root.Seed()
	if err != nil {
		return nil, err
	}
	decoded, err := nkeys.DecodeSeed(seedToken)
	if err != nil {
		return nil, err
	}
	roleSeed, err := DeriveRoleSeed(decoded.Seed, role)
	if err != nil {
		return nil, err
	}
	return nkeys.FromRawSeed(role, roleSeed)
}

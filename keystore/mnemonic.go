package keystore

import (
	"crypto/ed25519"
	"fmt"

	"github.com/tyler-smith/go-bip39"

	"xdao.co/nkeys/nkeys"
)

// Mnemonic returns the 24-word BIP-39 encoding of a full key's raw seed,
// for offline backup. The words encode the seed only; the role is not part
// of the backup and must be supplied again on recovery.
func Mnemonic(key *nkeys.NKey) (string, error) {
	seedToken, err := key.Seed()
	if err != nil {
		return "", err
	}
	decoded, err := nkeys.DecodeSeed(seedToken)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(decoded.Seed)
}

// FromMnemonic recovers a full key of the given role from a 24-word
// mnemonic produced by Mnemonic.
func FromMnemonic(role nkeys.Role, mnemonic string) (*nkeys.NKey, error) {
	entropy, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	if len(entropy) != ed25519.SeedSize {
		return nil, fmt.Errorf("mnemonic encodes %d bytes, want %d", len(entropy), ed25519.SeedSize)
	}
	return nkeys.FromRawSeed(role, entropy)
}

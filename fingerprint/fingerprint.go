// Package fingerprint derives role-independent content identifiers for
// public keys. The fingerprint of a key is the CIDv1 (raw multicodec,
// sha2-256 multihash) of its 32 raw public key bytes, so the same keypair
// yields the same fingerprint regardless of which role-typed token it was
// read from.
package fingerprint

import (
	"crypto/ed25519"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"xdao.co/nkeys/nkeys"
)

// FromRaw returns the fingerprint of 32 raw Ed25519 public key bytes.
func FromRaw(pub []byte) (string, error) {
	if len(pub) != ed25519.PublicKeySize {
		return "", &nkeys.Error{
			Kind:    nkeys.KindPayload,
			RuleID:  "NKEY-PAY-001",
			Message: "public key must be 32 bytes",
		}
	}
	sum, err := multihash.Sum(pub, multihash.SHA2_256, -1)
	if err != nil {
		// multihash.Sum only errors for invalid inputs; with SHA2_256 and -1
		// length, this should be unreachable.
		return "", err
	}
	return cid.NewCidV1(cid.Raw, sum).String(), nil
}

// FromPublicKey returns the fingerprint of an encoded public key token of
// any role.
func FromPublicKey(token string) (string, error) {
	key, err := nkeys.FromPublicKey(token)
	if err != nil {
		return "", err
	}
	return FromKey(key)
}

// FromKey returns the fingerprint of an existing key, full or public-only.
func FromKey(key *nkeys.NKey) (string, error) {
	token, err := key.PublicKey()
	if err != nil {
		return "", err
	}
	raw, err := nkeys.Decode(key.Type(), token)
	if err != nil {
		return "", err
	}
	return FromRaw(raw)
}

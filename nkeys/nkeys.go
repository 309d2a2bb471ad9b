package nkeys

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"io"
)

// NKey is an immutable identity key: either a full key holding the raw seed
// (able to sign and export its seed and private key) or a public-only key
// (able only to verify and export its public key). There are no setters;
// a constructed key is safe for concurrent read-only use. Wipe is the one
// destructive operation and must not race with other calls.
type NKey struct {
	role Role
	seed []byte // nil for public-only keys
	pub  ed25519.PublicKey
}

// CreatePair generates a full key of the given role. A nil rng falls back
// to crypto/rand.
func CreatePair(role Role, rng io.Reader) (*NKey, error) {
	if !role.Valid() {
		return nil, newError(KindPrefix, "NKEY-PFX-004", "unknown role code")
	}
	if rng == nil {
		rng = rand.Reader
	}
	seed := make([]byte, seedLen)
	if _, err := io.ReadFull(rng, seed); err != nil {
		return nil, wrapError(KindArgument, "NKEY-ARG-004", "short read from entropy source", err)
	}
	return FromRawSeed(role, seed)
}

// CreateAccount generates a full account key ("A"/"SA" tokens).
func CreateAccount(rng io.Reader) (*NKey, error) { return CreatePair(RoleAccount, rng) }

// CreateUser generates a full user key ("U"/"SU" tokens).
func CreateUser(rng io.Reader) (*NKey, error) { return CreatePair(RoleUser, rng) }

// CreateServer generates a full server key ("N"/"SN" tokens).
func CreateServer(rng io.Reader) (*NKey, error) { return CreatePair(RoleServer, rng) }

// CreateCluster generates a full cluster key ("C"/"SC" tokens).
func CreateCluster(rng io.Reader) (*NKey, error) { return CreatePair(RoleCluster, rng) }

// CreateOperator generates a full operator key ("O"/"SO" tokens).
func CreateOperator(rng io.Reader) (*NKey, error) { return CreatePair(RoleOperator, rng) }

// FromRawSeed builds a full key of the given role from 32 raw seed bytes.
// The seed is copied; the caller may zero its buffer afterward.
func FromRawSeed(role Role, raw []byte) (*NKey, error) {
	if !role.Valid() {
		return nil, newError(KindPrefix, "NKEY-PFX-004", "unknown role code")
	}
	if len(raw) != seedLen {
		return nil, newError(KindPayload, "NKEY-PAY-001", "raw seed must be 32 bytes")
	}
	seed := make([]byte, seedLen)
	copy(seed, raw)
	priv := ed25519.NewKeyFromSeed(seed)
	return &NKey{
		role: role,
		seed: seed,
		pub:  priv.Public().(ed25519.PublicKey),
	}, nil
}

// FromSeed builds a full key from an encoded seed token. The role is
// recovered from the token. Anything that is not a well-formed seed token,
// including public or private tokens, is rejected here, never lazily at use.
func FromSeed(token string) (*NKey, error) {
	decoded, err := DecodeSeed(token)
	if err != nil {
		return nil, wrapError(KindArgument, "NKEY-ARG-001", "invalid seed token", err)
	}
	return FromRawSeed(decoded.Role, decoded.Seed)
}

// FromPublicKey builds a public-only key from an encoded public key token.
// Seed and private tokens are rejected.
func FromPublicKey(token string) (*NKey, error) {
	raw, err := decodeRaw(token)
	if err != nil {
		return nil, wrapError(KindArgument, "NKEY-ARG-002", "invalid public key token", err)
	}
	role, ok := roleFromPrefix(raw[0])
	if !ok {
		return nil, newError(KindArgument, "NKEY-ARG-002", "token is not a public key")
	}
	if len(raw[1:]) != publicKeyLen {
		return nil, newError(KindArgument, "NKEY-ARG-002", "public key payload must be 32 bytes")
	}
	pub := make([]byte, publicKeyLen)
	copy(pub, raw[1:])
	return &NKey{role: role, pub: pub}, nil
}

// Type returns the key's role.
func (k *NKey) Type() Role {
	return k.role
}

// PublicKey returns the role-prefixed public key token.
func (k *NKey) PublicKey() (string, error) {
	return Encode(k.role, k.pub)
}

// Seed returns the encoded seed token. Fails on a public-only key.
func (k *NKey) Seed() (string, error) {
	if k.seed == nil {
		return "", newError(KindState, "NKEY-STATE-002", "no seed available on a public-only key")
	}
	return EncodeSeed(k.role, k.seed)
}

// PrivateKey returns the encoded private key token. Fails on a public-only key.
func (k *NKey) PrivateKey() (string, error) {
	if k.seed == nil {
		return "", newError(KindState, "NKEY-STATE-003", "no private key available on a public-only key")
	}
	return EncodePrivate(ed25519.NewKeyFromSeed(k.seed))
}

// Sign returns the 64-byte Ed25519 signature over msg.
// Fails on a public-only key.
func (k *NKey) Sign(msg []byte) ([]byte, error) {
	if k.seed == nil {
		return nil, newError(KindState, "NKEY-STATE-001", "cannot sign with a public-only key")
	}
	return ed25519.Sign(ed25519.NewKeyFromSeed(k.seed), msg), nil
}

// Verify reports whether sig is a valid Ed25519 signature over msg under
// this key's public key. A non-matching or malformed signature yields
// false, never an error.
func (k *NKey) Verify(msg, sig []byte) bool {
	return ed25519.Verify(k.pub, msg, sig)
}

// Equal reports whether both keys encode to the same public key token.
// A public-only key and a full key derived from the same seed are equal.
func (k *NKey) Equal(other *NKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.role == other.role && bytes.Equal(k.pub, other.pub)
}

// Wipe zeroes the raw seed, turning a full key into a public-only key.
// Callers holding seed-bearing keys are expected to wipe them promptly
// once the seed is no longer needed.
func (k *NKey) Wipe() {
	for i := range k.seed {
		k.seed[i] = 0
	}
	k.seed = nil
}

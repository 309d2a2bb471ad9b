package nkeys

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// The user-1 vector was produced by an independent implementation of the
// same token format; it pins the wire format bit-exact.
func readVector(t *testing.T, name string) string {
	t.Helper()
	root := filepath.Join("..", "testdata", "conformance", "nkeys", "user-1")
	b, err := os.ReadFile(filepath.Join(root, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	s := strings.TrimRight(string(b), "\n")
	if s == "" {
		t.Fatalf("empty vector file %s", name)
	}
	return s
}

func TestConformanceVectors_User1(t *testing.T) {
	seed := readVector(t, "seed.nk")
	wantPublic := readVector(t, "public.nk")
	wantPrivate := readVector(t, "private.nk")
	message := []byte(readVector(t, "message.txt"))
	wantSig, err := base64.StdEncoding.DecodeString(readVector(t, "signature.b64"))
	if err != nil {
		t.Fatalf("decode signature vector: %v", err)
	}

	key, err := FromSeed(seed)
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	if key.Type() != RoleUser {
		t.Fatalf("Type() = %s, want user", key.Type())
	}

	gotPublic, err := key.PublicKey()
	if err != nil {
		t.Fatalf("PublicKey: %v", err)
	}
	if gotPublic != wantPublic {
		t.Fatalf("public key mismatch:\n got %s\nwant %s", gotPublic, wantPublic)
	}
	gotPrivate, err := key.PrivateKey()
	if err != nil {
		t.Fatalf("PrivateKey: %v", err)
	}
	if gotPrivate != wantPrivate {
		t.Fatalf("private key mismatch:\n got %s\nwant %s", gotPrivate, wantPrivate)
	}

	sig, err := key.Sign(message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !bytes.Equal(sig, wantSig) {
		t.Fatalf("signature mismatch:\n got %s\nwant %s",
			base64.StdEncoding.EncodeToString(sig), base64.StdEncoding.EncodeToString(wantSig))
	}
	if !key.Verify(message, wantSig) {
		t.Fatalf("vector signature did not verify under the seed key")
	}

	pubOnly, err := FromPublicKey(wantPublic)
	if err != nil {
		t.Fatalf("FromPublicKey: %v", err)
	}
	if !pubOnly.Verify(message, wantSig) {
		t.Fatalf("vector signature did not verify under the public-only key")
	}

	// The vector seed carries the legacy 64-byte payload. Re-encoding the
	// recovered raw seed yields the canonical 32-byte form, which must
	// still name the same keypair.
	decoded, err := DecodeSeed(seed)
	if err != nil {
		t.Fatalf("DecodeSeed: %v", err)
	}
	if decoded.Role != RoleUser {
		t.Fatalf("decoded role %s, want user", decoded.Role)
	}
	if len(decoded.Seed) != 32 {
		t.Fatalf("decoded seed is %d bytes, want 32", len(decoded.Seed))
	}
	canonical, err := EncodeSeed(decoded.Role, decoded.Seed)
	if err != nil {
		t.Fatalf("EncodeSeed: %v", err)
	}
	if !strings.HasPrefix(canonical, "SU") {
		t.Fatalf("canonical seed leads with %q, want SU", canonical[:2])
	}
	canonicalKey, err := FromSeed(canonical)
	if err != nil {
		t.Fatalf("FromSeed(canonical): %v", err)
	}
	if !key.Equal(canonicalKey) {
		t.Fatalf("canonical seed names a different keypair")
	}
}

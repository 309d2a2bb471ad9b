package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runOK(t *testing.T, args ...string) string {
	t.Helper()
	var out, errOut bytes.Buffer
	if code := run(args, &out, &errOut); code != 0 {
		t.Fatalf("nk %s: exit %d, stderr: %s", strings.Join(args, " "), code, errOut.String())
	}
	return out.String()
}

func fieldAfter(t *testing.T, output, label string) string {
	t.Helper()
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, label) {
			return strings.TrimSpace(strings.TrimPrefix(line, label))
		}
	}
	t.Fatalf("no %q line in output:\n%s", label, output)
	return ""
}

func TestGenShowSignVerify(t *testing.T) {
	genOut := runOK(t, "gen", "--role", "account")
	seed := fieldAfter(t, genOut, "Seed:")
	pub := fieldAfter(t, genOut, "Public:")
	if !strings.HasPrefix(seed, "SA") || !strings.HasPrefix(pub, "A") {
		t.Fatalf("unexpected account tokens: seed %q public %q", seed, pub)
	}

	showOut := runOK(t, "show", "--seed", seed)
	if got := fieldAfter(t, showOut, "Public:"); got != pub {
		t.Fatalf("show public = %s, want %s", got, pub)
	}
	if got := fieldAfter(t, showOut, "Role:"); got != "account" {
		t.Fatalf("show role = %s, want account", got)
	}

	msgFile := filepath.Join(t.TempDir(), "msg.txt")
	if err := os.WriteFile(msgFile, []byte("signed through the CLI"), 0o600); err != nil {
		t.Fatalf("write message: %v", err)
	}
	sig := strings.TrimSpace(runOK(t, "sign", "--seed", seed, msgFile))

	verifyOut := runOK(t, "verify", "--pub", pub, "--sig", sig, msgFile)
	if !strings.Contains(verifyOut, "OK") {
		t.Fatalf("verify output %q, want OK", verifyOut)
	}

	bad := []byte(sig)
	if bad[20] == 'A' {
		bad[20] = 'B'
	} else {
		bad[20] = 'A'
	}
	var out, errOut bytes.Buffer
	if code := run([]string{"verify", "--pub", pub, "--sig", string(bad), msgFile}, &out, &errOut); code == 0 {
		t.Fatalf("expected a corrupted signature to fail verification")
	}
}

func TestKeyStoreCommands(t *testing.T) {
	dir := t.TempDir()

	initOut := runOK(t, "key", "init", "--name", "acme", "--role", "operator", "--dir", dir)
	pub := fieldAfter(t, initOut, "Public:")
	if !strings.HasPrefix(pub, "O") {
		t.Fatalf("operator public token %q should lead with O", pub)
	}

	runOK(t, "key", "derive", "--from", "acme", "--role", "user", "--dir", dir)

	listOut := runOK(t, "key", "list", "--dir", dir)
	if !strings.Contains(listOut, "acme") || !strings.Contains(listOut, "user") {
		t.Fatalf("list output missing identity or role:\n%s", listOut)
	}

	seed := strings.TrimSpace(runOK(t, "key", "export", "--name", "acme", "--dir", dir))
	if !strings.HasPrefix(seed, "SO") {
		t.Fatalf("exported operator seed %q should lead with SO", seed)
	}

	words := strings.TrimSpace(runOK(t, "key", "export", "--name", "acme", "--dir", dir, "--mnemonic"))
	if n := len(strings.Fields(words)); n != 24 {
		t.Fatalf("mnemonic export has %d words, want 24", n)
	}

	fp := strings.TrimSpace(runOK(t, "fingerprint", "--pub", pub))
	if !strings.HasPrefix(fp, "bafkrei") {
		t.Fatalf("unexpected fingerprint %q", fp)
	}
}

func TestUnknownCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"frobnicate"}, &out, &errOut); code != 2 {
		t.Fatalf("unknown command exit = %d, want 2", code)
	}
}

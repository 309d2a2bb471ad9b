package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"xdao.co/nkeys/fingerprint"
	"xdao.co/nkeys/keystore"
	"xdao.co/nkeys/nkeys"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "gen":
		return cmdGen(args[1:], out, errOut)
	case "show":
		return cmdShow(args[1:], out, errOut)
	case "sign":
		return cmdSign(args[1:], out, errOut)
	case "verify":
		return cmdVerify(args[1:], out, errOut)
	case "fingerprint":
		return cmdFingerprint(args[1:], out, errOut)
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "nk: NKey generation and signing CLI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  nk gen --role <account|user|server|cluster|operator>")
	fmt.Fprintln(w, "  nk show --seed <token>")
	fmt.Fprintln(w, "  nk sign --seed <token> <file>")
	fmt.Fprintln(w, "  nk verify --pub <token> --sig <base64> <file>")
	fmt.Fprintln(w, "  nk fingerprint --pub <token>")
	fmt.Fprintln(w, "  nk key init --name <name> --role <role> [--dir <dir>] [--force]")
	fmt.Fprintln(w, "  nk key derive --from <name> --role <role> [--dir <dir>] [--force]")
	fmt.Fprintln(w, "  nk key list [--dir <dir>]")
	fmt.Fprintln(w, "  nk key export --name <name> [--role <role>] [--dir <dir>] [--mnemonic]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - seeds lead with S plus the role letter; treat them as secrets")
	fmt.Fprintln(w, "  - the keystore lives under ~/.nkeys (0600 seed files) unless --dir is given")
	fmt.Fprintln(w, "  - sign prints a base64 Ed25519 signature over the file bytes")
}

func parseRoleFlag(role string, errOut io.Writer) (nkeys.Role, bool) {
	r, err := nkeys.ParseRole(role)
	if err != nil {
		fmt.Fprintf(errOut, "invalid role %q: use account, user, server, cluster, or operator\n", role)
		return 0, false
	}
	return r, true
}

func cmdGen(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var role string
	fs.StringVar(&role, "role", "user", "Role of the generated key")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	r, ok := parseRoleFlag(role, errOut)
	if !ok {
		return 2
	}
	key, err := nkeys.CreatePair(r, nil)
	if err != nil {
		fmt.Fprintf(errOut, "generate: %v\n", err)
		return 1
	}
	seed, err := key.Seed()
	if err != nil {
		fmt.Fprintf(errOut, "seed: %v\n", err)
		return 1
	}
	pub, err := key.PublicKey()
	if err != nil {
		fmt.Fprintf(errOut, "public key: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Seed:   %s\n", seed)
	fmt.Fprintf(out, "Public: %s\n", pub)
	key.Wipe()
	return 0
}

func cmdShow(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var seed string
	var private bool
	fs.StringVar(&seed, "seed", "", "Seed token")
	fs.BoolVar(&private, "private", false, "Also print the private key token")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if seed == "" {
		fmt.Fprintln(errOut, "usage: nk show --seed <token> [--private]")
		return 2
	}
	key, err := nkeys.FromSeed(strings.TrimSpace(seed))
	if err != nil {
		fmt.Fprintf(errOut, "invalid seed: %v\n", err)
		return 1
	}
	pub, err := key.PublicKey()
	if err != nil {
		fmt.Fprintf(errOut, "public key: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Role:   %s\n", key.Type())
	fmt.Fprintf(out, "Public: %s\n", pub)
	if private {
		priv, err := key.PrivateKey()
		if err != nil {
			fmt.Fprintf(errOut, "private key: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "Private: %s\n", priv)
	}
	key.Wipe()
	return 0
}

func cmdSign(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var seed string
	fs.StringVar(&seed, "seed", "", "Seed token")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if seed == "" || fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: nk sign --seed <token> <file>")
		return 2
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", fs.Arg(0), err)
		return 1
	}
	key, err := nkeys.FromSeed(strings.TrimSpace(seed))
	if err != nil {
		fmt.Fprintf(errOut, "invalid seed: %v\n", err)
		return 1
	}
	sig, err := key.Sign(data)
	key.Wipe()
	if err != nil {
		fmt.Fprintf(errOut, "sign: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, base64.StdEncoding.EncodeToString(sig))
	return 0
}

func cmdVerify(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var pub string
	var sigB64 string
	fs.StringVar(&pub, "pub", "", "Public key token")
	fs.StringVar(&sigB64, "sig", "", "Base64 signature")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if pub == "" || sigB64 == "" || fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: nk verify --pub <token> --sig <base64> <file>")
		return 2
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", fs.Arg(0), err)
		return 1
	}
	sig, err := base64.StdEncoding.DecodeString(strings.TrimSpace(sigB64))
	if err != nil {
		fmt.Fprintf(errOut, "invalid signature encoding: %v\n", err)
		return 1
	}
	key, err := nkeys.FromPublicKey(strings.TrimSpace(pub))
	if err != nil {
		fmt.Fprintf(errOut, "invalid public key: %v\n", err)
		return 1
	}
	if !key.Verify(data, sig) {
		fmt.Fprintln(errOut, "signature does not verify")
		return 1
	}
	fmt.Fprintln(out, "OK")
	return 0
}

func cmdFingerprint(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("fingerprint", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var pub string
	fs.StringVar(&pub, "pub", "", "Public key token")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if pub == "" {
		fmt.Fprintln(errOut, "usage: nk fingerprint --pub <token>")
		return 2
	}
	fp, err := fingerprint.FromPublicKey(strings.TrimSpace(pub))
	if err != nil {
		fmt.Fprintf(errOut, "fingerprint: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, fp)
	return 0
}

func openStore(dir string, errOut io.Writer) (*keystore.KeyStore, bool) {
	ks, err := keystore.CreateKeyStore(dir)
	if err != nil {
		fmt.Fprintf(errOut, "keystore: %v\n", err)
		return nil, false
	}
	return ks, true
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: nk key <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: init, derive, list, export")
		return 2
	}
	switch args[0] {
	case "init":
		fs := flag.NewFlagSet("key init", flag.ContinueOnError)
		fs.SetOutput(errOut)
		var name, role, dir string
		var force bool
		fs.StringVar(&name, "name", "", "Identity name")
		fs.StringVar(&role, "role", "operator", "Role of the root key")
		fs.StringVar(&dir, "dir", "", "Keystore directory")
		fs.BoolVar(&force, "force", false, "Overwrite an existing root key")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if name == "" {
			fmt.Fprintln(errOut, "usage: nk key init --name <name> [--role <role>] [--force]")
			return 2
		}
		r, ok := parseRoleFlag(role, errOut)
		if !ok {
			return 2
		}
		ks, ok := openStore(dir, errOut)
		if !ok {
			return 1
		}
		key, err := nkeys.CreatePair(r, nil)
		if err != nil {
			fmt.Fprintf(errOut, "generate: %v\n", err)
			return 1
		}
		pub, path, err := ks.Store(name, key, force)
		key.Wipe()
		if err != nil {
			fmt.Fprintf(errOut, "store: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "Public: %s\n", pub)
		fmt.Fprintf(out, "Stored: %s\n", path)
		return 0
	case "derive":
		fs := flag.NewFlagSet("key derive", flag.ContinueOnError)
		fs.SetOutput(errOut)
		var from, role, dir string
		var force bool
		fs.StringVar(&from, "from", "", "Identity holding the root key")
		fs.StringVar(&role, "role", "", "Role to derive")
		fs.StringVar(&dir, "dir", "", "Keystore directory")
		fs.BoolVar(&force, "force", false, "Overwrite an existing derived key")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if from == "" || role == "" {
			fmt.Fprintln(errOut, "usage: nk key derive --from <name> --role <role> [--force]")
			return 2
		}
		r, ok := parseRoleFlag(role, errOut)
		if !ok {
			return 2
		}
		ks, ok := openStore(dir, errOut)
		if !ok {
			return 1
		}
		pub, path, err := ks.DeriveRole(from, r, force)
		if err != nil {
			fmt.Fprintf(errOut, "derive: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "Public: %s\n", pub)
		fmt.Fprintf(out, "Stored: %s\n", path)
		return 0
	case "list":
		fs := flag.NewFlagSet("key list", flag.ContinueOnError)
		fs.SetOutput(errOut)
		var dir string
		fs.StringVar(&dir, "dir", "", "Keystore directory")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		ks, ok := openStore(dir, errOut)
		if !ok {
			return 1
		}
		entries, err := ks.List()
		if err != nil {
			fmt.Fprintf(errOut, "list: %v\n", err)
			return 1
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s\t%s\t%s\n", e.Name, e.PublicKey, e.Fingerprint)
			for _, role := range e.Roles {
				fmt.Fprintf(out, "  %s\n", role)
			}
		}
		return 0
	case "export":
		fs := flag.NewFlagSet("key export", flag.ContinueOnError)
		fs.SetOutput(errOut)
		var name, role, dir string
		var asMnemonic bool
		fs.StringVar(&name, "name", "", "Identity name")
		fs.StringVar(&role, "role", "", "Derived role (root key when empty)")
		fs.StringVar(&dir, "dir", "", "Keystore directory")
		fs.BoolVar(&asMnemonic, "mnemonic", false, "Print a 24-word backup instead of the seed token")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if name == "" {
			fmt.Fprintln(errOut, "usage: nk key export --name <name> [--role <role>] [--mnemonic]")
			return 2
		}
		ks, ok := openStore(dir, errOut)
		if !ok {
			return 1
		}
		key, err := ks.Load(name, role)
		if err != nil {
			fmt.Fprintf(errOut, "load: %v\n", err)
			return 1
		}
		if asMnemonic {
			words, merr := keystore.Mnemonic(key)
			key.Wipe()
			if merr != nil {
				fmt.Fprintf(errOut, "mnemonic: %v\n", merr)
				return 1
			}
			fmt.Fprintln(out, words)
			return 0
		}
		seed, serr := key.Seed()
		key.Wipe()
		if serr != nil {
			fmt.Fprintf(errOut, "seed: %v\n", serr)
			return 1
		}
		fmt.Fprintln(out, seed)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown key subcommand: %s\n", args[0])
		return 2
	}
}

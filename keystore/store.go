// Package keystore provides local-first storage, derivation, and backup
// helpers around nkeys.
//
// API stability:
//
// Stable (SemVer-protected):
//   - Pure, deterministic primitives: role-seed derivation and mnemonic
//     encoding/recovery.
//
// Experimental:
//   - Filesystem-backed key storage and convenience helpers (KeyStore and
//     related functions). These are local-first utilities and are not part
//     of the long-term wire-format contract.
package keystore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"xdao.co/nkeys/fingerprint"
	"xdao.co/nkeys/nkeys"
)

// KeyStore stores encoded seed tokens on the local filesystem, one identity
// per directory:
//
//	<dir>/<name>/root.nk          root seed token
//	<dir>/<name>/roles/<role>.nk  derived role seed tokens
//
// Seed files are written 0600 under 0700 directories.
type KeyStore struct {
	Directory string
}

// Entry describes one stored identity.
type Entry struct {
	Name        string
	PublicKey   string
	Fingerprint string
	Roles       []string
}

func GetDefaultDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".nkeys"), nil
}

func CreateKeyStore(directory string) (*KeyStore, error) {
	if directory == "" {
		var err error
		directory, err = GetDefaultDirectory()
		if err != nil {
			return nil, err
		}
	}
	return &KeyStore{Directory: directory}, nil
}

func (ks *KeyStore) rootKeyPath(name string) string {
	return filepath.Join(ks.Directory, name, "root.nk")
}

func (ks *KeyStore) roleKeyPath(name, role string) string {
	return filepath.Join(ks.Directory, name, "roles", role+".nk")
}

// CheckName validates an identity name for use as a directory component.
func CheckName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	for _, char := range name {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			continue
		}
		return fmt.Errorf("invalid character %q in name", char)
	}
	return nil
}

func (ks *KeyStore) saveSeedToFile(filePath, seedToken string, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o700); err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	file, err := os.OpenFile(filePath, flags, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.WriteString(seedToken + "\n"); err != nil {
		return err
	}
	return file.Close()
}

func (ks *KeyStore) loadKeyFromFile(filePath string) (*nkeys.NKey, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return nkeys.FromSeed(strings.TrimSpace(string(data)))
}

// Store writes a full key's seed token as the root key of an identity and
// returns its public key token and the file path.
func (ks *KeyStore) Store(name string, key *nkeys.NKey, overwrite bool) (publicKey string, filePath string, err error) {
	if err := CheckName(name); err != nil {
		return "", "", err
	}
	seed, err := key.Seed()
	if err != nil {
		return "", "", err
	}
	filePath = ks.rootKeyPath(name)
	if err := ks.saveSeedToFile(filePath, seed, overwrite); err != nil {
		return "", "", err
	}
	publicKey, err = key.PublicKey()
	if err != nil {
		return "", "", err
	}
	return publicKey, filePath, nil
}

// DeriveRole derives a role-specific key from an identity's root seed,
// stores it under roles/, and returns its public key token and file path.
// Derivation is deterministic; re-deriving the same role yields the same key.
func (ks *KeyStore) DeriveRole(from string, role nkeys.Role, overwrite bool) (publicKey string, filePath string, err error) {
	if err := CheckName(from); err != nil {
		return "", "", err
	}
	rootKey, err := ks.loadKeyFromFile(ks.rootKeyPath(from))
	if err != nil {
		return "", "", err
	}
	roleKey, err := DeriveRoleKey(rootKey, role)
	if err != nil {
		return "", "", err
	}
	seed, err := roleKey.Seed()
	if err != nil {
		return "", "", err
	}
	filePath = ks.roleKeyPath(from, role.String())
	if err := ks.saveSeedToFile(filePath, seed, overwrite); err != nil {
		return "", "", err
	}
	publicKey, err = roleKey.PublicKey()
	if err != nil {
		return "", "", err
	}
	return publicKey, filePath, nil
}

// Load returns the stored key for an identity: the root key when role is
// empty, otherwise the derived role key.
func (ks *KeyStore) Load(name, role string) (*nkeys.NKey, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}
	if role == "" {
		return ks.loadKeyFromFile(ks.rootKeyPath(name))
	}
	if _, err := nkeys.ParseRole(role); err != nil {
		return nil, err
	}
	return ks.loadKeyFromFile(ks.roleKeyPath(name, role))
}

// Export returns the stored seed token for an identity.
func (ks *KeyStore) Export(name, role string) (string, error) {
	key, err := ks.Load(name, role)
	if err != nil {
		return "", err
	}
	return key.Seed()
}

// List returns the stored identities sorted by name, each with its root
// public key, fingerprint, and derived roles.
func (ks *KeyStore) List() ([]Entry, error) {
	entries, err := os.ReadDir(ks.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var result []Entry
	for _, name := range names {
		e := Entry{Name: name}
		if rootKey, rerr := ks.loadKeyFromFile(ks.rootKeyPath(name)); rerr == nil {
			if pub, perr := rootKey.PublicKey(); perr == nil {
				e.PublicKey = pub
			}
			if fp, ferr := fingerprint.FromKey(rootKey); ferr == nil {
				e.Fingerprint = fp
			}
			rootKey.Wipe()
		}
		rolesDir := filepath.Join(ks.Directory, name, "roles")
		if roleEntries, rerr := os.ReadDir(rolesDir); rerr == nil {
			for _, roleEntry := range roleEntries {
				if roleEntry.IsDir() {
					continue
				}
				if strings.HasSuffix(roleEntry.Name(), ".nk") {
					e.Roles = append(e.Roles, strings.TrimSuffix(roleEntry.Name(), ".nk"))
				}
			}
			sort.Strings(e.Roles)
		}
		result = append(result, e)
	}
	return result, nil
}

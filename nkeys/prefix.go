package nkeys

// Role identifies the category of identity a key represents. Each role maps
// to a 5-bit code whose value, shifted into the high bits of the token's
// first byte, pins the leading base32 character of every encoded string:
// 'A' for accounts, 'C' for clusters, 'N' for servers, 'O' for operators,
// 'U' for users. Seeds lead with 'S' plus the role letter, private keys
// with 'P' regardless of role.
type Role byte

const (
	RoleAccount  Role = 0  // 'A'
	RoleCluster  Role = 2  // 'C'
	RoleServer   Role = 13 // 'N'
	RoleOperator Role = 14 // 'O'
	RoleUser     Role = 20 // 'U'
)

// Non-role codes sharing the same 5-bit space.
const (
	codePrivate byte = 15 // 'P'
	codeSeed    byte = 18 // 'S'
)

// The low 3 bits of a prefix byte are reserved and must be zero.
const prefixShift = 3

func (r Role) String() string {
	switch r {
	case RoleAccount:
		return "account"
	case RoleCluster:
		return "cluster"
	case RoleServer:
		return "server"
	case RoleOperator:
		return "operator"
	case RoleUser:
		return "user"
	default:
		return "unknown"
	}
}

// Valid reports whether r is one of the closed set of role codes.
func (r Role) Valid() bool {
	switch r {
	case RoleAccount, RoleCluster, RoleServer, RoleOperator, RoleUser:
		return true
	default:
		return false
	}
}

// prefixByte returns the role code positioned in the high 5 bits of a byte.
func (r Role) prefixByte() byte {
	return byte(r) << prefixShift
}

// roleFromPrefix recovers the role from a token's first byte.
// ok is false when the byte does not carry a known role code or its
// reserved low bits are set.
func roleFromPrefix(b byte) (Role, bool) {
	if b&(1<<prefixShift-1) != 0 {
		return 0, false
	}
	r := Role(b >> prefixShift)
	return r, r.Valid()
}

// ParseRole maps a role name (as produced by Role.String) back to its code.
func ParseRole(s string) (Role, error) {
	switch s {
	case "account":
		return RoleAccount, nil
	case "cluster":
		return RoleCluster, nil
	case "server":
		return RoleServer, nil
	case "operator":
		return RoleOperator, nil
	case "user":
		return RoleUser, nil
	default:
		return 0, newError(KindArgument, "NKEY-ARG-003", "unknown role name: "+s)
	}
}

// IsValidPublicKey reports whether token parses as a public key of any role.
func IsValidPublicKey(token string) bool {
	raw, err := decodeRaw(token)
	if err != nil || len(raw) < 1 {
		return false
	}
	_, ok := roleFromPrefix(raw[0])
	return ok
}

// IsValidSeed reports whether token parses as a seed of any role.
func IsValidSeed(token string) bool {
	_, err := DecodeSeed(token)
	return err == nil
}

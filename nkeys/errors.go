package nkeys

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/RuleID rather than matching error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindEncoding covers empty, truncated, or non-base32 token input.
	KindEncoding Kind = "Encoding"
	// KindChecksum covers CRC-16 trailer mismatches.
	KindChecksum Kind = "Checksum"
	// KindPrefix covers tokens whose prefix does not match the expected role or kind.
	KindPrefix Kind = "Prefix"
	// KindPayload covers payloads of the wrong size passed to the encoders.
	KindPayload Kind = "Payload"
	// KindArgument covers malformed or wrong-shape input to the key factories.
	KindArgument Kind = "Argument"
	// KindState covers private-only operations attempted on a public-only key.
	KindState Kind = "State"
)

// Error is the library's structured error type.
//
// RuleID is a stable identifier (e.g., NKEY-ENC-002, NKEY-CRC-001,
// NKEY-STATE-001) that names the violated invariant.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

func wrapError(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return newError(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}

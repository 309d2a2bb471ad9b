// Package nkeys encodes Ed25519 identity keys as prefixed, checksummed
// base32 tokens and wraps the key material with sign/verify operations.
//
// Every encoded token is self-identifying by its leading character(s):
// public keys lead with the role letter ('A' account, 'C' cluster,
// 'N' server, 'O' operator, 'U' user), seeds with "S" plus the role letter,
// and private keys with 'P'. A CRC-16/XMODEM trailer catches transcription
// errors; it is not a security mechanism.
//
// API stability:
//
// Stable (SemVer-protected):
//   - The token wire format (prefix algebra, checksum, base32 alphabet) and
//     the codec functions; deployed token strings must decode bit-exact.
//   - The NKey factories, accessors, and Sign/Verify.
//
// Error handling is structured: failures carry a stable Kind and RuleID
// (see Error); branch on those, not on messages. Verify alone reports a
// non-matching signature as a plain false rather than an error.
package nkeys

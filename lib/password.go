package lib

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"happycrafts_server/structs"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidHash         = errors.New("invalid hash format")
	ErrIncompatibleVersion = errors.New("incompatible version of argon2")
)

// Argon2HashParts contains the decoded parts of an Argon2 hash
type Argon2HashParts struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	Salt    []byte
	Hash    []byte
}

// EncodeArgon2Hash renders a derived key in the PHC string format,
// $argon2id$v=19$m=...,t=...,p=...$<salt>$<hash>. The parameters travel with
// the hash, so verification never depends on the current defaults.
func EncodeArgon2Hash(hash, salt []byte, p *structs.ArgonParams) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
}

// DecodeArgon2Hash parses a PHC-formatted argon2id hash back into its parts
func DecodeArgon2Hash(encodedHash string) (*Argon2HashParts, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, ErrInvalidHash
	}
	if parts[1] != "argon2id" {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, fmt.Errorf("%w: malformed version", ErrInvalidHash)
	}
	if version != argon2.Version {
		return nil, ErrIncompatibleVersion
	}

	decoded := &Argon2HashParts{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &decoded.Memory, &decoded.Time, &decoded.Threads); err != nil {
		return nil, fmt.Errorf("%w: malformed parameters", ErrInvalidHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: malformed salt", ErrInvalidHash)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("%w: malformed hash", ErrInvalidHash)
	}

	decoded.Salt = salt
	decoded.Hash = hash
	decoded.KeyLen = uint32(len(hash))
	return decoded, nil
}

// SecureCompare performs a constant-time comparison of two byte slices.
// Always use this over bytes.Equal when comparing password hashes.
func SecureCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

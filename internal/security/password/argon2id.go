// Package password provides one-way password hashing and verification
// using argon2id. Hashes are encoded as PHC strings:
//
//	$argon2id$v=19$m=65536,t=3,p=1$<saltB64>$<keyB64>
//
// A fresh random salt is drawn per hash, so hashing the same password
// twice yields different strings. Verification recomputes the key with
// the parameters embedded in the stored string and compares in constant
// time.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Params control the argon2id work factor.
type Params struct {
	Memory      uint32 // KiB
	Time        uint32
	Parallelism uint8
	SaltLen     uint32
	KeyLen      uint32
}

// Default is tuned for interactive logins (64 MiB, 3 passes).
var Default = Params{Memory: 64 * 1024, Time: 3, Parallelism: 1, SaltLen: 16, KeyLen: 32}

var errEmptyPassword = errors.New("password: empty plaintext")

// Hash derives an argon2id hash of plain with Default params.
// A failure here is an internal error for the caller, never a
// validation outcome.
func Hash(plain string) (string, error) {
	return HashWith(Default, plain)
}

// HashWith is Hash with explicit params. Exposed for tests that want a
// cheap work factor.
func HashWith(p Params, plain string) (string, error) {
	if plain == "" {
		return "", errEmptyPassword
	}
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: salt: %w", err)
	}
	key := argon2.IDKey([]byte(plain), salt, p.Time, p.Memory, p.Parallelism, p.KeyLen)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		p.Memory, p.Time, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plain matches the stored PHC string.
// It never returns an error for a mismatch; a malformed stored hash
// simply verifies as false.
func Verify(plain, phc string) bool {
	p, salt, key, ok := decode(phc)
	if !ok {
		return false
	}
	candidate := argon2.IDKey([]byte(plain), salt, p.Time, p.Memory, p.Parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(candidate, key) == 1
}

// decode parses "$argon2id$v=19$m=..,t=..,p=..$salt$key".
func decode(phc string) (Params, []byte, []byte, bool) {
	parts := strings.Split(phc, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Params{}, nil, nil, false
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Params{}, nil, nil, false
	}
	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Parallelism); err != nil {
		return Params{}, nil, nil, false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return Params{}, nil, nil, false
	}
	return p, salt, key, true
}

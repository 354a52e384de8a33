package service

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"craftshop-admin/internal/model"
)

// PBKDF2 parameters for stored passwords. Changing any of these invalidates
// every stored credential, so they are fixed.
const (
	hashIterations = 624
	hashKeyLength  = 64
	hashSaltBytes  = 32
)

// PasswordHasher produces and checks the irreversible "salt:derivedKey"
// representation stored in the password column. Hashing is an explicit step:
// callers invoke Hash exactly when a new plaintext is being set, never on a
// read-modify-write that leaves the password untouched.
type PasswordHasher struct{}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{}
}

// Hash derives the stored representation for a plaintext password. The salt
// is 32 random bytes, base64-encoded; the derived key is computed over the
// plaintext with the base64 salt string as the PBKDF2 salt input.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("%w: password must not be empty", model.ErrInvalidCredential)
	}

	raw := make([]byte, hashSaltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	salt := base64.StdEncoding.EncodeToString(raw)
	key := pbkdf2.Key([]byte(plain), []byte(salt), hashIterations, hashKeyLength, sha512.New)

	return salt + ":" + base64.StdEncoding.EncodeToString(key), nil
}

// Verify reports whether plain matches the stored representation. A wrong
// password is a normal false, not an error. Comparison of the encoded keys is
// constant-time.
func (h *PasswordHasher) Verify(stored string, plain string) bool {
	salt, expected, ok := strings.Cut(stored, ":")
	if !ok || salt == "" || expected == "" {
		return false
	}

	key := pbkdf2.Key([]byte(plain), []byte(salt), hashIterations, hashKeyLength, sha512.New)
	encoded := base64.StdEncoding.EncodeToString(key)

	return subtle.ConstantTimeCompare([]byte(encoded), []byte(expected)) == 1
}

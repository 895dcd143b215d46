// Package credentials isolates how user credentials are stored and compared,
// so the storage scheme can change without touching callers.
package credentials

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Scheme encodes credentials for storage and verifies supplied ones.
type Scheme interface {
	Encode(plain string) (string, error)
	Verify(stored, supplied string) bool
}

// Plaintext stores credentials as given and compares them for exact equality.
type Plaintext struct{}

// Encode returns plain unchanged.
func (Plaintext) Encode(plain string) (string, error) {
	return plain, nil
}

// Verify reports whether supplied equals stored byte for byte.
func (Plaintext) Verify(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// Bcrypt stores bcrypt hashes.
type Bcrypt struct {
	Cost int
}

// Encode hashes plain with the configured cost.
func (b Bcrypt) Encode(plain string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash credential: %w", err)
	}
	return string(hashed), nil
}

// Verify compares supplied against the stored hash.
func (Bcrypt) Verify(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// New returns the scheme registered under name.
func New(name string) (Scheme, error) {
	switch name {
	case "", "plaintext":
		return Plaintext{}, nil
	case "bcrypt":
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown credential scheme %q", name)
	}
}

// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "errors"

// ErrInvalidDigestFormat is returned when a stored digest is not a bcrypt hash.
var ErrInvalidDigestFormat = errors.New("invalid password digest format")

// PasswordHasher defines the interface for password hashing and verification.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	// Two calls with the same password return different digests.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	Check(password, hash string) bool

	// Verify is Check that also reports ErrInvalidDigestFormat for a malformed digest.
	Verify(password, hash string) (bool, error)
}

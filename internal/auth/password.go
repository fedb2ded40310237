// ABOUTME: Password hashing and verification for console operators
// ABOUTME: bcrypt with a dummy comparison to keep unknown-user timing constant

package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned for any username/password mismatch. The same
// error covers unknown users and wrong passwords so callers cannot leak which
// one happened.
var ErrBadCredentials = errors.New("invalid username or password")

// dummyHash is compared when the user does not exist or has no password, so
// lookup failures take as long as real comparisons.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword hashes a password for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a candidate password against a stored hash. Pass an
// empty storedHash for unknown users; the dummy comparison still runs.
func CheckPassword(storedHash, password string) error {
	if storedHash == "" {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)); err != nil {
		return ErrBadCredentials
	}
	return nil
}

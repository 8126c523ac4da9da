// Package auth holds the credential-verification boundary. Hashes are
// produced outside the ledger core; the core only ever compares.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Verifier checks a presented secret against a stored hash.
type Verifier interface {
	Verify(hash []byte, presented string) bool
}

// BcryptVerifier verifies bcrypt hashes, the format the account-opening
// flow stores for both passwords and debit PINs.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(hash []byte, presented string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(presented)) == nil
}

// Hash produces a bcrypt hash at the default cost. It lives here so tests
// and the registration flow agree on the format.
func Hash(secret string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
}

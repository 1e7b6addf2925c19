// Package hasher provides the password hashers selectable at startup.
// SHA256 is the default; Bcrypt is available for installations that want a
// salted, cost-tunable digest.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"

	"dormitory/internal/core/ports"
)

type SHA256 struct{}

var _ ports.PasswordHasher = SHA256{}

func (SHA256) Hash(plaintext string) (string, error) {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256) Verify(hash, plaintext string) bool {
	digest, _ := h.Hash(plaintext)
	return digest == hash
}

// Bcrypt hashes with golang.org/x/crypto/bcrypt. Cost 0 selects the
// library default.
type Bcrypt struct {
	Cost int
}

var _ ports.PasswordHasher = Bcrypt{}

func (b Bcrypt) Hash(plaintext string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (Bcrypt) Verify(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

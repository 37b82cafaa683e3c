// Package password provides one-way hashing of user credentials.
package password

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the account does not exist, so that a
// failed lookup costs the same as a failed comparison.
const dummyHash = "$2a$08$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Config holds hashing settings.
type Config struct {
	Cost int `env:"BCRYPT_COST" envDefault:"8"`
}

// LoadConfig loads hashing settings from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse password config: %w", err)
	}
	return cfg, nil
}

// BcryptHasher hashes and verifies passwords with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, clamped to bcrypt's valid range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// maxInputLength is the longest input bcrypt accepts.
const maxInputLength = 72

// bcryptInput returns plain unchanged when bcrypt can take it, otherwise its
// base64 SHA-256 digest so every byte of a long password still counts.
func bcryptInput(plain string) []byte {
	if len(plain) <= maxInputLength {
		return []byte(plain)
	}
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// Hash returns the bcrypt hash of plain.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(bcryptInput(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare reports whether plain matches hash.
// An empty hash is compared against a dummy value so timing does not reveal account existence.
func (h *BcryptHasher) Compare(hash, plain string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), bcryptInput(plain))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(plain)) == nil
}

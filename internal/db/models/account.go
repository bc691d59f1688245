package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// Account is a credential row owned by the local identity gateway.
// It carries only what is needed to authenticate; everything user facing
// lives in the Profile document keyed by the same UID.
type Account struct {
	// UID is the unique identifier for the account.
	UID string `gorm:"primaryKey;size:64"`
	// Email is the unique sign-in address.
	Email string `gorm:"unique;size:255;not null"`
	// Password is the Argon2id hashed password.
	Password string `gorm:"size:255;not null"`
	// CreatedAt is the timestamp when the account was created (managed by GORM).
	CreatedAt time.Time
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// It uses the default Argon2id parameters for secure password hashing.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the account's stored
// hashed password. It uses constant-time comparison to prevent timing attacks.
func (a *Account) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, a.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}

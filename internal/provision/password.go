package provision

import (
	"crypto/rand"

	"github.com/rs/zerolog/log"
)

// passwordChars is the generated-password alphabet.
const passwordChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()"

// passwordLength is the generated-password length.
const passwordLength = 12

// RandomPassword returns a random initial password for a provisioned
// account. Uses rejection sampling to keep the character distribution
// uniform over the alphabet.
func RandomPassword() string {
	out := make([]byte, 0, passwordLength)
	buf := make([]byte, passwordLength)

	// 216 is the largest multiple of len(passwordChars) below 256.
	max := byte(255 - (256 % len(passwordChars)))

	for len(out) < passwordLength {
		if _, err := rand.Read(buf); err != nil {
			log.Fatal().Err(err).Msg("random source failed")
		}

		for _, b := range buf {
			if b > max {
				continue
			}

			out = append(out, passwordChars[int(b)%len(passwordChars)])
			if len(out) == passwordLength {
				break
			}
		}
	}

	return string(out)
}

package auth

import (
	"crypto/rand"
	"math/big"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateVerificationToken returns a 32-character alphanumeric token
// for email verification links.
func GenerateVerificationToken() string {
	return randomString(32, tokenAlphabet)
}

// GenerateResetCode returns the 6-digit code mailed on password reset
// requests.
func GenerateResetCode() string {
	return randomString(6, "0123456789")
}

func randomString(n int, alphabet string) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken.
			panic(err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out)
}

package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// VerificationTokenLength is the fixed length of lab verification tokens.
const VerificationTokenLength = 12

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateVerificationToken returns a random alphanumeric token of
// VerificationTokenLength characters, shared out-of-band with the
// companion socket server.
func GenerateVerificationToken() (string, error) {
	buf := make([]byte, VerificationTokenLength)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}

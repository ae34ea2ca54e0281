package otp

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// Alphabet is the fixed 62-character set codes are drawn from.
// Codes are case-sensitive.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ErrInvalidLength is returned by Generate for non-positive lengths.
var ErrInvalidLength = errors.New("otp length must be a positive integer")

// Generate returns a code of exactly length characters, each drawn
// independently and uniformly from Alphabet using crypto/rand.
func Generate(length int) (string, error) {
	if length < 1 {
		return "", ErrInvalidLength
	}

	max := big.NewInt(int64(len(Alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = Alphabet[n.Int64()]
	}
	return string(buf), nil
}

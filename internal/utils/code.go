package utils

import (
	"crypto/rand"
	"math/big"
)

const digits = "0123456789"

// NumericPassword generates the n-digit credential handed to a student
// the first time a sync creates their record. The first digit is never
// zero so the code survives spreadsheet round-trips intact.
func NumericPassword(n int) (string, error) {
	if n <= 0 {
		n = 6
	}
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		alphabet := digits
		if i == 0 {
			alphabet = digits[1:]
		}
		idxBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		b[i] = alphabet[idxBig.Int64()]
	}
	return string(b), nil
}

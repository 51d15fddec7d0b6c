package verification

import (
	"crypto/rand"
	"math/big"
)

// DefaultCodeLength is the number of digits NewCode draws.
const DefaultCodeLength = 6

const digits = "0123456789"

// GenerateCode draws length digits independently from crypto/rand.
// A non-positive length yields an empty code.
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}

	max := big.NewInt(int64(len(digits)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = digits[n.Int64()]
	}
	return string(out), nil
}

// NewCode returns a code of DefaultCodeLength digits.
func NewCode() (string, error) {
	return GenerateCode(DefaultCodeLength)
}

// IsNumericCode reports whether code is exactly length ASCII digits.
func IsNumericCode(code string, length int) bool {
	if len(code) != length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// SecretKeyAlphabet avoids characters that need quoting in .env files.
const SecretKeyAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

const minSecretKeyLength = 32

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString draws length characters uniformly from alphabet using
// crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}
	return string(value), nil
}

// GenerateSecretKey returns a SECRET_KEY value of at least 32 characters.
func GenerateSecretKey(length int) (string, error) {
	if length < minSecretKeyLength {
		length = minSecretKeyLength
	}
	return RandomString(length, SecretKeyAlphabet)
}

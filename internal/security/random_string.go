package security

import (
	"crypto/rand"
	"errors"
)

var (
	errNegativeLength  = errors.New("length must be non-negative")
	errEmptyAlphabet   = errors.New("alphabet must not be empty")
	errAlphabetTooLong = errors.New("alphabet must have at most 256 characters")
)

// RandomString draws length characters uniformly from an ASCII alphabet
// using crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", errEmptyAlphabet
	case len(alphabet) > 256:
		return "", errAlphabetTooLong
	}

	// Bytes at or above cutoff are discarded so every character is equally
	// likely.
	cutoff := 256 - 256%len(alphabet)
	value := make([]byte, 0, length)
	buffer := make([]byte, length+length/2+8)
	for len(value) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, b := range buffer {
			if int(b) >= cutoff {
				continue
			}
			value = append(value, alphabet[int(b)%len(alphabet)])
			if len(value) == length {
				break
			}
		}
	}
	return string(value), nil
}

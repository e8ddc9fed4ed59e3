package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPin hashes a plaintext transaction PIN using bcrypt.
func HashPin(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPinHash compares a plaintext PIN with a bcrypt hash.
func CheckPinHash(pin, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

// IsValidPin reports whether pin is exactly four ASCII digits.
func IsValidPin(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

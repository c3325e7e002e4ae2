// Package utils provides password hashing and strength validation helpers.
package utils

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// ErrWeakPassword is reported when a password misses one of the strength
// requirements. Handlers surface it as 422.
var ErrWeakPassword = errors.New(
	"the password is too simple: it must contain digits, uppercase and lowercase letters and no whitespace")

// ValidatePassword enforces the registration password policy: at least one
// digit, one uppercase and one lowercase letter, and no whitespace anywhere.
func ValidatePassword(plain string) error {
	var digit, upper, lower bool
	for _, r := range plain {
		switch {
		case unicode.IsSpace(r):
			return ErrWeakPassword
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		}
	}
	if !digit || !upper || !lower {
		return ErrWeakPassword
	}
	return nil
}

// HashPassword returns a bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

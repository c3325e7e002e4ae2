package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "Passw0rd", true},
		{"missing digit", "Password", false},
		{"missing upper", "passw0rd", false},
		{"missing lower", "PASSW0RD", false},
		{"contains space", "Pass w0rd", false},
		{"contains tab", "Pass\tw0rd", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrWeakPassword)
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Passw0rd", 4) // minimal cost keeps the test fast
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "Passw0rd"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSecret returns n random bytes, hex encoded
func GenerateSecret(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateJWTSecrets returns two distinct 256-bit secrets for access and refresh tokens
func GenerateJWTSecrets() (accessSecret, refreshSecret string, err error) {
	for accessSecret == refreshSecret {
		if accessSecret, err = GenerateSecret(32); err != nil {
			return "", "", fmt.Errorf("failed to generate access secret: %w", err)
		}
		if refreshSecret, err = GenerateSecret(32); err != nil {
			return "", "", fmt.Errorf("failed to generate refresh secret: %w", err)
		}
	}
	return accessSecret, refreshSecret, nil
}

// Copyright (c) 2026 PodCentral. All rights reserved.

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// # Opaque Tokens

// GenerateSecureToken produces a cryptographically random opaque token.
//
// Used for refresh tokens, where the value is stored server-side and needs
// no embedded claims.
//
// # Parameters
//   - byteLength: Entropy size in bytes before encoding (32 recommended).
//
// # Returns
//   - A URL-safe base64 string, or an error if the system RNG fails.
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)

	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("failed to generate secure token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buffer), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// Only the digest is persisted, so a leaked token store cannot be replayed
// against the API.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}

package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"strings"
)

var tokenEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateRandomToken returns 15 random bytes as 24 lowercase base32 characters.
// Used for user ids, session tokens, and email/password tokens.
func GenerateRandomToken() string {
	bytes := make([]byte, 15)
	if _, err := rand.Read(bytes); err != nil {
		panic("utils: crypto/rand unavailable: " + err.Error())
	}
	return strings.ToLower(tokenEncoding.EncodeToString(bytes))
}

// HashToken returns the sha256 hex digest stored in place of a raw token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

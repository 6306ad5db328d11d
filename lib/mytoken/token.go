package mytoken

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
)

const tokenSizeInBytes = 32

// New returns a random token in hex. Only its Digest should be persisted.
func New() (string, error) {
	buf := make([]byte, tokenSizeInBytes)

	_, err := io.ReadFull(rand.Reader, buf)
	if err != nil {
		return "", fmt.Errorf("could not generate %d token bytes: %v", tokenSizeInBytes, err)
	}

	return hex.EncodeToString(buf), nil
}

// Digest is the url-safe sha256 of a token.
func Digest(token string) string {
	sha2 := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sha2[:])
}

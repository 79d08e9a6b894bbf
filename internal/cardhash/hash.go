// Package cardhash derives a stable content hash for a card, used to skip
// duplicates when importing deck files.
package cardhash

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Normalize concatenates the card's front and back after cleaning each
// part. It trims whitespace, lowercases, and normalizes line endings so
// that cosmetic edits in a deck file do not produce a new identity.
func Normalize(front, back string) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	// Joined with a newline so fields cannot run together, e.g. "perro"
	// and "dog" never hashing the same as "perr" and "odog".
	return strings.Join([]string{normalizePart(front), normalizePart(back)}, "\n")
}

// Hash normalizes the card content and returns its SHA-256 hash as a hex
// string.
func Hash(front, back string) string {
	hashBytes := sha256.Sum256([]byte(Normalize(front, back)))
	return fmt.Sprintf("%x", hashBytes)
}

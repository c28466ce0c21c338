package services

import (
	"crypto/rand"
	"encoding/base64"
)

// inviteCodeBytes is the entropy of an invite code; it encodes to 16 URL-safe characters.
const inviteCodeBytes = 12

func generateInviteCode() (string, error) {
	b := make([]byte, inviteCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

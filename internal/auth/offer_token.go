package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
)

// Offer response tokens are the capability credential for the unauthenticated
// candidate flow: accepting, rejecting or negotiating an offer requires the
// token mailed with it, not a login session. The token is opaque, stored on
// the offer row, and cleared once accept/reject consumes it.

// NewOfferToken generates a fresh response token.
func NewOfferToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// VerifyOfferToken compares a presented token against the stored one in
// constant time. An empty stored token means the capability was already
// consumed (or never issued) and never matches.
func VerifyOfferToken(stored, presented string) bool {
	if stored == "" || presented == "" {
		return false
	}
	return hmac.Equal([]byte(stored), []byte(presented))
}

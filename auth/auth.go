// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	ErrInvalidAdminToken = errors.New("invalid admin token")
	ErrEmptyVisitorToken = errors.New("empty visitor token")
)

// IdentityKey derives the stable per-visitor identifier used for vote
// deduplication. The browser-supplied token is never stored raw; the salted
// HMAC is what the vote table sees.
func IdentityKey(visitorToken, salt string) (string, error) {
	if visitorToken == "" {
		return "", ErrEmptyVisitorToken
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(visitorToken))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8]), nil
}

// ValidateAdminToken checks a Bearer credential against the configured admin
// token using a constant-time compare.
func ValidateAdminToken(got, want string) error {
	if want == "" || !hmac.Equal([]byte(got), []byte(want)) {
		return ErrInvalidAdminToken
	}
	return nil
}

// BearerToken extracts the credential from an Authorization header value.
// Returns "" when the header is absent or not a Bearer scheme.
func BearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}

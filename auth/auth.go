// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrInvalidVoterKey = errors.New("invalid voter key")
)

// GenerateAdminKey creates an HMAC-based key for the administrator identity.
// Deterministic, so it can be validated without storing anything.
func GenerateAdminKey(adminIdentity, salt string) string {
	return hmacKey("admin:"+adminIdentity, salt)
}

// ValidateAdminKey checks the provided admin key in constant time
func ValidateAdminKey(adminIdentity, adminKey, salt string) error {
	expected := GenerateAdminKey(adminIdentity, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateVoterKey creates an HMAC-based key proving ownership of a voter
// identity. Issued when the administrator registers the voter.
func GenerateVoterKey(identity, salt string) string {
	return hmacKey("voter:"+identity, salt)
}

// ValidateVoterKey checks that voterKey belongs to identity
func ValidateVoterKey(identity, voterKey, salt string) error {
	expected := GenerateVoterKey(identity, salt)
	if !hmac.Equal([]byte(voterKey), []byte(expected)) {
		return ErrInvalidVoterKey
	}
	return nil
}

// hmacKey derives a URL-safe key from subject and salt.
// The role prefix on the subject keeps admin and voter keyspaces disjoint.
func hmacKey(subject, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(subject))
	sum := h.Sum(nil)
	// URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

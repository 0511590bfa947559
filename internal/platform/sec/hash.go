// Copyright (c) 2026 Offline-LAN Project. All rights reserved.
// Author: krazywes.dev@gmail.com

/*
Package sec provides the security primitives of the account authority: the
credential codec (salted bcrypt hashing) and the closed role enumeration.

Architecture:

  - Pure functions over input bytes; no storage access, no side effects.
  - Hashing: bcrypt with a per-hash random salt and the default cost.
  - Verification: constant-time comparison inside bcrypt; malformed stored
    hashes verify as false rather than crashing the caller.
*/
package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the bcrypt input ceiling. Passwords longer than this
// are truncated deterministically before hashing, so two passwords sharing
// the first 72 UTF-8 bytes collapse to the same hash.
const MaxPasswordBytes = 72

// passwordBytes encodes a password for bcrypt, applying the 72-byte cap.
func passwordBytes(password string) []byte {
	raw := []byte(password)
	if len(raw) > MaxPasswordBytes {
		raw = raw[:MaxPasswordBytes]
	}
	return raw
}

// HashPassword derives a randomly-salted one-way digest of the password.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword(passwordBytes(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its stored hash.
//
// It returns false on any mismatch, including a corrupt or truncated stored
// hash; bcrypt reports those as errors and we fold them into "no match".
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), passwordBytes(plainTextPassword))
	return err == nil
}

// Package crypto implements the passphrase-based protection of entry
// sources: acquiring and guarding the passphrase, and the per-file
// authenticated encrypt/decrypt against age containers.
package crypto

import (
	"crypto/subtle"
)

// Secret holds the batch passphrase. It is shared read-only across the
// whole batch and must be zeroed when the batch's scope ends:
//
//	secret, err := crypto.AcquirePassphrase(mode)
//	if err != nil { ... }
//	defer secret.Zero()
type Secret struct {
	data []byte
}

// NewSecret wraps raw passphrase bytes. The Secret takes ownership; the
// caller must not reuse the slice.
func NewSecret(data []byte) *Secret {
	return &Secret{data: data}
}

// Expose returns the passphrase as a string for the crypto primitives.
func (s *Secret) Expose() string {
	return string(s.data)
}

// Zero overwrites the passphrase bytes. Safe to call more than once.
func (s *Secret) Zero() {
	for i := range s.data {
		s.data[i] = 0
	}
	s.data = nil
}

// String keeps the passphrase out of logs and %v formatting.
func (s *Secret) String() string {
	return "[redacted]"
}

// constantTimeEqual compares two passphrases without leaking how far a
// partial match got. Differing lengths are rejected outright; equal
// lengths always pay for the full scan.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

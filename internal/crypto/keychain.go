// Package crypto derives the record key and encrypts stored invoice payloads.
package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const keyLen = 32 // 256 bits

// Keychain is an explicitly constructed key-derivation context. Passphrase,
// salt, and iteration count are injected by the caller (sourced from
// configuration or a secret manager), never baked in as literals.
type Keychain struct {
	passphrase []byte
	salt       []byte
	iterations int
}

// NewKeychain builds a Keychain from the given material.
func NewKeychain(passphrase string, salt []byte, iterations int) *Keychain {
	return &Keychain{
		passphrase: []byte(passphrase),
		salt:       salt,
		iterations: iterations,
	}
}

// DeriveKey derives the 256-bit record key with PBKDF2-HMAC-SHA256.
// Deterministic for the same material, so a store reopened with the same
// configuration can read its own payloads.
func (k *Keychain) DeriveKey() []byte {
	return pbkdf2.Key(k.passphrase, k.salt, k.iterations, keyLen, sha256.New)
}

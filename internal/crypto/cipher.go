package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	"github.com/willowhq/invoice-vault/internal/common"
	"github.com/willowhq/invoice-vault/internal/entity"
)

// DecryptionFailedSentinel is the value surfaced in place of a payload that
// could not be decrypted. Decryption failures never abort reads of other
// fields or other records.
const DecryptionFailedSentinel = "[DECRYPTION_FAILED]"

// Cipher encrypts full invoice records into opaque blobs with AES-256-GCM.
// The blob layout is nonce (12 bytes) followed by ciphertext, so decryption
// can split the nonce back out.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a Cipher around a 32-byte key, typically from
// [Keychain.DeriveKey].
func NewCipher(key []byte) (*Cipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt serializes inv to JSON, checks it against the payload schema, and
// seals it. Each call uses a fresh random nonce.
func (c *Cipher) Encrypt(inv entity.Invoice) ([]byte, error) {
	plaintext, err := json.Marshal(inv)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	if err := validatePayload(plaintext); err != nil {
		return nil, fmt.Errorf("record schema: %w", err)
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return append(nonce, c.aead.Seal(nil, nonce, plaintext, nil)...), nil
}

// Decrypt opens a blob produced by Encrypt and returns the full record.
// Wrong key, truncated blob, corrupted ciphertext, and malformed payloads all
// report [common.ErrDecryptionFailed]; callers that must not fail use
// [Cipher.Reveal] instead.
func (c *Cipher) Decrypt(blob []byte) (entity.Invoice, error) {
	nonceSize := c.aead.NonceSize()
	if len(blob) < nonceSize {
		return entity.Invoice{}, fmt.Errorf("%w: blob too short", common.ErrDecryptionFailed)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("%w: %v", common.ErrDecryptionFailed, err)
	}

	if err := validatePayload(plaintext); err != nil {
		return entity.Invoice{}, fmt.Errorf("%w: payload schema: %v", common.ErrDecryptionFailed, err)
	}

	var inv entity.Invoice
	if err := json.Unmarshal(plaintext, &inv); err != nil {
		return entity.Invoice{}, fmt.Errorf("%w: %v", common.ErrDecryptionFailed, err)
	}
	return inv, nil
}

// Reveal decrypts a blob back to its JSON form, substituting the failure
// sentinel when the blob cannot be opened. It never returns an error.
func (c *Cipher) Reveal(blob []byte) string {
	inv, err := c.Decrypt(blob)
	if err != nil {
		return DecryptionFailedSentinel
	}
	raw, err := json.Marshal(inv)
	if err != nil {
		return DecryptionFailedSentinel
	}
	return string(raw)
}

// Package hash computes the content-addressed dedup key for source documents.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// chunkSize is the read granularity for streaming digests; whole documents
// are never loaded into memory.
const chunkSize = 8192

// Sum streams r through SHA-256 and returns the lowercase hex digest. Same
// bytes always produce the same key, regardless of filename or time.
func Sum(r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SumFile computes the content hash of the file at path.
func SumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	return Sum(f)
}

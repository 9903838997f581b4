package hash

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum_KnownVector(t *testing.T) {
	got, err := Sum(strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", got)
}

func TestSum_DeterministicAndContentSensitive(t *testing.T) {
	payload := bytes.Repeat([]byte{0x42}, 3*chunkSize+17)

	h1, err := Sum(bytes.NewReader(payload))
	require.NoError(t, err)
	h2, err := Sum(bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	payload[0] ^= 0xFF
	h3, err := Sum(bytes.NewReader(payload))
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestSumFile_IndependentOfName(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pdf")
	b := filepath.Join(dir, "b.pdf")
	require.NoError(t, os.WriteFile(a, []byte("same bytes"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("same bytes"), 0o600))

	ha, err := SumFile(a)
	require.NoError(t, err)
	hb, err := SumFile(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
	assert.Len(t, ha, 64)
}

func TestSumFile_MissingFile(t *testing.T) {
	_, err := SumFile(filepath.Join(t.TempDir(), "absent.pdf"))
	assert.Error(t, err)
}

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowhq/invoice-vault/internal/common"
	"github.com/willowhq/invoice-vault/internal/crypto"
	"github.com/willowhq/invoice-vault/internal/entity"
	"github.com/willowhq/invoice-vault/internal/extract"
	"github.com/willowhq/invoice-vault/internal/repository"
)

// memRepo keys rows by file hash, mimicking the store's unique constraint.
type memRepo struct {
	rows map[string]*entity.InvoiceRecord
}

func newMemRepo() *memRepo { return &memRepo{rows: make(map[string]*entity.InvoiceRecord)} }

func (m *memRepo) Insert(_ context.Context, rec *entity.InvoiceRecord) (repository.InsertOutcome, error) {
	if _, exists := m.rows[rec.FileHash]; exists {
		return repository.DuplicateRejected, nil
	}
	m.rows[rec.FileHash] = rec
	return repository.Inserted, nil
}

func (m *memRepo) List(context.Context) ([]entity.InvoiceRecord, error) {
	out := make([]entity.InvoiceRecord, 0, len(m.rows))
	for _, rec := range m.rows {
		out = append(out, *rec)
	}
	return out, nil
}

func testProcessor(t *testing.T, repo repository.InvoiceRepository) (*Processor, *crypto.Cipher) {
	t.Helper()
	key := crypto.NewKeychain("pipeline-test", []byte("salt"), 100).DeriveKey()
	cipher, err := crypto.NewCipher(key)
	require.NoError(t, err)
	producer := extract.NewRouter(extract.PlainTextProducer{})
	return NewProcessor(producer, extract.NewExtractor(nil), cipher, repo, nil), cipher
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const docText = `Acme Traders Pvt Ltd
Invoice No: INV/22-23/008
Bill To:
John Enterprises
Subtotal 100.00
CGST 9.00
SGST 9.00
`

func TestProcessDocument_InsertsAndEncrypts(t *testing.T) {
	repo := newMemRepo()
	p, cipher := testProcessor(t, repo)

	path := writeDoc(t, t.TempDir(), "inv.txt", docText)
	res, err := p.ProcessDocument(context.Background(), path)
	require.NoError(t, err)

	assert.False(t, res.Duplicated)
	assert.Len(t, res.FileHash, 64)
	assert.Equal(t, "Acme Traders Pvt Ltd", res.Fields.VendorName)
	assert.Equal(t, "118.00", res.Fields.GrandTotal)

	stored := repo.rows[res.FileHash]
	require.NotNil(t, stored)
	dec, err := cipher.Decrypt(stored.Payload)
	require.NoError(t, err)
	assert.Equal(t, res.Fields, dec, "payload round-trips to the extracted record")
}

func TestProcessDocument_DuplicateByContentNotName(t *testing.T) {
	repo := newMemRepo()
	p, _ := testProcessor(t, repo)
	dir := t.TempDir()

	first := writeDoc(t, dir, "a.txt", docText)
	second := writeDoc(t, dir, "b.txt", docText)

	r1, err := p.ProcessDocument(context.Background(), first)
	require.NoError(t, err)
	assert.False(t, r1.Duplicated)

	r2, err := p.ProcessDocument(context.Background(), second)
	require.NoError(t, err)
	assert.True(t, r2.Duplicated, "same bytes under a different name are rejected")
	assert.Equal(t, r1.FileHash, r2.FileHash)
}

func TestProcessDocument_DistinctDocsSameFieldsBothInserted(t *testing.T) {
	repo := newMemRepo()
	p, _ := testProcessor(t, repo)
	dir := t.TempDir()

	// Trailing spaces change the bytes but not the extracted fields.
	a := writeDoc(t, dir, "a.txt", docText)
	b := writeDoc(t, dir, "b.txt", docText+"\n ")

	ra, err := p.ProcessDocument(context.Background(), a)
	require.NoError(t, err)
	rb, err := p.ProcessDocument(context.Background(), b)
	require.NoError(t, err)

	assert.False(t, ra.Duplicated)
	assert.False(t, rb.Duplicated, "hash, not field equality, is the dedup key")
	assert.Equal(t, ra.Fields, rb.Fields)
	assert.Len(t, repo.rows, 2)
}

func TestProcessDocument_EmptyDocument(t *testing.T) {
	repo := newMemRepo()
	p, _ := testProcessor(t, repo)

	path := writeDoc(t, t.TempDir(), "blank.txt", "   \n\t\n")
	_, err := p.ProcessDocument(context.Background(), path)
	assert.ErrorIs(t, err, common.ErrEmptyDocument)
	assert.Empty(t, repo.rows, "nothing is persisted for an empty document")
}

func TestProcessDirectory_IsolatesFailures(t *testing.T) {
	repo := newMemRepo()
	p, _ := testProcessor(t, repo)
	dir := t.TempDir()

	writeDoc(t, dir, "good.txt", docText)
	writeDoc(t, dir, "blank.txt", " ")
	writeDoc(t, dir, "ignored.csv", "not,an,invoice")
	writeDoc(t, dir, ".hidden.txt", docText)

	results, stats, err := p.ProcessDirectory(context.Background(), dir, true)
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.Matched)
	assert.EqualValues(t, 1, stats.Succeeded)
	assert.EqualValues(t, 1, stats.Failed)
	assert.EqualValues(t, 0, stats.Deduplicated)
	assert.Len(t, results, 2)
	assert.Len(t, repo.rows, 1)
}

func TestProcessDirectory_CountsDuplicates(t *testing.T) {
	repo := newMemRepo()
	p, _ := testProcessor(t, repo)
	dir := t.TempDir()

	writeDoc(t, dir, "a.txt", docText)
	writeDoc(t, dir, "b.txt", docText)

	_, stats, err := p.ProcessDirectory(context.Background(), dir, true)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Succeeded)
	assert.EqualValues(t, 1, stats.Deduplicated)
}

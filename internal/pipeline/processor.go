// Package pipeline orchestrates per-document extraction and persistence.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/willowhq/invoice-vault/constants"
	"github.com/willowhq/invoice-vault/internal/crypto"
	"github.com/willowhq/invoice-vault/internal/entity"
	"github.com/willowhq/invoice-vault/internal/extract"
	"github.com/willowhq/invoice-vault/internal/hash"
	"github.com/willowhq/invoice-vault/internal/repository"
	"github.com/willowhq/invoice-vault/internal/textnorm"
)

// Result is the per-document processing outcome.
type Result struct {
	SourcePath string
	RecordID   string
	FileHash   string
	Duplicated bool
	Fields     entity.Invoice
	Err        string
}

// Processor runs the full path for one document: content hash, text
// production, normalization, field extraction, encryption, insert. Extraction
// is pure and side-effect free; the store's unique constraint is the only
// point of contention, so processors may run concurrently across documents.
type Processor struct {
	logger    *slog.Logger
	producer  extract.TextProducer
	extractor *extract.Extractor
	cipher    *crypto.Cipher
	repo      repository.InvoiceRepository
}

func NewProcessor(
	producer extract.TextProducer,
	extractor *extract.Extractor,
	cipher *crypto.Cipher,
	repo repository.InvoiceRepository,
	logger *slog.Logger,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:    logger,
		producer:  producer,
		extractor: extractor,
		cipher:    cipher,
		repo:      repo,
	}
}

// ProcessDocument processes a single document. The only terminal failure for
// a readable document is the total absence of extractable text; individual
// field misses degrade to defaults inside the extractor.
func (p *Processor) ProcessDocument(ctx context.Context, path string) (Result, error) {
	out := Result{SourcePath: path}
	start := time.Now()

	sum, err := hash.SumFile(path)
	if err != nil {
		return out, fmt.Errorf("content hash: %w", err)
	}
	out.FileHash = sum

	res, err := p.producer.Produce(ctx, path)
	if err != nil {
		return out, fmt.Errorf("produce text: %w", err)
	}
	if res.NeedsOCR {
		p.logger.Warn("pipeline.text_layer_thin",
			"path", path, "method", res.Method, "chars", len(res.Text))
	}

	text, err := textnorm.Normalize(res.Text)
	if err != nil {
		return out, err
	}

	inv := p.extractor.Extract(text)
	out.Fields = inv

	blob, err := p.cipher.Encrypt(inv)
	if err != nil {
		return out, fmt.Errorf("encrypt record: %w", err)
	}

	rec := &entity.InvoiceRecord{
		ID:         uuid.New(),
		FileHash:   sum,
		Filename:   filepath.Base(path),
		UploadedAt: time.Now().UTC(),
		Fields:     inv,
		Payload:    blob,
		Status:     constants.StatusProcessed,
	}
	outcome, err := p.repo.Insert(ctx, rec)
	if err != nil {
		return out, err
	}
	out.RecordID = rec.ID.String()
	out.Duplicated = outcome == repository.DuplicateRejected

	p.logger.Info("pipeline.document.ok",
		"path", path,
		"file_hash", sum,
		"outcome", outcome.String(),
		"vendor", inv.VendorName,
		"grand_total", inv.GrandTotal,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

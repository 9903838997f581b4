package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/willowhq/invoice-vault/internal/common"
	"github.com/willowhq/invoice-vault/internal/crypto"
	"github.com/willowhq/invoice-vault/internal/export"
	"github.com/willowhq/invoice-vault/internal/extract"
	"github.com/willowhq/invoice-vault/internal/pipeline"
	repo "github.com/willowhq/invoice-vault/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir        = flag.String("dir", "", "directory to process invoices from (required)")
		out        = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		audit      = flag.Bool("audit", false, "decrypt every stored payload and verify it against the summary columns")
		keepHidden = flag.Bool("keep-hidden", false, "also process hidden files and directories")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "invoices.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := repo.Open(ctx, repo.Config{
		DSN:              cfg.Store.DSN,
		MaxConns:         cfg.Store.MaxConns,
		MinConns:         cfg.Store.MinConns,
		MaxConnLifetime:  cfg.Store.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Store.MaxConnIdleTime,
		DialTimeout:      cfg.Store.DialTimeout,
		StatementTimeout: cfg.Store.StatementTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logger.Error("failed to migrate store", "error", err)
		os.Exit(1)
	}

	keychain := crypto.NewKeychain(cfg.Vault.Passphrase, []byte(cfg.Vault.KDFSalt), cfg.Vault.KDFIterations)
	cipher, err := crypto.NewCipher(keychain.DeriveKey())
	if err != nil {
		logger.Error("failed to build record cipher", "error", err)
		os.Exit(1)
	}

	invoices := repo.NewInvoiceRepository(db, logger)
	producer := extract.NewRouter(extract.NewTextLayerProducer(logger))
	processor := pipeline.NewProcessor(producer, extract.NewExtractor(logger), cipher, invoices, logger)

	results, stats, err := processor.ProcessDirectory(ctx, *dir, !*keepHidden)
	if err != nil {
		logger.Error("batch failed", "error", err)
		os.Exit(1)
	}
	for _, r := range results {
		if r.Err != "" {
			logger.Warn("document failed", "path", r.SourcePath, "error", r.Err)
		}
	}
	logger.Info("batch.done",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"deduplicated", stats.Deduplicated,
		"failed", stats.Failed,
	)

	if *audit {
		if err := auditPayloads(ctx, invoices, cipher, logger); err != nil {
			logger.Error("audit failed", "error", err)
			os.Exit(1)
		}
	}

	exporter := export.NewService(invoices, logger)
	workbook, err := exporter.WriteXLSX(ctx)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, workbook, 0o600); err != nil {
		logger.Error("failed to write workbook", "path", *out, "error", err)
		os.Exit(1)
	}
	logger.Info("workbook written", "path", *out)
}

// auditPayloads decrypts every stored payload and cross-checks it against the
// plaintext summary columns. Undecryptable payloads are reported with the
// sentinel and never stop the audit.
func auditPayloads(ctx context.Context, invoices repo.InvoiceRepository, cipher *crypto.Cipher, logger *slog.Logger) error {
	recs, err := invoices.List(ctx)
	if err != nil {
		return err
	}

	var failed, mismatched int
	for _, rec := range recs {
		dec, err := cipher.Decrypt(rec.Payload)
		if err != nil {
			failed++
			logger.Warn("audit.payload", "file_hash", rec.FileHash, "payload", crypto.DecryptionFailedSentinel)
			continue
		}
		if dec != rec.Fields {
			mismatched++
			logger.Warn("audit.mismatch", "file_hash", rec.FileHash)
		}
	}
	logger.Info("audit.done", "records", len(recs), "undecryptable", failed, "mismatched", mismatched)
	return nil
}

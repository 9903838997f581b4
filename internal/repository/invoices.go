package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"

	"github.com/willowhq/invoice-vault/constants"
	"github.com/willowhq/invoice-vault/internal/common"
	"github.com/willowhq/invoice-vault/internal/entity"
)

// InsertOutcome is the result of an insert attempt. DuplicateRejected is a
// first-class success, not an error: it means "already processed".
type InsertOutcome int

const (
	Inserted InsertOutcome = iota
	DuplicateRejected
)

func (o InsertOutcome) String() string {
	if o == DuplicateRejected {
		return "duplicate_rejected"
	}
	return "inserted"
}

// InvoiceRepository is the storage behavior the pipeline and export depend
// on. Rows are append-only: there is no update or delete.
type InvoiceRepository interface {
	// Insert attempts a unique-constrained insert keyed by file hash. On a
	// key collision the existing row is left untouched and the outcome is
	// DuplicateRejected.
	Insert(ctx context.Context, rec *entity.InvoiceRecord) (InsertOutcome, error)
	// List returns all rows in store order, plaintext summary columns plus
	// the opaque payload. An empty store yields zero rows, not an error.
	List(ctx context.Context) ([]entity.InvoiceRecord, error)
}

type invoiceRepo struct {
	db     *DB
	logger *slog.Logger
}

func NewInvoiceRepository(db *DB, logger *slog.Logger) InvoiceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &invoiceRepo{db: db, logger: logger}
}

const insertInvoice = `
INSERT INTO invoices (
    id, file_hash, filename, uploaded_at,
    invoice_number, invoice_date, vendor_name, vendor_gstin, buyer_name,
    cgst, sgst, grand_total, currency,
    payload_enc, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

const listInvoices = `
SELECT id, file_hash, filename, uploaded_at,
       invoice_number, invoice_date, vendor_name, vendor_gstin, buyer_name,
       cgst, sgst, grand_total, currency,
       payload_enc, status
FROM invoices
ORDER BY uploaded_at, file_hash`

func (r *invoiceRepo) Insert(ctx context.Context, rec *entity.InvoiceRecord) (InsertOutcome, error) {
	f := rec.Fields
	_, err := r.db.SQL.ExecContext(ctx, insertInvoice,
		rec.ID.String(), rec.FileHash, rec.Filename,
		rec.UploadedAt.UTC().Format(constants.UploadTimeLayout),
		f.InvoiceNumber, f.InvoiceDate, f.VendorName, f.VendorGSTIN, f.BuyerName,
		f.CGST, f.SGST, f.GrandTotal, f.Currency,
		rec.Payload, string(rec.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Info("duplicate document rejected", "file_hash", rec.FileHash, "filename", rec.Filename)
			return DuplicateRejected, nil
		}
		r.logger.Error("failed to insert invoice record", "file_hash", rec.FileHash, "error", err)
		return 0, fmt.Errorf("%w: insert invoice: %v", common.ErrDatabase, err)
	}
	return Inserted, nil
}

func (r *invoiceRepo) List(ctx context.Context) ([]entity.InvoiceRecord, error) {
	rows, err := r.db.SQL.QueryContext(ctx, listInvoices)
	if err != nil {
		r.logger.Error("failed to list invoice records", "error", err)
		return nil, fmt.Errorf("%w: list invoices: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	recs := make([]entity.InvoiceRecord, 0)
	for rows.Next() {
		var (
			rec        entity.InvoiceRecord
			id         string
			uploadedAt string
			status     string
		)
		if err := rows.Scan(
			&id, &rec.FileHash, &rec.Filename, &uploadedAt,
			&rec.Fields.InvoiceNumber, &rec.Fields.InvoiceDate,
			&rec.Fields.VendorName, &rec.Fields.VendorGSTIN, &rec.Fields.BuyerName,
			&rec.Fields.CGST, &rec.Fields.SGST, &rec.Fields.GrandTotal, &rec.Fields.Currency,
			&rec.Payload, &status,
		); err != nil {
			return nil, fmt.Errorf("scan invoice row: %w", err)
		}
		if u, perr := uuid.Parse(id); perr == nil {
			rec.ID = u
		}
		rec.Status = constants.RecordStatus(status)
		if t, perr := time.Parse(constants.UploadTimeLayout, uploadedAt); perr == nil {
			rec.UploadedAt = t
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice rows: %w", err)
	}
	return recs, nil
}

// isUniqueViolation maps driver-specific unique-constraint errors from both
// backends. The string fallback covers sqlite errors that arrive already
// flattened through database/sql.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		code := sqErr.Code()
		return code == sqlitelib.SQLITE_CONSTRAINT_UNIQUE || code == sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/willowhq/invoice-vault/constants"
)

// Default field values. Extraction never fails partially: a field whose
// heuristic found nothing carries its default instead.
const (
	DefaultUnknown  = "Unknown"
	DefaultNA       = "N/A"
	DefaultAmount   = "0.00"
	DefaultCurrency = "INR"
)

// Invoice holds the structured fields recovered from one document.
// Immutable once produced; every field is always present.
type Invoice struct {
	InvoiceNumber string `json:"invoice_number"`
	InvoiceDate   string `json:"invoice_date"`
	VendorName    string `json:"vendor_name"`
	VendorGSTIN   string `json:"vendor_gstin"`
	BuyerName     string `json:"buyer_name"`
	CGST          string `json:"cgst"`
	SGST          string `json:"sgst"`
	GrandTotal    string `json:"grand_total"`
	Currency      string `json:"currency"`
}

// NewInvoice returns an Invoice with every field at its documented default.
func NewInvoice() Invoice {
	return Invoice{
		InvoiceNumber: DefaultNA,
		InvoiceDate:   DefaultNA,
		VendorName:    DefaultUnknown,
		VendorGSTIN:   DefaultNA,
		BuyerName:     DefaultUnknown,
		CGST:          DefaultAmount,
		SGST:          DefaultAmount,
		GrandTotal:    DefaultAmount,
		Currency:      DefaultCurrency,
	}
}

// InvoiceRecord is one persisted row: the flattened plaintext summary of an
// Invoice plus the encrypted full-record payload. Rows are keyed by the
// content hash of the source document and are never mutated or deleted.
type InvoiceRecord struct {
	ID         uuid.UUID
	FileHash   string
	Filename   string
	UploadedAt time.Time
	Fields     Invoice
	Payload    []byte
	Status     constants.RecordStatus
}

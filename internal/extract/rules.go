package extract

import (
	"regexp"
	"strings"

	"github.com/willowhq/invoice-vault/internal/entity"
)

// Field names targeted by rules. A field is settled by the first rule that
// produces a value for it; later rules for the same field are skipped.
const (
	FieldVendorName    = "vendor_name"
	FieldVendorGSTIN   = "vendor_gstin"
	FieldBuyerName     = "buyer_name"
	FieldInvoiceNumber = "invoice_number"
	FieldInvoiceDate   = "invoice_date"
)

// Rule is a single named extraction strategy for one field. Rules are
// independent: each one sees the whole document and either produces a value
// or reports a miss, never an error.
type Rule struct {
	Name    string
	Field   string
	Extract func(d Document) (string, bool)
	Assign  func(inv *entity.Invoice, v string)
}

// vendorScanWindow caps how deep the vendor heuristic looks; vendor letterhead
// sits near the top of every layout we have seen.
const vendorScanWindow = 10

var (
	// GSTIN is a fixed jurisdiction-specific grammar; it is matched verbatim,
	// never generalized.
	reGSTIN = regexp.MustCompile(`\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]`)

	reBuyerLabel = regexp.MustCompile(`(?i)(invoice to|bill to|billed to)\s*[:.\-]?\s*\n+([^\n]+)`)

	reInvoiceNo = regexp.MustCompile(`(?i)(invoice\s*no|inv\s*#)\s*[:.]?\s*([A-Za-z0-9/-]+)`)

	// Day/month order is ambiguous in source documents and is preserved
	// verbatim, not normalized.
	reInvoiceDate = regexp.MustCompile(`\d{2}[/-]\d{2}[/-]\d{4}`)
)

// DefaultRules returns the standard rule list in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "vendor/first-clean-line",
			Field:   FieldVendorName,
			Extract: vendorName,
			Assign:  func(inv *entity.Invoice, v string) { inv.VendorName = v },
		},
		{
			Name:    "vendor/gstin",
			Field:   FieldVendorGSTIN,
			Extract: vendorGSTIN,
			Assign:  func(inv *entity.Invoice, v string) { inv.VendorGSTIN = v },
		},
		{
			Name:    "buyer/label-lookahead",
			Field:   FieldBuyerName,
			Extract: buyerName,
			Assign:  func(inv *entity.Invoice, v string) { inv.BuyerName = v },
		},
		{
			Name:    "meta/invoice-number",
			Field:   FieldInvoiceNumber,
			Extract: invoiceNumber,
			Assign:  func(inv *entity.Invoice, v string) { inv.InvoiceNumber = v },
		},
		{
			Name:    "meta/invoice-date",
			Field:   FieldInvoiceDate,
			Extract: invoiceDate,
			Assign:  func(inv *entity.Invoice, v string) { inv.InvoiceDate = v },
		},
	}
}

// vendorName picks the first of the top lines that is not invoice
// boilerplate. "TAX INVOICE" and "ORIGINAL FOR RECIPIENT" style headers are
// skipped after removing whitespace.
func vendorName(d Document) (string, bool) {
	limit := min(len(d.Lines), vendorScanWindow)
	for _, line := range d.Lines[:limit] {
		clean := strings.ToUpper(strings.ReplaceAll(line, " ", ""))
		if strings.Contains(clean, "TAXINVOICE") || strings.Contains(clean, "ORIGINAL") {
			continue
		}
		return line, true
	}
	return "", false
}

func vendorGSTIN(d Document) (string, bool) {
	m := reGSTIN.FindString(d.Text)
	return m, m != ""
}

// buyerName captures the first non-empty line after an "invoice to" style
// label, allowing an optional separator between label and line break.
func buyerName(d Document) (string, bool) {
	m := reBuyerLabel.FindStringSubmatch(d.Text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[2]), true
}

func invoiceNumber(d Document) (string, bool) {
	m := reInvoiceNo.FindStringSubmatch(d.Text)
	if m == nil {
		return "", false
	}
	return m[2], true
}

func invoiceDate(d Document) (string, bool) {
	m := reInvoiceDate.FindString(d.Text)
	return m, m != ""
}

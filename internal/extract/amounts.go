package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/willowhq/invoice-vault/internal/entity"
)

// amountPattern is the fixed amount grammar: optional canonical currency
// token, comma-separated thousands, exactly two fraction digits. Documents
// using other decimal or thousands conventions are out of scope.
var amountPattern = regexp.MustCompile(`(?:INR\s*)?(\d{1,3}(?:,\d{3})*\.\d{2})`)

// reTwoDecimals detects an amount-shaped token on a line; used to tell a tax
// value line apart from a bare rate line like "CGST 9%".
var reTwoDecimals = regexp.MustCompile(`\.\d{2}`)

// totalLabels is the priority order for the explicit grand total search.
var totalLabels = []string{"Grand Total", "TOTAL AMOUNT", "Amount Payable", "Invoice Total"}

// subtotalLabels feeds the arithmetic fallback when no explicit total exists.
var subtotalLabels = []string{"Subtotal", "Sub Total", "Total"}

// SearchAmount scans lines in order for any of the label keywords
// (case-insensitive substring) and returns the value next to the first label
// that yields one. On a matching line the rightmost amount wins: the value
// column sits right of rates and reference numbers. A line carrying a percent
// sign but no two-decimal amount is a rate line and is skipped. When the
// labeled line itself has no amount, the immediately following line is tried
// under the same percent rule.
func SearchAmount(lines []string, keywords []string) (string, bool) {
	for i, line := range lines {
		if !containsAny(line, keywords) {
			continue
		}
		if strings.Contains(line, "%") && !reTwoDecimals.MatchString(line) {
			continue
		}
		if v, ok := lineAmount(line); ok {
			return v, true
		}
		if i+1 < len(lines) {
			next := lines[i+1]
			if strings.Contains(next, "%") {
				continue
			}
			if v, ok := lineAmount(next); ok {
				return v, true
			}
		}
	}
	return "", false
}

// ResolveAmounts fills the monetary fields of inv: CGST and SGST by label
// proximity, then the grand total by the label priority list, then the
// arithmetic fallback. Misses leave defaults in place; nothing here can fail.
func ResolveAmounts(lines []string, inv *entity.Invoice) {
	if v, ok := SearchAmount(lines, []string{"CGST"}); ok {
		inv.CGST = v
	}
	if v, ok := SearchAmount(lines, []string{"SGST"}); ok {
		inv.SGST = v
	}
	for _, label := range totalLabels {
		if v, ok := SearchAmount(lines, []string{label}); ok {
			inv.GrandTotal = v
			break
		}
	}
	if inv.GrandTotal == entity.DefaultAmount {
		if total, ok := fallbackTotal(lines, inv.CGST, inv.SGST); ok {
			inv.GrandTotal = total
		}
	}
}

// fallbackTotal reconstructs a grand total as subtotal + CGST + SGST.
// Absent or unparsable parts read as zero; the reconstruction is only trusted
// when the sum is strictly positive.
func fallbackTotal(lines []string, cgst, sgst string) (string, bool) {
	sub, _ := SearchAmount(lines, subtotalLabels)
	total := parseAmount(sub).Add(parseAmount(cgst)).Add(parseAmount(sgst))
	if !total.IsPositive() {
		return "", false
	}
	return total.StringFixed(2), true
}

func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// lineAmount extracts the rightmost amount on a line, thousands separators
// stripped, two fraction digits retained.
func lineAmount(line string) (string, bool) {
	matches := amountPattern.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return "", false
	}
	return strings.ReplaceAll(matches[len(matches)-1][1], ",", ""), true
}

func containsAny(line string, keywords []string) bool {
	lower := strings.ToLower(line)
	for _, k := range keywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowhq/invoice-vault/internal/entity"
)

func lines(text string) []string { return NewDocument(text).Lines }

func TestSearchAmount_RightmostAmountWins(t *testing.T) {
	v, ok := SearchAmount(lines("CGST 18% 100.00 123.45"), []string{"CGST"})
	require.True(t, ok)
	assert.Equal(t, "123.45", v)
}

func TestSearchAmount_RateLineFallsThroughToNextLine(t *testing.T) {
	v, ok := SearchAmount(lines("CGST 18%\nsome other label\nCGST\n123.45"), []string{"CGST"})
	require.True(t, ok)
	assert.Equal(t, "123.45", v)
}

func TestSearchAmount_NextLineWithPercentIsSkipped(t *testing.T) {
	_, ok := SearchAmount(lines("CGST\n9% of taxable value"), []string{"CGST"})
	assert.False(t, ok)
}

func TestSearchAmount_ThousandsSeparatorsStripped(t *testing.T) {
	v, ok := SearchAmount(lines("Grand Total INR 1,23,456 9,999.00"), []string{"Grand Total"})
	require.True(t, ok)
	assert.Equal(t, "9999.00", v)
}

func TestSearchAmount_CaseInsensitiveLabels(t *testing.T) {
	v, ok := SearchAmount(lines("grand total: 500.00"), []string{"Grand Total"})
	require.True(t, ok)
	assert.Equal(t, "500.00", v)
}

func TestSearchAmount_NoLabel(t *testing.T) {
	_, ok := SearchAmount(lines("Subtotal 100.00"), []string{"CGST"})
	assert.False(t, ok)
}

func TestResolveAmounts_ExplicitTotalPriority(t *testing.T) {
	inv := entity.NewInvoice()
	ResolveAmounts(lines("CGST 9.00\nSGST 9.00\nInvoice Total 90.00\nGrand Total 118.00"), &inv)
	assert.Equal(t, "9.00", inv.CGST)
	assert.Equal(t, "9.00", inv.SGST)
	assert.Equal(t, "118.00", inv.GrandTotal, "Grand Total outranks Invoice Total regardless of line order")
}

func TestResolveAmounts_FallbackArithmetic(t *testing.T) {
	inv := entity.NewInvoice()
	ResolveAmounts(lines("Subtotal 100.00\nCGST 9.00\nSGST 9.00"), &inv)
	assert.Equal(t, "118.00", inv.GrandTotal)
}

func TestResolveAmounts_FallbackWithTaxesOnly(t *testing.T) {
	inv := entity.NewInvoice()
	ResolveAmounts(lines("CGST 9.00\nSGST 9.00\nno totals here"), &inv)
	assert.Equal(t, "18.00", inv.GrandTotal, "absent subtotal reads as zero")
}

func TestResolveAmounts_FallbackNotPositiveKeepsDefault(t *testing.T) {
	inv := entity.NewInvoice()
	ResolveAmounts(lines("nothing monetary at all"), &inv)
	assert.Equal(t, entity.DefaultAmount, inv.GrandTotal)
	assert.Equal(t, entity.DefaultAmount, inv.CGST)
	assert.Equal(t, entity.DefaultAmount, inv.SGST)
}

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(text string) Document { return NewDocument(text) }

func TestVendorName_SkipsBoilerplate(t *testing.T) {
	d := doc("TAX INVOICE\nORIGINAL FOR BUYER\nAcme Corp\nGSTIN: x")
	v, ok := vendorName(d)
	require.True(t, ok)
	assert.Equal(t, "Acme Corp", v)
}

func TestVendorName_FirstQualifyingLineWins(t *testing.T) {
	d := doc("Acme Corp\nBeta Traders")
	v, ok := vendorName(d)
	require.True(t, ok)
	assert.Equal(t, "Acme Corp", v)
}

func TestVendorName_OnlyBoilerplateInWindow(t *testing.T) {
	d := doc("TAX INVOICE\nORIGINAL")
	_, ok := vendorName(d)
	assert.False(t, ok)
}

func TestVendorName_WindowStopsAtTenLines(t *testing.T) {
	text := ""
	for i := 0; i < 10; i++ {
		text += "ORIGINAL COPY\n"
	}
	text += "Acme Corp\n"
	_, ok := vendorName(doc(text))
	assert.False(t, ok)
}

func TestVendorGSTIN_FixedGrammar(t *testing.T) {
	d := doc("Acme Corp\nGSTIN: 29ABCDE1234F1Z5\nsecond 27PQRST9876K2Z9")
	v, ok := vendorGSTIN(d)
	require.True(t, ok)
	assert.Equal(t, "29ABCDE1234F1Z5", v, "first match anywhere in the document wins")
}

func TestVendorGSTIN_NoMatch(t *testing.T) {
	_, ok := vendorGSTIN(doc("no tax id here 123456"))
	assert.False(t, ok)
}

func TestBuyerName_LabelVariants(t *testing.T) {
	for _, label := range []string{"Invoice To", "BILL TO", "Billed to"} {
		d := doc("Acme Corp\n" + label + ":\nJohn Trader\nsomething else")
		v, ok := buyerName(d)
		require.True(t, ok, label)
		assert.Equal(t, "John Trader", v, label)
	}
}

func TestBuyerName_SkipsBlankLines(t *testing.T) {
	d := doc("Bill To:\n\nJohn Trader")
	v, ok := buyerName(d)
	require.True(t, ok)
	assert.Equal(t, "John Trader", v)
}

func TestInvoiceNumber_Formats(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Invoice No: INV/22-23/008", "INV/22-23/008"},
		{"INVOICE NO. A-1042", "A-1042"},
		{"Inv # 77", "77"},
	}
	for _, tt := range tests {
		v, ok := invoiceNumber(doc(tt.in))
		require.True(t, ok, tt.in)
		assert.Equal(t, tt.want, v, tt.in)
	}
}

func TestInvoiceDate_VerbatimCapture(t *testing.T) {
	v, ok := invoiceDate(doc("Date: 05/03/2024 Due: 12/03/2024"))
	require.True(t, ok)
	assert.Equal(t, "05/03/2024", v, "first match wins, day/month order untouched")

	v, ok = invoiceDate(doc("Dated 31-12-2023"))
	require.True(t, ok)
	assert.Equal(t, "31-12-2023", v)
}

func TestInvoiceDate_NoMatch(t *testing.T) {
	_, ok := invoiceDate(doc("Date: 2024-03-05"))
	assert.False(t, ok, "ISO dates are outside the fixed grammar")
}

// Package textnorm canonicalizes raw document text before pattern matching.
package textnorm

import (
	"regexp"
	"strings"

	"github.com/willowhq/invoice-vault/internal/common"
)

// CurrencyToken is the canonical token every known rupee spelling collapses to.
const CurrencyToken = "INR"

// currencyReplacer maps the rupee glyph, its common UTF-8 mis-decoding, and
// the textual abbreviations to the canonical token. Longer spellings are
// listed first so "Rs." is not consumed as "Rs" plus a stray dot.
var currencyReplacer = strings.NewReplacer(
	"â‚¹", CurrencyToken+" ",
	"₹", CurrencyToken+" ",
	"Rs.", CurrencyToken+" ",
	"Rs", CurrencyToken+" ",
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// Normalize canonicalizes currency spellings and whitespace in raw extracted
// text. Numeric content is left untouched and line breaks are preserved, so
// line-order heuristics downstream still see the document shape.
//
// Normalize is idempotent: running it on its own output is a no-op. Input with
// no recoverable text at all yields [common.ErrEmptyDocument].
func Normalize(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", common.ErrEmptyDocument
	}

	s := currencyReplacer.Replace(raw)

	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	s = strings.Join(lines, "\n")

	return strings.TrimSpace(s), nil
}

package extract

import (
	"log/slog"

	"github.com/willowhq/invoice-vault/internal/entity"
)

// Extractor runs an ordered rule list over normalized text and resolves the
// monetary fields. It is a pure computation over in-memory text: safe to use
// concurrently across documents.
type Extractor struct {
	logger *slog.Logger
	rules  []Rule
}

// NewExtractor builds an Extractor. With no explicit rules it uses
// [DefaultRules].
func NewExtractor(logger *slog.Logger, rules ...Rule) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Extractor{logger: logger, rules: rules}
}

// Extract produces a fully populated Invoice from normalized text. Rules run
// in priority order with early exit per field; a field no rule matches keeps
// its default. Extract never fails.
func (e *Extractor) Extract(text string) entity.Invoice {
	d := NewDocument(text)
	inv := entity.NewInvoice()

	settled := make(map[string]bool, len(e.rules))
	for _, r := range e.rules {
		if settled[r.Field] {
			continue
		}
		v, ok := r.Extract(d)
		if !ok {
			continue
		}
		r.Assign(&inv, v)
		settled[r.Field] = true
		e.logger.Debug("extract.rule.hit", "rule", r.Name, "field", r.Field)
	}

	ResolveAmounts(d.Lines, &inv)
	return inv
}

package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextLayerProducer reads the embedded text layer of a PDF, row by row, so
// line-order heuristics see the same shape a human reader would.
type TextLayerProducer struct {
	logger *slog.Logger
}

func NewTextLayerProducer(logger *slog.Logger) *TextLayerProducer {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextLayerProducer{logger: logger}
}

func (p *TextLayerProducer) Produce(ctx context.Context, path string) (TextResult, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return TextResult{}, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			p.logger.Error("close pdf", "path", path, "error", cerr)
		}
	}()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return TextResult{}, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			p.logger.Warn("pdf row extraction failed", "path", path, "page", i, "error", err)
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
				b.WriteString(" ")
			}
			b.WriteString("\n")
		}
	}

	text := b.String()
	return TextResult{
		Text:     text,
		Method:   "pdf-text-layer",
		NeedsOCR: len(strings.TrimSpace(text)) < minTextLayerLen,
	}, nil
}

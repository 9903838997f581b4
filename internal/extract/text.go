package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/willowhq/invoice-vault/constants"
	"github.com/willowhq/invoice-vault/internal/common"
)

// PlainTextProducer reads pre-extracted text dumps (e.g. the output of an
// external OCR run) straight from disk.
type PlainTextProducer struct{}

func (PlainTextProducer) Produce(_ context.Context, path string) (TextResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return TextResult{}, fmt.Errorf("read text file: %w", err)
	}
	return TextResult{Text: string(raw), Method: "plain-text"}, nil
}

// Router dispatches to a producer by file extension.
type Router struct {
	producers map[string]TextProducer
}

// NewRouter wires the default producers for the allowed extensions.
func NewRouter(pdfProducer TextProducer) *Router {
	return &Router{
		producers: map[string]TextProducer{
			"pdf": pdfProducer,
			"txt": PlainTextProducer{},
		},
	}
}

func (r *Router) Produce(ctx context.Context, path string) (TextResult, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	p, ok := r.producers[ext]
	if !ok {
		return TextResult{}, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}
	return p.Produce(ctx, path)
}

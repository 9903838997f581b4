package extract

import "context"

// minTextLayerLen is the cue that a PDF text layer is too thin to trust and
// the document is probably a scan needing OCR.
const minTextLayerLen = 50

// TextResult is the output of a text producer.
type TextResult struct {
	Text   string
	Method string
	// NeedsOCR reports that the recovered text is below the trust threshold.
	// OCR itself is an external collaborator; the core only raises the cue.
	NeedsOCR bool
}

// TextProducer recovers raw text from a source document. The extraction core
// does not care whether the text came from a PDF text layer, an OCR engine,
// or a pre-extracted dump; only that it may be empty or noisy.
type TextProducer interface {
	Produce(ctx context.Context, path string) (TextResult, error)
}

package extract

import "strings"

// Document is normalized text prepared for rule matching. Lines holds the
// non-empty, whitespace-trimmed lines in original order; header heuristics
// depend on that order being preserved.
type Document struct {
	Text  string
	Lines []string
}

// NewDocument splits normalized text into matchable lines.
func NewDocument(text string) Document {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return Document{Text: text, Lines: lines}
}

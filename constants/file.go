package constants

import "strings"

// AllowedExtensions holds the default allowed file extensions for invoice
// ingestion. PDF covers both digital and scanned documents; TXT is for text
// already recovered by an external OCR run.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
	"txt": {},
}

// UploadTimeLayout is how upload timestamps are rendered in summary columns
// and exports.
const UploadTimeLayout = "2006-01-02 15:04"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// AllowedExt checks if a file extension is in the allowed set.
func AllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}

package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileImage   = 6
	FileUnknown = 99
)

// DetectFileTypeFromExt classifies an upload by its extension. Only images
// are accepted as student photos; the content itself is sniffed later.
func DetectFileTypeFromExt(filename string) int {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileImage
	default:
		return FileUnknown
	}
}

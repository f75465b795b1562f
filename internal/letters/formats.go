package letters

import (
	"path/filepath"
	"sort"
	"strings"
)

// Letter formats the service can extract text from.
const (
	FormatRTF  = "rtf"
	FormatPDF  = "pdf"
	FormatHTML = "html"
	FormatText = "txt"
)

// supportedExtensions maps lowercase file extensions to letter formats.
var supportedExtensions = map[string]string{
	".rtf":  FormatRTF,
	".pdf":  FormatPDF,
	".html": FormatHTML,
	".htm":  FormatHTML,
	".txt":  FormatText,
}

// DetectFormat returns the letter format for a path based on its extension.
func DetectFormat(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := supportedExtensions[ext]
	return format, ok
}

// IsSupportedFile checks if a filename has a supported letter extension.
func IsSupportedFile(filename string) bool {
	_, ok := DetectFormat(filename)
	return ok
}

// SupportedExtensions returns the supported file extensions in sorted order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

package letters

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/k3a/html2text"
	"github.com/ledongthuc/pdf"

	"github.com/Drmastoi/issa-call-sub002/internal/rtf"
)

// Reader handles letter file reading operations
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a new letter reader with the specified constraints
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ReadFile extracts plain text content from a letter file
func (r *Reader) ReadFile(req LetterReadFileRequest) (*LetterReadFileResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	// Check if file exists and get basic info
	fileInfo, err := os.Stat(req.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", req.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	format, err := r.validateLetterFile(req.Path, fileInfo)
	if err != nil {
		return nil, err
	}

	result := &LetterReadFileResult{
		Path:   req.Path,
		Format: format,
		Size:   fileInfo.Size(),
	}

	switch format {
	case FormatPDF:
		content, truncated, err := r.extractPDF(req.Path)
		if err != nil {
			return nil, err
		}
		result.Content = content
		result.Truncated = truncated
	case FormatRTF:
		data, err := os.ReadFile(req.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		text, strategy := rtf.ConvertDetail(string(data))
		result.Content = text
		result.Strategy = string(strategy)
	case FormatHTML:
		data, err := os.ReadFile(req.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		result.Content = html2text.HTML2Text(string(data))
	default:
		data, err := os.ReadFile(req.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		result.Content = string(data)
	}

	result.CharCount = utf8.RuneCountInString(result.Content)
	return result, nil
}

// ConvertText converts raw RTF content without touching the filesystem
func (r *Reader) ConvertText(req LetterConvertTextRequest) (*LetterConvertTextResult, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("content cannot be empty")
	}

	if int64(len(req.Content)) > r.maxFileSize {
		return nil, fmt.Errorf("content too large: %d bytes (max: %d bytes)",
			len(req.Content), r.maxFileSize)
	}

	text, strategy := rtf.ConvertDetail(req.Content)

	return &LetterConvertTextResult{
		Text:      text,
		Strategy:  string(strategy),
		CharCount: utf8.RuneCountInString(text),
	}, nil
}

// validateLetterFile performs basic validation and returns the detected format
func (r *Reader) validateLetterFile(filePath string, fileInfo os.FileInfo) (string, error) {
	// Check if it's a regular file (not a directory)
	if fileInfo.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	// Check file extension
	format, ok := DetectFormat(filePath)
	if !ok {
		return "", fmt.Errorf("unsupported file type: %s", filePath)
	}

	// Check file size
	if fileInfo.Size() > r.maxFileSize {
		return "", fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	return format, nil
}

// extractPDF extracts text content from a PDF letter
func (r *Reader) extractPDF(path string) (content string, truncated bool, err error) {
	defer func() {
		// The PDF parser can panic on malformed documents
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf extraction failed: %v", rec)
		}
	}()

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}

		// Check if adding this content would exceed the limit
		if totalLength+len(pageText) > r.maxTextSize {
			remaining := r.maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(pageText[:remaining])
			}
			truncated = true
			break
		}

		builder.WriteString(pageText)
		totalLength += len(pageText)

		// Add page separator for readability
		if pageNum < pdfReader.NumPage() {
			builder.WriteString("\n\n--- Page Break ---\n\n")
		}
	}

	text := builder.String()
	if text == "" {
		return "", false, fmt.Errorf("no text content could be extracted from PDF")
	}

	return text, truncated, nil
}

package letters

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/Drmastoi/issa-call-sub002/internal/rtf"
)

// Validator handles letter file validation operations
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new letter validator with the specified constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile performs comprehensive validation on a letter file
func (v *Validator) ValidateFile(req LetterValidateFileRequest) (*LetterValidateFileResult, error) {
	result := &LetterValidateFileResult{
		Path:  req.Path,
		Valid: false,
	}

	if format, ok := DetectFormat(req.Path); ok {
		result.Format = format
	}

	err := v.validateLetterFile(req.Path)
	if err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // Return result with validation error, not a processing error
	}

	result.Valid = true
	return result, nil
}

// validateLetterFile performs detailed validation on a letter file
func (v *Validator) validateLetterFile(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// Check if file exists and get basic info
	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	// Check if it's a regular file (not a directory)
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	// Check file extension
	format, ok := DetectFormat(filePath)
	if !ok {
		return fmt.Errorf("unsupported file type: %s", filePath)
	}

	// Check file size
	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", filePath)
	}

	if fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}

	switch format {
	case FormatRTF:
		return v.validateRTFContent(filePath)
	case FormatPDF:
		return v.validatePDFContent(filePath)
	default:
		// Plain text and HTML need no structural checks
		return nil
	}
}

// validateRTFContent checks the RTF signature and group balance
func (v *Validator) validateRTFContent(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("cannot read file: %w", err)
	}

	document := string(data)
	if !rtf.IsRTF(document) {
		return fmt.Errorf("missing RTF signature: %s", filePath)
	}

	depth := 0
	for i := 0; i < len(document); i++ {
		switch document[i] {
		case '\\':
			// Skip the escaped character so \{ and \} don't count
			i++
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return fmt.Errorf("unbalanced groups: unexpected close at byte %d", i)
			}
			depth--
		}
	}
	if depth != 0 {
		return fmt.Errorf("unbalanced groups: %d unclosed at end of file", depth)
	}

	return nil
}

// validatePDFContent opens the PDF with relaxed validation to confirm it parses
func (v *Validator) validatePDFContent(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}

	return nil
}

// IsValidLetter performs a quick check to see if a file is a valid letter
func (v *Validator) IsValidLetter(filePath string) bool {
	return v.validateLetterFile(filePath) == nil
}

// ValidateFileInfo performs basic validation on file info without opening the file
func (v *Validator) ValidateFileInfo(filePath string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !IsSupportedFile(filePath) {
		return fmt.Errorf("unsupported file type: %s", filePath)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", filePath)
	}

	if fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}

	return nil
}

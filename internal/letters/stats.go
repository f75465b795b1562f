package letters

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/k3a/html2text"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/Drmastoi/issa-call-sub002/internal/rtf"
)

// Stats handles letter statistics operations
type Stats struct {
	maxFileSize int64
	validator   *Validator
}

// NewStats creates a new letter stats analyzer with the specified constraints
func NewStats(maxFileSize int64) *Stats {
	return &Stats{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
	}
}

// GetFileStats returns detailed statistics about a single letter file
func (s *Stats) GetFileStats(req LetterStatsFileRequest) (*LetterStatsFileResult, error) {
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

	// Validate file
	if err := s.validator.ValidateFileInfo(req.Path, fileInfo); err != nil {
		return nil, err
	}

	format, _ := DetectFormat(req.Path)

	result := &LetterStatsFileResult{
		Path:         req.Path,
		Size:         fileInfo.Size(),
		Format:       format,
		ModifiedDate: fileInfo.ModTime().Format("2006-01-02 15:04:05"),
	}

	switch format {
	case FormatRTF:
		if err := s.collectRTFStats(req.Path, result); err != nil {
			return nil, err
		}
	case FormatPDF:
		pages, err := s.pdfPageCount(req.Path)
		if err != nil {
			return nil, err
		}
		result.Pages = pages
	case FormatHTML:
		data, err := os.ReadFile(req.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		result.CharCount = utf8.RuneCountInString(html2text.HTML2Text(string(data)))
	default:
		data, err := os.ReadFile(req.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		result.CharCount = utf8.RuneCountInString(string(data))
	}

	return result, nil
}

// collectRTFStats converts the document and records strategy, group count and text length
func (s *Stats) collectRTFStats(path string, result *LetterStatsFileResult) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	document := string(data)
	text, strategy := rtf.ConvertDetail(document)
	result.Strategy = string(strategy)
	result.CharCount = utf8.RuneCountInString(text)

	for _, tok := range rtf.Tokenize(document) {
		if tok.Type == rtf.TokenGroupStart {
			result.GroupCount++
		}
	}

	return nil
}

// pdfPageCount reads the PDF with relaxed validation and returns its page count
func (s *Stats) pdfPageCount(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return 0, fmt.Errorf("failed to count PDF pages: %w", err)
	}

	return ctx.PageCount, nil
}

// GetDirectoryStats returns statistics about letter files in a directory
//
//nolint:gocognit // Function complexity is necessary for comprehensive directory analysis
func (s *Stats) GetDirectoryStats(req LetterStatsDirectoryRequest) (*LetterStatsDirectoryResult, error) {
	directory := req.Directory
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	// Check if directory exists
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}

	var totalFiles int
	var totalSize int64
	var largestFile int64
	var largestFileName string
	var smallestFile int64 = int64(^uint64(0) >> 1) // Max int64
	var smallestFileName string
	countByFormat := make(map[string]int)

	err := filepath.Walk(directory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Continue despite errors
		}

		if info.IsDir() {
			return nil
		}

		format, ok := DetectFormat(info.Name())
		if !ok {
			return nil
		}

		// Quick validation without opening the file
		if s.validator.ValidateFileInfo(path, info) == nil {
			totalFiles++
			totalSize += info.Size()
			countByFormat[format]++

			if info.Size() > largestFile {
				largestFile = info.Size()
				largestFileName = info.Name()
			}

			if info.Size() < smallestFile {
				smallestFile = info.Size()
				smallestFileName = info.Name()
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	var averageSize int64
	if totalFiles > 0 {
		averageSize = totalSize / int64(totalFiles)
	}

	// If no files found, reset smallest file size
	if totalFiles == 0 {
		smallestFile = 0
	}

	result := &LetterStatsDirectoryResult{
		Directory:        directory,
		TotalFiles:       totalFiles,
		TotalSize:        totalSize,
		CountByFormat:    countByFormat,
		LargestFileSize:  largestFile,
		LargestFileName:  largestFileName,
		SmallestFileSize: smallestFile,
		SmallestFileName: smallestFileName,
		AverageFileSize:  averageSize,
	}

	return result, nil
}

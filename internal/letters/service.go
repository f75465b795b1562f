package letters

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Drmastoi/issa-call-sub002/internal/descriptions"
)

// ServiceConfig carries the settings the letter service needs
type ServiceConfig struct {
	MaxFileSize      int64
	LettersDirectory string
	DatabasePath     string
	CacheSize        int
	AuditEnabled     bool
}

// Service handles letter file operations by orchestrating the letter components
type Service struct {
	maxFileSize   int64
	reader        *Reader
	validator     *Validator
	stats         *Stats
	search        *Search
	store         *Store
	cache         *Cache
	pathValidator *PathValidator
}

// NewService creates a new letter service with all components
func NewService(cfg ServiceConfig) (*Service, error) {
	pathValidator, err := NewPathValidator(cfg.LettersDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	var store *Store
	if cfg.AuditEnabled && cfg.DatabasePath != "" {
		store, err = NewStore(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit store: %w", err)
		}
	}

	return &Service{
		maxFileSize:   cfg.MaxFileSize,
		reader:        NewReader(cfg.MaxFileSize),
		validator:     NewValidator(cfg.MaxFileSize),
		stats:         NewStats(cfg.MaxFileSize),
		search:        NewSearch(cfg.MaxFileSize),
		store:         store,
		cache:         NewCache(cfg.CacheSize),
		pathValidator: pathValidator,
	}, nil
}

// Close releases the service's resources
func (s *Service) Close() error {
	return s.store.Close()
}

// LetterReadFile reads the plain text content of a letter file
func (s *Service) LetterReadFile(req LetterReadFileRequest) (*LetterReadFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	// Serve from cache when the file on disk is unchanged
	var key string
	if info, err := os.Stat(req.Path); err == nil {
		key = cacheKey(req.Path, info.Size(), info.ModTime())
		if entry, ok := s.cache.Get(key); ok {
			format, _ := DetectFormat(req.Path)
			return &LetterReadFileResult{
				Content:   entry.content,
				Path:      req.Path,
				Format:    format,
				Strategy:  entry.strategy,
				Size:      info.Size(),
				CharCount: entry.charCount,
				Truncated: entry.truncated,
				Cached:    true,
			}, nil
		}
	}

	start := time.Now()
	result, err := s.reader.ReadFile(req)
	if err != nil {
		return nil, err
	}

	if key != "" {
		s.cache.Put(key, cachedLetter{
			content:   result.Content,
			strategy:  result.Strategy,
			charCount: result.CharCount,
			truncated: result.Truncated,
		})
	}

	s.audit(ConversionRecord{
		Path:       req.Path,
		Format:     result.Format,
		Strategy:   result.Strategy,
		CharCount:  result.CharCount,
		DurationMS: time.Since(start).Milliseconds(),
	})

	return result, nil
}

// LetterConvertText converts raw RTF content that is already in memory
func (s *Service) LetterConvertText(req LetterConvertTextRequest) (*LetterConvertTextResult, error) {
	start := time.Now()
	result, err := s.reader.ConvertText(req)
	if err != nil {
		return nil, err
	}

	s.audit(ConversionRecord{
		Format:     FormatRTF,
		Strategy:   result.Strategy,
		CharCount:  result.CharCount,
		DurationMS: time.Since(start).Milliseconds(),
	})

	return result, nil
}

// LetterValidateFile performs validation on a letter file
func (s *Service) LetterValidateFile(req LetterValidateFileRequest) (*LetterValidateFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.validator.ValidateFile(req)
}

// LetterStatsFile returns detailed statistics about a single letter file
func (s *Service) LetterStatsFile(req LetterStatsFileRequest) (*LetterStatsFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.stats.GetFileStats(req)
}

// LetterSearchDirectory searches for letter files in a directory
func (s *Service) LetterSearchDirectory(req LetterSearchDirectoryRequest) (*LetterSearchDirectoryResult, error) {
	// If no directory specified, use configured directory
	if req.Directory == "" {
		req.Directory = s.pathValidator.GetConfiguredDirectory()
	}

	// Validate directory is within configured bounds
	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	return s.search.SearchDirectory(req)
}

// LetterStatsDirectory returns statistics about letter files in a directory
func (s *Service) LetterStatsDirectory(req LetterStatsDirectoryRequest) (*LetterStatsDirectoryResult, error) {
	if req.Directory == "" {
		req.Directory = s.pathValidator.GetConfiguredDirectory()
	}

	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	return s.stats.GetDirectoryStats(req)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// IsValidLetter performs a quick validation check on a file
func (s *Service) IsValidLetter(filePath string) bool {
	return s.validator.IsValidLetter(filePath)
}

// CountLettersInDirectory counts the number of valid letter files in a directory
func (s *Service) CountLettersInDirectory(directory string) (int, error) {
	return s.search.CountLettersInDirectory(directory)
}

// FindLettersInDirectory finds all letter files in a directory without filtering
func (s *Service) FindLettersInDirectory(directory string) ([]FileInfo, error) {
	return s.search.FindLettersInDirectory(directory)
}

// AuditSummary aggregates the conversion ledger
func (s *Service) AuditSummary(ctx context.Context) (*ConversionSummary, error) {
	return s.store.Summary(ctx)
}

// audit records a conversion to the ledger when auditing is enabled
func (s *Service) audit(rec ConversionRecord) {
	if err := s.store.RecordConversion(context.Background(), rec); err != nil {
		log.Printf("audit record failed: %v", err)
	}
}

// LetterServerInfo returns comprehensive server information and usage guidance
func (s *Service) LetterServerInfo(req LetterServerInfoRequest, serverName, version,
	defaultDirectory string,
) (*LetterServerInfoResult, error) {
	// Validate the default directory is within bounds
	validatedDir := defaultDirectory
	if err := s.pathValidator.ValidateDirectory(defaultDirectory); err != nil {
		// Use the configured directory if validation fails
		validatedDir = s.pathValidator.GetConfiguredDirectory()
	}

	// Get directory contents with a timeout to prevent hanging
	// Limit to first 100 files for performance
	directoryContents := []FileInfo{}

	// Create a channel to receive results
	resultChan := make(chan []FileInfo, 1)
	errorChan := make(chan error, 1)

	// Run directory search in a goroutine with timeout
	go func() {
		files, err := s.search.FindLettersInDirectoryLimited(validatedDir, 100)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- files
	}()

	// Wait for result with timeout
	select {
	case files := <-resultChan:
		directoryContents = files
	case <-errorChan:
		// Don't fail completely if directory scan fails, just return empty contents
		directoryContents = []FileInfo{}
	case <-time.After(5 * time.Second):
		// Timeout after 5 seconds
		directoryContents = []FileInfo{}
	}

	// Define available tools with detailed information
	availableTools := []ToolInfo{
		{
			Name:        "letter_read_file",
			Description: descriptions.GetToolDescription("letter_read_file"),
			Usage: "Use this tool to get readable text from RTF, PDF, HTML or plain text letters. " +
				"For RTF input the 'strategy' field reports how the document was converted.",
			Parameters: "path (required): Full absolute path to the letter file",
		},
		{
			Name:        "letter_convert_text",
			Description: descriptions.GetToolDescription("letter_convert_text"),
			Usage: "Use this tool when the RTF document arrives inline (for example from a " +
				"database column) rather than as a file on disk. Non-RTF content is returned unchanged.",
			Parameters: "content (required): The raw RTF document as a string",
		},
		{
			Name:        "letter_validate_file",
			Description: descriptions.GetToolDescription("letter_validate_file"),
			Usage: "Use this tool to check a file before attempting to read it. RTF files are " +
				"checked for signature and group balance, PDF files are parsed with relaxed validation.",
			Parameters: "path (required): Full absolute path to the letter file",
		},
		{
			Name:        "letter_stats_file",
			Description: descriptions.GetToolDescription("letter_stats_file"),
			Usage: "Use this tool for file size, modification time, PDF page counts and RTF " +
				"conversion detail (strategy and group count).",
			Parameters: "path (required): Full absolute path to the letter file",
		},
		{
			Name:        "letter_search_directory",
			Description: descriptions.GetToolDescription("letter_search_directory"),
			Usage: "Use this tool to find letter files in the default directory or any specified " +
				"directory. Supports fuzzy search by filename.",
			Parameters: "directory (optional): Directory path to search (uses default if empty), " +
				"query (optional): Search query for fuzzy matching",
		},
		{
			Name:        "letter_stats_directory",
			Description: descriptions.GetToolDescription("letter_stats_directory"),
			Usage: "Use this tool to get an overview of all letter files in a directory including " +
				"counts per format, total sizes, and file information.",
			Parameters: "directory (optional): Directory path to analyze (uses default if empty)",
		},
		{
			Name:        "letter_server_info",
			Description: descriptions.GetToolDescription("letter_server_info"),
			Usage:       "Use this tool first to discover available tools and the configured letters directory.",
			Parameters:  "none",
		},
	}

	usageGuidance := `Letter MCP Server Usage Guide:

1. START WITH DISCOVERY:
   - Use 'letter_search_directory' to find available letter files
   - Use 'letter_stats_directory' to get an overview of the directory

2. VALIDATE FILES:
   - Use 'letter_validate_file' to check if a file is readable before processing

3. READ CONTENT:
   - Use 'letter_read_file' to extract plain text from RTF, PDF, HTML or TXT letters
   - For RTF input check the 'strategy' field in the response:
     * "structured": the document was parsed group by group (best fidelity)
     * "fallback": markup was stripped after a parse fault (lossy but safe)
     * "passthrough": the file had no RTF signature and was returned unchanged

4. CONVERT INLINE CONTENT:
   - Use 'letter_convert_text' when the RTF document is already in hand
     instead of on disk

5. GET METADATA:
   - Use 'letter_stats_file' for sizes, page counts and conversion detail

IMPORTANT NOTES:
- Always use absolute file paths
- The server can handle files up to ` + fmt.Sprintf("%d", s.maxFileSize/(1024*1024)) + `MB
- Converted text is cached; rewritten files are detected by size and mtime
- Conversions are recorded to the audit ledger when auditing is enabled`

	result := &LetterServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		DefaultDirectory:  validatedDir,
		MaxFileSize:       s.maxFileSize,
		AvailableTools:    availableTools,
		DirectoryContents: directoryContents,
		UsageGuidance:     usageGuidance,
		SupportedFormats:  SupportedExtensions(),
		CacheStats:        s.cache.Stats(),
	}

	return result, nil
}

package letters

// FileInfo represents information about a letter file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	Format       string `json:"format"`
	ModifiedTime string `json:"modified_time"`
}

// Request Types

// LetterReadFileRequest represents a request to read a letter file
type LetterReadFileRequest struct {
	Path string `json:"path"`
}

// LetterConvertTextRequest represents a request to convert raw RTF content
type LetterConvertTextRequest struct {
	Content string `json:"content"`
}

// LetterValidateFileRequest represents a request to validate a letter file
type LetterValidateFileRequest struct {
	Path string `json:"path"`
}

// LetterStatsFileRequest represents a request to get stats about a letter file
type LetterStatsFileRequest struct {
	Path string `json:"path"`
}

// LetterSearchDirectoryRequest represents a request to search for letter files in a directory
type LetterSearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// LetterStatsDirectoryRequest represents a request to get directory statistics
type LetterStatsDirectoryRequest struct {
	Directory string `json:"directory"`
}

// LetterServerInfoRequest represents a request to get server information and capabilities
type LetterServerInfoRequest struct {
	// No parameters needed for server info
}

// Response Types

// LetterReadFileResult represents the result of a letter read operation
type LetterReadFileResult struct {
	Content   string `json:"content"`
	Path      string `json:"path"`
	Format    string `json:"format"`
	Strategy  string `json:"strategy,omitempty"` // "structured", "fallback" or "passthrough" for RTF input
	Size      int64  `json:"size"`
	CharCount int    `json:"char_count"`
	Truncated bool   `json:"truncated"`
	Cached    bool   `json:"cached"`
}

// LetterConvertTextResult represents the result of an inline RTF conversion
type LetterConvertTextResult struct {
	Text      string `json:"text"`
	Strategy  string `json:"strategy"`
	CharCount int    `json:"char_count"`
}

// LetterValidateFileResult represents the result of a letter validation operation
type LetterValidateFileResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Format  string `json:"format,omitempty"`
	Message string `json:"message,omitempty"`
}

// LetterStatsFileResult represents the result of a letter file stats operation
type LetterStatsFileResult struct {
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	Format       string `json:"format"`
	ModifiedDate string `json:"modified_date"`
	Pages        int    `json:"pages,omitempty"`       // PDF only
	Strategy     string `json:"strategy,omitempty"`    // RTF only
	GroupCount   int    `json:"group_count,omitempty"` // RTF only
	CharCount    int    `json:"char_count,omitempty"`
}

// LetterSearchDirectoryResult represents the result of a letter search operation
type LetterSearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}

// LetterStatsDirectoryResult represents the result of directory statistics
type LetterStatsDirectoryResult struct {
	Directory        string         `json:"directory"`
	TotalFiles       int            `json:"total_files"`
	TotalSize        int64          `json:"total_size"`
	CountByFormat    map[string]int `json:"count_by_format"`
	LargestFileSize  int64          `json:"largest_file_size"`
	LargestFileName  string         `json:"largest_file_name"`
	SmallestFileSize int64          `json:"smallest_file_size"`
	SmallestFileName string         `json:"smallest_file_name"`
	AverageFileSize  int64          `json:"average_file_size"`
}

// LetterServerInfoResult represents server information and usage guidance
type LetterServerInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	DefaultDirectory  string     `json:"default_directory"`
	MaxFileSize       int64      `json:"max_file_size"`
	AvailableTools    []ToolInfo `json:"available_tools"`
	DirectoryContents []FileInfo `json:"directory_contents"`
	UsageGuidance     string     `json:"usage_guidance"`
	SupportedFormats  []string   `json:"supported_formats"`
	CacheStats        CacheStats `json:"cache_stats"`
}

// ToolInfo represents information about an available tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}

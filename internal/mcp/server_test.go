package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Drmastoi/issa-call-sub002/internal/config"
	"github.com/Drmastoi/issa-call-sub002/internal/letters"
)

// newTestLetterService builds a letter service for handler tests.
// Auditing stays off so the tests never touch a database file.
func newTestLetterService(t *testing.T, maxFileSize int64, directory string) *letters.Service {
	t.Helper()

	letterService, err := letters.NewService(letters.ServiceConfig{
		MaxFileSize:      maxFileSize,
		LettersDirectory: directory,
		CacheSize:        16,
	})
	if err != nil {
		t.Fatalf("failed to create letter service: %v", err)
	}
	t.Cleanup(func() {
		_ = letterService.Close()
	})
	return letterService
}

func TestNewServer(t *testing.T) {
	// Create temp directory for test
	tempDir, err := os.MkdirTemp("", "mcp_server_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	maxFileSize := int64(1024 * 1024)
	letterService := newTestLetterService(t, maxFileSize, tempDir)

	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
	}{
		{
			name: "valid stdio mode config",
			config: &config.Config{
				Mode:             "stdio",
				Host:             "127.0.0.1",
				Port:             8080,
				LettersDirectory: "/tmp",
				Version:          "1.0.0",
				ServerName:       "test-server",
				LogLevel:         "info",
				MaxFileSize:      maxFileSize,
			},
			expectError: false,
		},
		{
			name: "valid server mode config",
			config: &config.Config{
				Mode:             "server",
				Host:             "127.0.0.1",
				Port:             8080,
				LettersDirectory: "/tmp",
				Version:          "1.0.0",
				ServerName:       "test-server",
				LogLevel:         "info",
				MaxFileSize:      maxFileSize,
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, err := NewServer(tt.config, letterService)

			if tt.expectError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if !tt.expectError {
				if server == nil {
					t.Fatal("server should not be nil")
				}
				if server.config != tt.config {
					t.Error("server config not set correctly")
				}
				if server.letterService != letterService {
					t.Error("server letterService not set correctly")
				}
				if server.mcpServer == nil {
					t.Error("mcpServer should be initialized")
				}
			}
		})
	}
}

func TestServer_HandleLetterValidateFile(t *testing.T) {
	// Create temp directory for test files
	tempDir, err := os.MkdirTemp("", "mcp_server_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Create an RTF file with an unclosed group
	testFile := filepath.Join(tempDir, "test.rtf")
	if err := os.WriteFile(testFile, []byte(`{\rtf1 Unterminated`), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	// Setup server
	cfg := &config.Config{
		Mode:             "stdio",
		LettersDirectory: tempDir,
		Version:          "1.0.0",
		ServerName:       "test-server",
		MaxFileSize:      1024 * 1024,
	}
	letterService := newTestLetterService(t, cfg.MaxFileSize, cfg.LettersDirectory)
	server, err := NewServer(cfg, letterService)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	// Create request with real CallToolRequest
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"path": testFile,
			},
		},
	}

	// Test the handler
	result, err := server.handleLetterValidateFile(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if result == nil {
		t.Fatal("result should not be nil")
	}

	// The file should be invalid since its only group never closes
	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "Letter validation failed") {
		t.Errorf("expected validation to fail, got: %s", resultText)
	}
	if !strings.Contains(resultText, "unbalanced groups") {
		t.Errorf("expected unbalanced group message, got: %s", resultText)
	}
}

func TestServer_HandleLetterSearchDirectory(t *testing.T) {
	// Create temp directory with letter files
	tempDir, err := os.MkdirTemp("", "mcp_search_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Create test letter files plus one unsupported file
	testFiles := []string{"discharge1.rtf", "discharge2.rtf", "scan.jpg"}
	for _, filename := range testFiles {
		filePath := filepath.Join(tempDir, filename)
		if err := os.WriteFile(filePath, make([]byte, 1024), 0o644); err != nil {
			t.Fatalf("failed to create test file %s: %v", filename, err)
		}
	}

	// Setup server
	cfg := &config.Config{
		Mode:             "stdio",
		LettersDirectory: tempDir,
		Version:          "1.0.0",
		ServerName:       "test-server",
		MaxFileSize:      1024 * 1024,
	}
	letterService := newTestLetterService(t, cfg.MaxFileSize, cfg.LettersDirectory)
	server, err := NewServer(cfg, letterService)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	// Create request with real CallToolRequest
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"directory": tempDir,
				"query":     "",
			},
		},
	}

	// Test the handler
	result, err := server.handleLetterSearchDirectory(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if result == nil {
		t.Fatal("result should not be nil")
	}

	// Verify content mentions the found letter files
	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "Found 2 letter file(s)") {
		t.Errorf("content should mention 2 letter files, got: %s", resultText)
	}
	if strings.Contains(resultText, "scan.jpg") {
		t.Errorf("content should not list unsupported files, got: %s", resultText)
	}
}

func TestServer_HandleLetterStatsDirectory(t *testing.T) {
	// Create temp directory with letter files
	tempDir, err := os.MkdirTemp("", "mcp_stats_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Create test letter files with different sizes and formats
	testFiles := map[string]int{
		"small.txt":  512,
		"medium.rtf": 1024,
		"large.html": 2048,
	}

	for filename, size := range testFiles {
		filePath := filepath.Join(tempDir, filename)
		if err := os.WriteFile(filePath, make([]byte, size), 0o644); err != nil {
			t.Fatalf("failed to create test file %s: %v", filename, err)
		}
	}

	// Setup server
	cfg := &config.Config{
		Mode:             "stdio",
		LettersDirectory: tempDir,
		Version:          "1.0.0",
		ServerName:       "test-server",
		MaxFileSize:      1024 * 1024,
	}
	letterService := newTestLetterService(t, cfg.MaxFileSize, cfg.LettersDirectory)
	server, err := NewServer(cfg, letterService)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	// Create request with real CallToolRequest
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"directory": tempDir,
			},
		},
	}

	// Test the handler
	result, err := server.handleLetterStatsDirectory(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if result == nil {
		t.Fatal("result should not be nil")
	}

	// Verify content mentions the statistics
	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "Total letter files: 3") {
		t.Errorf("content should mention 3 letter files, got: %s", resultText)
	}
	if !strings.Contains(resultText, "rtf: 1") {
		t.Errorf("content should mention the per-format counts, got: %s", resultText)
	}
}

func TestServer_DefaultDirectory(t *testing.T) {
	// Create temp directory
	tempDir, err := os.MkdirTemp("", "letter-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cfg := &config.Config{
		Mode:             "stdio",
		LettersDirectory: tempDir,
		Version:          "1.0.0",
		ServerName:       "test-server",
		MaxFileSize:      1024 * 1024,
	}
	letterService := newTestLetterService(t, cfg.MaxFileSize, cfg.LettersDirectory)
	server, err := NewServer(cfg, letterService)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	// Create request without directory (should use default)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"query": "",
			},
		},
	}

	// Test search directory handler
	result, err := server.handleLetterSearchDirectory(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if result == nil {
		t.Fatal("result should not be nil")
	}

	// Verify it used the default directory
	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, tempDir) {
		t.Errorf("content should mention default directory %s, got: %s", tempDir, resultText)
	}
}

func TestServer_InvalidArguments(t *testing.T) {
	// Setup server
	cfg := &config.Config{
		Mode:             "stdio",
		LettersDirectory: "/tmp",
		Version:          "1.0.0",
		ServerName:       "test-server",
		MaxFileSize:      1024 * 1024,
	}
	letterService := newTestLetterService(t, cfg.MaxFileSize, cfg.LettersDirectory)
	server, err := NewServer(cfg, letterService)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	// Test with missing required arguments
	emptyRequest := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}

	// Test each handler that requires arguments
	handlers := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
	}{
		{"LetterValidateFile", server.handleLetterValidateFile},
		{"LetterReadFile", server.handleLetterReadFile},
		{"LetterConvertText", server.handleLetterConvertText},
		{"LetterStatsFile", server.handleLetterStatsFile},
	}

	for _, h := range handlers {
		t.Run(h.name, func(t *testing.T) {
			result, err := h.handler(context.Background(), emptyRequest)
			if err != nil {
				t.Errorf("handler should not return error, got: %v", err)
			}
			if result == nil {
				t.Fatal("result should not be nil")
			}

			// Check if it's an error result
			resultText := extractTextFromResult(result)
			if !strings.Contains(resultText, "required") && !strings.Contains(resultText, "missing") && !strings.Contains(resultText, "error") {
				t.Errorf("expected error message for missing arguments, got: %s", resultText)
			}
		})
	}
}

func TestFormatMethods(t *testing.T) {
	// Setup server
	cfg := &config.Config{
		Mode:             "stdio",
		LettersDirectory: "/tmp",
		Version:          "1.0.0",
		ServerName:       "test-server",
		MaxFileSize:      1024 * 1024,
	}
	letterService := newTestLetterService(t, cfg.MaxFileSize, cfg.LettersDirectory)
	server, err := NewServer(cfg, letterService)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	// Test formatLetterSearchDirectoryResult
	searchResult := &letters.LetterSearchDirectoryResult{
		Files: []letters.FileInfo{
			{
				Name:         "discharge.rtf",
				Path:         "/tmp/discharge.rtf",
				Size:         1024,
				Format:       "rtf",
				ModifiedTime: "2023-01-01 12:00:00",
			},
		},
		TotalCount:  1,
		Directory:   "/tmp",
		SearchQuery: "discharge",
	}

	formatted := server.formatLetterSearchDirectoryResult(searchResult)
	if !strings.Contains(formatted, "Found 1 letter file(s)") {
		t.Error("formatted result should contain file count")
	}
	if !strings.Contains(formatted, "discharge.rtf") {
		t.Error("formatted result should contain filename")
	}
	if !strings.Contains(formatted, "Format: rtf") {
		t.Error("formatted result should contain file format")
	}

	// Test formatLetterStatsDirectoryResult
	statsResult := &letters.LetterStatsDirectoryResult{
		Directory:  "/tmp",
		TotalFiles: 2,
		TotalSize:  2048,
		CountByFormat: map[string]int{
			"rtf": 1,
			"txt": 1,
		},
		LargestFileSize:  1024,
		LargestFileName:  "large.rtf",
		SmallestFileSize: 512,
		SmallestFileName: "small.txt",
		AverageFileSize:  1024,
	}

	formatted = server.formatLetterStatsDirectoryResult(statsResult)
	if !strings.Contains(formatted, "Total letter files: 2") {
		t.Error("formatted result should contain total files")
	}
	if !strings.Contains(formatted, "large.rtf") {
		t.Error("formatted result should contain largest filename")
	}
	if !strings.Contains(formatted, "rtf: 1") {
		t.Error("formatted result should contain per-format counts")
	}

	// Test formatLetterStatsFileResult
	fileStatsResult := &letters.LetterStatsFileResult{
		Path:         "/tmp/test.rtf",
		Size:         1024,
		Format:       "rtf",
		ModifiedDate: "2023-01-01 12:00:00",
		Strategy:     "structured",
		GroupCount:   3,
		CharCount:    11,
	}

	formatted = server.formatLetterStatsFileResult(fileStatsResult)
	if !strings.Contains(formatted, "Conversion Strategy: structured") {
		t.Error("formatted result should contain conversion strategy")
	}
	if !strings.Contains(formatted, "RTF Groups: 3") {
		t.Error("formatted result should contain group count")
	}
	if strings.Contains(formatted, "Pages:") {
		t.Error("formatted result should not mention pages for RTF files")
	}

	// Test formatLetterServerInfoResult
	infoResult := &letters.LetterServerInfoResult{
		ServerName:       "test-server",
		Version:          "1.0.0",
		DefaultDirectory: "/tmp",
		MaxFileSize:      50 * 1024 * 1024,
		AvailableTools: []letters.ToolInfo{
			{
				Name:        "letter_read_file",
				Description: "Read a letter file",
				Usage:       "letter_read_file(path=\"/tmp/letter.rtf\")",
				Parameters:  "path (required)",
			},
		},
		SupportedFormats: []string{"rtf (Rich Text Format)"},
		UsageGuidance:    "Start with letter_server_info to discover the directory.",
		CacheStats: letters.CacheStats{
			Size:     2,
			Capacity: 128,
			HitRate:  50.0,
		},
	}

	formatted = server.formatLetterServerInfoResult(infoResult)
	if !strings.Contains(formatted, "Server Information") {
		t.Error("formatted result should contain the header")
	}
	if !strings.Contains(formatted, "Max File Size: 50 MB") {
		t.Error("formatted result should contain the max file size")
	}
	if !strings.Contains(formatted, "letter_read_file") {
		t.Error("formatted result should contain tool names")
	}
	if !strings.Contains(formatted, "2/128 entries") {
		t.Error("formatted result should contain cache stats")
	}
}

// Helper function to extract text from a CallToolResult
func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}

	// Try to extract text content
	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		// Handle pointer to TextContent as well
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}

	return ""
}

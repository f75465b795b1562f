package mcp

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Drmastoi/issa-call-sub002/internal/config"
	"github.com/Drmastoi/issa-call-sub002/internal/letters"
)

// Server represents the MCP server instance
type Server struct {
	config        *config.Config
	letterService *letters.Service
	mcpServer     *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, letterService *letters.Service) (*Server, error) {
	if letterService == nil {
		return nil, fmt.Errorf("letterService cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:        cfg,
		letterService: letterService,
		mcpServer:     mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	// Register letter read file tool
	letterReadFileTool := mcp.NewTool(
		"letter_read_file",
		mcp.WithDescription("Read a letter file and extract its plain text content"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the letter file"),
		),
	)
	s.mcpServer.AddTool(letterReadFileTool, s.handleLetterReadFile)

	// Register letter convert text tool
	letterConvertTextTool := mcp.NewTool(
		"letter_convert_text",
		mcp.WithDescription("Convert raw RTF content that is already in memory to plain text"),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The raw RTF document as a string"),
		),
	)
	s.mcpServer.AddTool(letterConvertTextTool, s.handleLetterConvertText)

	// Register letter validate file tool
	letterValidateFileTool := mcp.NewTool(
		"letter_validate_file",
		mcp.WithDescription("Validate if a file is a readable letter"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the letter file"),
		),
	)
	s.mcpServer.AddTool(letterValidateFileTool, s.handleLetterValidateFile)

	// Register letter stats file tool
	letterStatsFileTool := mcp.NewTool(
		"letter_stats_file",
		mcp.WithDescription("Get detailed statistics about a letter file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the letter file"),
		),
	)
	s.mcpServer.AddTool(letterStatsFileTool, s.handleLetterStatsFile)

	// Register letter search directory tool
	letterSearchDirectoryTool := mcp.NewTool(
		"letter_search_directory",
		mcp.WithDescription("Search for letter files in a directory with optional fuzzy search"),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy matching"),
		),
	)
	s.mcpServer.AddTool(letterSearchDirectoryTool, s.handleLetterSearchDirectory)

	// Register letter stats directory tool
	letterStatsDirectoryTool := mcp.NewTool(
		"letter_stats_directory",
		mcp.WithDescription("Get statistics about letter files in a directory"),
		mcp.WithString("directory",
			mcp.Description("Directory path to analyze (uses default if empty)"),
		),
	)
	s.mcpServer.AddTool(letterStatsDirectoryTool, s.handleLetterStatsDirectory)

	// Register letter server info tool
	letterServerInfoTool := mcp.NewTool(
		"letter_server_info",
		mcp.WithDescription("Get server information, available tools, directory contents, and usage guidance"),
	)
	s.mcpServer.AddTool(letterServerInfoTool, s.handleLetterServerInfo)
}

// Handler functions
func (s *Server) handleLetterReadFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := letters.LetterReadFileRequest{Path: path}
	result, err := s.letterService.LetterReadFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Successfully read letter: %s\n", result.Path)
	responseText += fmt.Sprintf("Format: %s\n", result.Format)
	responseText += fmt.Sprintf("Size: %d bytes\n", result.Size)
	responseText += fmt.Sprintf("Characters: %d\n", result.CharCount)
	if result.Strategy != "" {
		responseText += fmt.Sprintf("Conversion Strategy: %s\n", result.Strategy)
	}
	if result.Cached {
		responseText += "Served from cache\n"
	}
	if result.Truncated {
		responseText += "⚠️  WARNING: Content was truncated because it exceeded the text size limit.\n"
	}

	// Add guidance based on conversion strategy
	switch result.Strategy {
	case "fallback":
		responseText += "\n💡 INFO: The RTF document could not be parsed structurally, so markup " +
			"was stripped instead. Layout may be lossy but the text is complete.\n"
	case "passthrough":
		responseText += "\n💡 INFO: The file had no RTF signature and was returned unchanged.\n"
	}

	responseText += "\nContent:\n"
	responseText += result.Content

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleLetterConvertText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := letters.LetterConvertTextRequest{Content: content}
	result, err := s.letterService.LetterConvertText(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Conversion Strategy: %s\n", result.Strategy)
	responseText += fmt.Sprintf("Characters: %d\n", result.CharCount)
	responseText += "\nText:\n"
	responseText += result.Text

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleLetterValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := letters.LetterValidateFileRequest{Path: path}
	result, err := s.letterService.LetterValidateFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("Letter file %s is valid and readable (%s)", result.Path, result.Format)
	} else {
		responseText = fmt.Sprintf("Letter validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleLetterStatsFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := letters.LetterStatsFileRequest{Path: path}
	result, err := s.letterService.LetterStatsFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatLetterStatsFileResult(result)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleLetterSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.LettersDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	req := letters.LetterSearchDirectoryRequest{
		Directory: directory,
		Query:     query,
	}

	result, err := s.letterService.LetterSearchDirectory(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.TotalCount == 0 {
		responseText = fmt.Sprintf("No letter files found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
	} else {
		responseText = s.formatLetterSearchDirectoryResult(result)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleLetterStatsDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.LettersDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	req := letters.LetterStatsDirectoryRequest{Directory: directory}
	result, err := s.letterService.LetterStatsDirectory(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatLetterStatsDirectoryResult(result)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleLetterServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := letters.LetterServerInfoRequest{}
	result, err := s.letterService.LetterServerInfo(req, s.config.ServerName, s.config.Version, s.config.LettersDirectory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatLetterServerInfoResult(result)
	return mcp.NewToolResultText(responseText), nil
}

// Formatting methods
func (s *Server) formatLetterSearchDirectoryResult(result *letters.LetterSearchDirectoryResult) string {
	text := fmt.Sprintf("Found %d letter file(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Format: %s\n", file.Format)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(result.Files)-1 {
			text += "\n"
		}
	}

	return text
}

func (s *Server) formatLetterStatsDirectoryResult(result *letters.LetterStatsDirectoryResult) string {
	text := "Letter Directory Statistics\n"
	text += fmt.Sprintf("Directory: %s\n", result.Directory)
	text += fmt.Sprintf("Total letter files: %d\n", result.TotalFiles)
	text += fmt.Sprintf("Total size: %d bytes\n", result.TotalSize)

	if len(result.CountByFormat) > 0 {
		formats := make([]string, 0, len(result.CountByFormat))
		for format := range result.CountByFormat {
			formats = append(formats, format)
		}
		sort.Strings(formats)
		text += "Files per format:\n"
		for _, format := range formats {
			text += fmt.Sprintf("  %s: %d\n", format, result.CountByFormat[format])
		}
	}

	if result.TotalFiles > 0 {
		text += fmt.Sprintf("Average file size: %d bytes\n", result.AverageFileSize)
		if result.LargestFileName != "" {
			text += fmt.Sprintf("Largest file: %s (%d bytes)\n", result.LargestFileName, result.LargestFileSize)
		}
		if result.SmallestFileName != "" {
			text += fmt.Sprintf("Smallest file: %s (%d bytes)\n", result.SmallestFileName, result.SmallestFileSize)
		}
	}

	return text
}

func (s *Server) formatLetterStatsFileResult(result *letters.LetterStatsFileResult) string {
	text := "Letter File Statistics\n"
	text += fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("Format: %s\n", result.Format)
	text += fmt.Sprintf("Size: %d bytes\n", result.Size)
	text += fmt.Sprintf("Modified: %s\n", result.ModifiedDate)

	if result.Pages > 0 {
		text += fmt.Sprintf("Pages: %d\n", result.Pages)
	}
	if result.Strategy != "" {
		text += fmt.Sprintf("Conversion Strategy: %s\n", result.Strategy)
	}
	if result.GroupCount > 0 {
		text += fmt.Sprintf("RTF Groups: %d\n", result.GroupCount)
	}
	if result.CharCount > 0 {
		text += fmt.Sprintf("Characters: %d\n", result.CharCount)
	}

	return text
}

func (s *Server) formatLetterServerInfoResult(result *letters.LetterServerInfoResult) string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("📁 Default Directory: %s\n", result.DefaultDirectory)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n", result.MaxFileSize/(1024*1024))
	text += fmt.Sprintf("💾 Cache: %d/%d entries, %.1f%% hit rate\n\n",
		result.CacheStats.Size, result.CacheStats.Capacity, result.CacheStats.HitRate)

	// Directory contents
	if len(result.DirectoryContents) > 0 {
		text += fmt.Sprintf("📂 Directory Contents (%d letter files found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= 10 { // Limit to first 10 files for readability
				text += fmt.Sprintf("   ... and %d more files\n", len(result.DirectoryContents)-10)
				break
			}
			text += fmt.Sprintf("   %d. %s (%s, %d bytes)\n", i+1, file.Name, file.Format, file.Size)
		}
		text += "\n"
	} else {
		text += "📂 Directory Contents: No letter files found in default directory\n\n"
	}

	// Available tools
	text += "🛠️  Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	// Supported formats
	if len(result.SupportedFormats) > 0 {
		text += "\n📄 Supported Letter Formats:\n"
		for _, format := range result.SupportedFormats {
			text += fmt.Sprintf("  • %s\n", format)
		}
	}

	// Usage guidance
	text += "\n" + result.UsageGuidance

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	} else {
		return s.runStdioMode(ctx)
	}
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting letter MCP server in stdio mode")
		log.Printf("Letters directory: %s", s.config.LettersDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// For now, we'll just use stdio mode since the mark3labs library
	// handles the transport differently
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}

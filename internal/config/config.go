package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 50 * 1024 * 1024 // 50MB
	DefaultCacheSize   = 128

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the letter MCP server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Letter configuration
	LettersDirectory string
	DatabasePath     string
	CacheSize        int
	AuditEnabled     bool

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum letter file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:             ModeStdio, // Default to stdio mode for MCP compatibility
		Host:             DefaultHost,
		Port:             DefaultPort,
		LettersDirectory: currentDir,
		DatabasePath:     "",
		CacheSize:        DefaultCacheSize,
		AuditEnabled:     false,
		Version:          "1.0.0",
		ServerName:       "mcp-letter-reader",
		LogLevel:         DefaultLogLevel,
		MaxFileSize:      DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.LettersDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.LettersDirectory); err == nil {
			cfg.LettersDirectory = expandedPath
		}
	}

	// Auditing without an explicit database path writes next to the letters
	if cfg.AuditEnabled && cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(cfg.LettersDirectory, "letters_audit.db")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("MCP_LETTER")
	viper.AutomaticEnv()

	// Define flags with Viper
	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.LettersDirectory)
	viper.SetDefault("db", cfg.DatabasePath)
	viper.SetDefault("cachesize", cfg.CacheSize)
	viper.SetDefault("audit", cfg.AuditEnabled)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.LettersDirectory, "Directory containing letter files")
	pflag.String("db", cfg.DatabasePath, "Path to the SQLite audit database")
	pflag.Int("cachesize", cfg.CacheSize, "Number of converted letters to keep in the LRU cache")
	pflag.Bool("audit", cfg.AuditEnabled, "Record conversions to the audit database")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum letter file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("db", pflag.Lookup("db"))
	_ = viper.BindPFlag("cachesize", pflag.Lookup("cachesize"))
	_ = viper.BindPFlag("audit", pflag.Lookup("audit"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMCP Letter Reader - A Model Context Protocol server for reading clinical letters\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                         "+
			"# stdio mode, current directory (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/letters                  "+
			"# stdio mode with custom directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/letters --audit          # record conversions\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --host=0.0.0.0 --port=8081 # server on all interfaces\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  MCP_LETTER_MODE        Server mode\n")
		fmt.Fprintf(os.Stderr, "  MCP_LETTER_HOST        Server host\n")
		fmt.Fprintf(os.Stderr, "  MCP_LETTER_PORT        Server port\n")
		fmt.Fprintf(os.Stderr, "  MCP_LETTER_DIR         Letters directory\n")
		fmt.Fprintf(os.Stderr, "  MCP_LETTER_DB          Audit database path\n")
		fmt.Fprintf(os.Stderr, "  MCP_LETTER_CACHESIZE   LRU cache capacity\n")
		fmt.Fprintf(os.Stderr, "  MCP_LETTER_AUDIT       Enable the audit ledger\n")
		fmt.Fprintf(os.Stderr, "  MCP_LETTER_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  MCP_LETTER_MAXFILESIZE Maximum file size\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.LettersDirectory = viper.GetString("dir")
	cfg.DatabasePath = viper.GetString("db")
	cfg.CacheSize = viper.GetInt("cachesize")
	cfg.AuditEnabled = viper.GetBool("audit")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	// Validate letters directory
	if c.LettersDirectory == "" {
		return errors.New("letters directory cannot be empty")
	}

	// The directory may be a placeholder that gets created later, so a
	// missing path is fine. An existing path must be a directory.
	info, err := os.Stat(c.LettersDirectory)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return fmt.Errorf("cannot access letters directory %s: %w", c.LettersDirectory, err)
	case !info.IsDir():
		return fmt.Errorf("letters path is not a directory: %s", c.LettersDirectory)
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	// Validate cache size
	if c.CacheSize <= 0 {
		return errors.New("cache size must be positive")
	}

	// Auditing needs somewhere to write
	if c.AuditEnabled && c.DatabasePath == "" {
		return errors.New("audit requires a database path")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Mode: %s, Host: %s, Port: %d, LettersDirectory: %s, DatabasePath: %s, "+
			"CacheSize: %d, AuditEnabled: %t, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.LettersDirectory, c.DatabasePath,
		c.CacheSize, c.AuditEnabled, c.LogLevel, c.MaxFileSize)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

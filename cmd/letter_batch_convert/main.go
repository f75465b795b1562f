package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Drmastoi/issa-call-sub002/internal/config"
	"github.com/Drmastoi/issa-call-sub002/internal/letters"
)

var (
	sourceDir    = flag.String("dir", "", "Directory containing the letters to convert")
	outputDir    = flag.String("out", "", "Output directory (default: .txt sibling next to each letter)")
	auditDB      = flag.String("db", "", "SQLite audit ledger path (auditing off when empty)")
	outputFormat = flag.String("format", "text", "Output format: text, json")
	verbose      = flag.Bool("v", false, "Enable verbose output")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	directory := *sourceDir
	if directory == "" && flag.NArg() > 0 {
		directory = flag.Arg(0)
	}
	if directory == "" {
		fmt.Fprintf(os.Stderr, "Error: letters directory required\n\n")
		printUsage()
		os.Exit(1)
	}

	absDir, err := filepath.Abs(directory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot resolve directory: %v\n", err)
		os.Exit(1)
	}
	info, err := os.Stat(absDir)
	if os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: directory not found: %s\n", absDir)
		os.Exit(1)
	}
	if err == nil && !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: not a directory: %s\n", absDir)
		os.Exit(1)
	}

	letterService, err := letters.NewService(letters.ServiceConfig{
		MaxFileSize:      config.DefaultMaxFileSize,
		LettersDirectory: absDir,
		DatabasePath:     *auditDB,
		CacheSize:        config.DefaultCacheSize,
		AuditEnabled:     *auditDB != "",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create letter service: %v\n", err)
		os.Exit(1)
	}
	defer letterService.Close()

	if *verbose {
		fmt.Printf("🔍 Converting letters in: %s\n", absDir)
		if *outputDir != "" {
			fmt.Printf("📁 Output directory: %s\n", *outputDir)
		}
		fmt.Println()
	}

	result, err := convertDirectory(letterService, absDir, *outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: batch conversion failed: %v\n", err)
		os.Exit(1)
	}

	if err := outputResults(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot output results: %v\n", err)
		os.Exit(1)
	}

	if *auditDB != "" && *outputFormat == "text" {
		printAuditSummary(letterService)
	}

	if result.Failed > 0 {
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Letter Batch Convert - Convert a directory of clinical letters to plain text")
	fmt.Println()
	fmt.Println("Converts every supported letter (RTF, PDF, HTML, plain text) found under a")
	fmt.Println("directory into a .txt file, either next to the source letter or into a")
	fmt.Println("separate output tree. RTF letters go through the structured converter with")
	fmt.Println("a markup-stripping fallback for malformed documents.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -dir       Directory containing the letters to convert")
	fmt.Println("  -out       Output directory; the source tree structure is preserved")
	fmt.Println("             (default: write a .txt sibling next to each letter)")
	fmt.Println("  -db        Record every conversion in a SQLite audit ledger at this path")
	fmt.Println("  -format    Output format: text (default), json")
	fmt.Println("  -v         Enable verbose output")
	fmt.Println("  -help      Show this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  letter_batch_convert -dir /data/letters")
	fmt.Println("  letter_batch_convert -dir /data/letters -out /data/letters-txt")
	fmt.Println("  letter_batch_convert -dir /data/letters -db /data/letters_audit.db -v")
	fmt.Println("  letter_batch_convert -format json /data/letters")
	fmt.Println()
	fmt.Println("EXIT STATUS:")
	fmt.Println("  0 when every letter converted (or was skipped), 1 when any letter failed")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  letter_batch_convert [OPTIONS] [-dir] <letters_directory>")
}

// BatchResult represents the outcome of a whole-directory conversion
type BatchResult struct {
	Directory string           `json:"directory"`
	OutputDir string           `json:"output_dir,omitempty"`
	Converted int              `json:"converted"`
	Skipped   int              `json:"skipped"`
	Failed    int              `json:"failed"`
	Files     []FileConversion `json:"files"`
}

// FileConversion represents the outcome for a single letter
type FileConversion struct {
	Source    string `json:"source"`
	Output    string `json:"output,omitempty"`
	Status    string `json:"status"` // converted, skipped, failed
	Strategy  string `json:"strategy,omitempty"`
	CharCount int    `json:"char_count,omitempty"`
	Error     string `json:"error,omitempty"`
}

func convertDirectory(letterService *letters.Service, directory, outDir string) (*BatchResult, error) {
	search, err := letterService.LetterSearchDirectory(letters.LetterSearchDirectoryRequest{
		Directory: directory,
	})
	if err != nil {
		return nil, err
	}

	result := &BatchResult{
		Directory: directory,
		OutputDir: outDir,
		Files:     []FileConversion{},
	}

	for _, file := range search.Files {
		entry := FileConversion{Source: file.Path}

		outPath, err := outputPathFor(directory, outDir, file.Path)
		if err != nil {
			entry.Status = "failed"
			entry.Error = err.Error()
			result.Failed++
			result.Files = append(result.Files, entry)
			continue
		}
		entry.Output = outPath

		// A .txt letter converted in place would overwrite itself
		if outPath == file.Path {
			entry.Status = "skipped"
			entry.Error = "output would overwrite the source"
			result.Skipped++
			result.Files = append(result.Files, entry)
			continue
		}

		read, err := letterService.LetterReadFile(letters.LetterReadFileRequest{Path: file.Path})
		if err != nil {
			entry.Status = "failed"
			entry.Error = err.Error()
			result.Failed++
			result.Files = append(result.Files, entry)
			continue
		}

		if err := writeConverted(outPath, outDir, read.Content); err != nil {
			entry.Status = "failed"
			entry.Error = err.Error()
			result.Failed++
			result.Files = append(result.Files, entry)
			continue
		}

		entry.Status = "converted"
		entry.Strategy = read.Strategy
		entry.CharCount = read.CharCount
		result.Converted++
		result.Files = append(result.Files, entry)
	}

	return result, nil
}

// outputPathFor computes the .txt destination for a letter. Without an output
// directory the .txt lands next to the source letter; with one, the source
// tree structure is preserved underneath it.
func outputPathFor(directory, outDir, sourcePath string) (string, error) {
	txtName := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + ".txt"
	if outDir == "" {
		return txtName, nil
	}

	rel, err := filepath.Rel(directory, txtName)
	if err != nil {
		return "", fmt.Errorf("cannot relativize %s: %w", sourcePath, err)
	}
	return filepath.Join(outDir, rel), nil
}

func writeConverted(outPath, outDir, content string) error {
	if outDir != "" {
		if err := os.MkdirAll(filepath.Dir(outPath), config.DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("cannot write output file: %w", err)
	}
	return nil
}

func outputResults(result *BatchResult) error {
	switch *outputFormat {
	case "json":
		return outputJSON(result)
	case "text":
		return outputText(result)
	default:
		return fmt.Errorf("unsupported output format: %s", *outputFormat)
	}
}

func outputJSON(result *BatchResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(result *BatchResult) error {
	if len(result.Files) == 0 {
		fmt.Printf("⚠️  No letter files found in %s\n", result.Directory)
		return nil
	}

	for _, file := range result.Files {
		switch file.Status {
		case "converted":
			if file.Strategy != "" {
				fmt.Printf("✅ %s → %s (%s, %d chars)\n", file.Source, file.Output, file.Strategy, file.CharCount)
			} else {
				fmt.Printf("✅ %s → %s (%d chars)\n", file.Source, file.Output, file.CharCount)
			}
		case "skipped":
			fmt.Printf("⚠️  %s skipped: %s\n", file.Source, file.Error)
		case "failed":
			fmt.Printf("❌ %s failed: %s\n", file.Source, file.Error)
		}
	}

	fmt.Println()
	fmt.Println("📊 BATCH SUMMARY")
	fmt.Printf("Directory: %s\n", result.Directory)
	if result.OutputDir != "" {
		fmt.Printf("Output directory: %s\n", result.OutputDir)
	}
	fmt.Printf("Converted: %d\n", result.Converted)
	fmt.Printf("Skipped: %d\n", result.Skipped)
	fmt.Printf("Failed: %d\n", result.Failed)

	return nil
}

func printAuditSummary(letterService *letters.Service) {
	summary, err := letterService.AuditSummary(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot read audit ledger: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("📋 AUDIT LEDGER")
	fmt.Printf("Recorded conversions: %d\n", summary.TotalConversions)
	fmt.Printf("Total characters: %d\n", summary.TotalCharacters)

	if len(summary.CountByStrategy) > 0 {
		strategies := make([]string, 0, len(summary.CountByStrategy))
		for strategy := range summary.CountByStrategy {
			strategies = append(strategies, strategy)
		}
		sort.Strings(strategies)
		fmt.Println("By strategy:")
		for _, strategy := range strategies {
			fmt.Printf("  %s: %d\n", strategy, summary.CountByStrategy[strategy])
		}
	}

	if len(summary.CountByFormat) > 0 {
		formats := make([]string, 0, len(summary.CountByFormat))
		for format := range summary.CountByFormat {
			formats = append(formats, format)
		}
		sort.Strings(formats)
		fmt.Println("By format:")
		for _, format := range formats {
			fmt.Printf("  %s: %d\n", format, summary.CountByFormat[format])
		}
	}
}

func init() {
	// Custom flag usage
	flag.Usage = func() {
		printHelp()
	}
}

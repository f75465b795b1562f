package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Basic Tools
	LetterReadFileDescription = `Extract readable plain text from clinical letter files.

**When to use:** Need the actual text of a letter (RTF, PDF, HTML or TXT) for review, analysis, or downstream processing.

**Why it's useful:** Handles word-processor RTF markup, PDF page extraction and HTML tags automatically, returning clean text with a conversion strategy report for RTF input.

**Examples:**
• Read a discharge summary: "Get the text of discharge-letter-2024.rtf for clinical coding"
• Process a referral: "Read referral-jones.pdf to extract the reason for referral"
• Review correspondence: "Get clean text from clinic-letter.html for the patient record"

**Common workflows:**
1. Review & Coding: Read letter → Identify diagnoses → Record codes
2. Correspondence Processing: Read letter → Extract key fields → Feed to downstream systems
3. Migration: Read legacy RTF letters → Store plain text → Index for search

**Best practices:** Validate the file first, then check the 'strategy' field for RTF input: "structured" means full parsing, "fallback" means markup was stripped after a parse fault.`

	LetterConvertTextDescription = `Convert raw RTF content that is already in memory to plain text.

**When to use:** The RTF document arrives inline, for example from a database column or a message payload, rather than as a file on disk.

**Why it's useful:** Same conversion engine as letter_read_file without touching the filesystem; non-RTF content passes through unchanged so callers do not need to pre-check.

**Examples:**
• Database export: "Convert the RTF body stored in the correspondence table to plain text"
• Message processing: "Convert this RTF payload from the integration engine before analysis"
• Quick checks: "Convert this pasted RTF fragment to see what it says"

**Common workflows:**
1. Database Migration: Query RTF columns → Convert each → Store plain text
2. Integration: Receive RTF payload → Convert → Route plain text onwards
3. Ad-hoc Review: Paste RTF content → Convert → Read the result

**Best practices:** Content without an RTF signature is returned unchanged with strategy "passthrough"; check char_count to confirm a non-trivial result.`

	LetterValidateFileDescription = `Verify letter file integrity and readability before processing.

**When to use:** Before attempting to read any letter file, especially in automated workflows or when handling files from external systems.

**Why it's useful:** Catches unsupported formats, empty files, oversized files, RTF documents with broken group structure, and unparseable PDFs before they cause processing errors.

**Examples:**
• Batch safety: "Validate all letters in /clinic-letters/ before bulk conversion"
• Intake check: "Check received-referral.rtf is valid before importing it"
• Quality control: "Verify exported-letter.pdf is readable before filing it"

**Common workflows:**
1. Automated Processing: Validate → Convert if valid → Handle failures gracefully
2. Intake Pipeline: Validate → Report issues → Quarantine bad files
3. Pre-processing: Validate → Route to the right handler per format

**Best practices:** The result carries valid plus a message describing the problem; a missing RTF signature or unbalanced groups are reported with byte positions where known.`

	LetterStatsFileDescription = `Get metadata and conversion statistics about a single letter file.

**When to use:** Need file size, modification time, PDF page counts, or RTF conversion detail before deciding how to process a letter.

**Why it's useful:** For RTF letters it reports the conversion strategy, group count and resulting text length without returning the full content; for PDFs it counts pages with relaxed validation.

**Examples:**
• Processing decisions: "Check the page count of scanned-letter.pdf before extraction"
• Conversion insight: "See whether legacy-letter.rtf parses structurally or needs fallback"
• Filing: "Get the modification date of clinic-letter.rtf for the audit record"

**Common workflows:**
1. Triage: Get stats → Choose processing path → Convert
2. Audit: Collect stats → Record metadata → File the letter
3. Capacity Planning: Sample stats → Estimate batch effort → Schedule conversion

**Best practices:** Cheaper than a full read when only metadata is needed; group_count grows with document complexity and is a good proxy for markup density.`

	// Search and Discovery Tools
	LetterSearchDirectoryDescription = `Discover and filter letter files across directories with fuzzy search.

**When to use:** Need to find specific letters by name, explore a correspondence directory, or build a file inventory.

**Why it's useful:** Locates RTF, PDF, HTML and TXT letters without manual browsing, with word-based fuzzy matching for partial names.

**Examples:**
• Find discharges: "Search /letters/ for files matching 'discharge 2024'"
• Locate a patient's letters: "Find files containing 'jones' in the clinic directory"
• Inventory: "List all letters in /archive/ to scope a migration"

**Common workflows:**
1. Targeted Processing: Search by pattern → Validate matches → Convert in sequence
2. Discovery: Explore directory → Review formats found → Plan extraction
3. Batch Operations: Find files → Filter by query → Process the matches

**Best practices:** Queries match whole filenames and individual words, so 'letter discharge' finds discharge_letter.rtf; leave the directory empty to use the configured default.`

	LetterStatsDirectoryDescription = `Analyze a letters directory and get collection statistics.

**When to use:** Need an overview of letter counts, per-format breakdown, storage usage, or the largest and smallest files before bulk work.

**Why it's useful:** Summarizes a whole directory in one call, including counts per format (rtf, pdf, html, txt), which shows how much RTF conversion a migration will involve.

**Examples:**
• Migration scoping: "Analyze /legacy-letters/ to see how many RTF files need converting"
• Storage review: "Check /archive/ statistics to find unusually large scans"
• Planning: "Get /clinic-letters/ stats to estimate batch processing time"

**Common workflows:**
1. Migration Planning: Get directory stats → Estimate conversion effort → Plan batches
2. Storage Management: Review sizes → Identify outliers → Archive or compress
3. Monitoring: Collect stats over time → Track growth → Plan capacity

**Best practices:** Run before any bulk conversion; count_by_format tells you which handlers the batch will exercise.`

	// Utility Tools
	LetterServerInfoDescription = `Get server status, available tools, cache statistics and usage guidance.

**When to use:** Starting work with the letter server, troubleshooting issues, or checking configuration and directory contents.

**Why it's useful:** Provides the configured letters directory, file size limits, supported formats, conversion cache statistics and a guide to every tool in one call.

**Examples:**
• Session start: "Check server info to see the configured directory and limits"
• Troubleshooting: "Verify the server sees the letters directory before searching"
• Discovery: "List all available tools and when to use each"

**Common workflows:**
1. Session Startup: Check server info → Verify directory → Plan the approach
2. Debugging: Review configuration → Check directory contents → Verify limits
3. Monitoring: Read cache statistics → Confirm hit rate → Tune cache size

**Best practices:** Run first in a new session; the directory listing is capped at 100 files so use letter_search_directory for full inventories.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"letter_read_file":        LetterReadFileDescription,
	"letter_convert_text":     LetterConvertTextDescription,
	"letter_validate_file":    LetterValidateFileDescription,
	"letter_stats_file":       LetterStatsFileDescription,
	"letter_search_directory": LetterSearchDirectoryDescription,
	"letter_stats_directory":  LetterStatsDirectoryDescription,
	"letter_server_info":      LetterServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}

package rtf

import (
	"regexp"
	"strings"
)

var (
	trailingBeforeNewline = regexp.MustCompile(`[ \t]+\n`)
	leadingAfterNewline   = regexp.MustCompile(`\n[ \t]+`)
	excessNewlines        = regexp.MustCompile(`\n{4,}`)
	excessTabs            = regexp.MustCompile(`\t{3,}`)
	excessSpaces          = regexp.MustCompile(` {3,}`)
)

// Normalize collapses the excess whitespace that section markers and empty
// table cells leave behind, producing readable plain text. The transform is
// idempotent: applying it to its own output changes nothing.
//
// Horizontal whitespace touching a newline is stripped before newline runs
// are collapsed, so lines that are blank apart from spaces or tabs count
// toward the run they sit in.
func Normalize(text string) string {
	// Fold CRLF and lone CR line endings down to a single line-feed form.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = trailingBeforeNewline.ReplaceAllString(text, "\n")
	text = leadingAfterNewline.ReplaceAllString(text, "\n")

	// At most two consecutive blank lines survive; empty table rows and
	// stacked section breaks otherwise produce unbounded vertical space.
	text = excessNewlines.ReplaceAllString(text, "\n\n\n")
	text = excessTabs.ReplaceAllString(text, "\t\t")
	text = excessSpaces.ReplaceAllString(text, "  ")

	return strings.TrimSpace(text)
}

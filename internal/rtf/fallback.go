package rtf

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	implicitPars     = regexp.MustCompile(`\\\r\n|\\\r|\\\n`)
	fallbackUnicode  = regexp.MustCompile(`\\u(-?[0-9]+)\??`)
	fallbackHex      = regexp.MustCompile(`\\'[0-9a-fA-F]{2}`)
	fallbackBreaks   = regexp.MustCompile(`\\(par|line|row)\b`)
	fallbackSections = regexp.MustCompile(`\\(sect|page)\b`)
	fallbackTabs     = regexp.MustCompile(`\\(tab|cell)\b`)
	fallbackControls = regexp.MustCompile(`\\[a-zA-Z]+-?[0-9]* ?`)
	fallbackSymbols  = regexp.MustCompile(`\\[^a-zA-Z]`)
)

// FallbackExtract recovers text from a document the structured pipeline
// could not process. It applies the pipeline's conceptual transforms
// (unicode and hex decoding, paragraph and tab markers, brace stripping) by
// direct pattern substitution with no group stack, so content of skipped
// destinations and stray formatting fragments can leak into the result. It
// always terminates and always returns a string.
func FallbackExtract(raw string) string {
	// Rewrite backslash-newline pairs as explicit \par before the bare
	// line terminators, which are formatting artifacts, are removed.
	text := implicitPars.ReplaceAllString(raw, `\par `)
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\n", "")

	text = fallbackUnicode.ReplaceAllStringFunc(text, decodeUnicodeMatch)
	text = fallbackHex.ReplaceAllStringFunc(text, decodeHexMatch)

	text = fallbackBreaks.ReplaceAllString(text, "\n")
	text = fallbackSections.ReplaceAllString(text, "\n\n")
	text = fallbackTabs.ReplaceAllString(text, "\t")

	text = fallbackControls.ReplaceAllString(text, "")
	text = fallbackSymbols.ReplaceAllString(text, "")

	text = strings.ReplaceAll(text, "{", "")
	text = strings.ReplaceAll(text, "}", "")

	return Normalize(text)
}

// decodeUnicodeMatch resolves one matched \uN escape, including the
// trailing placeholder when present. Out-of-range parameters drop the
// escape rather than emitting garbage.
func decodeUnicodeMatch(match string) string {
	digits := strings.TrimSuffix(match[2:], "?")
	value, err := strconv.Atoi(digits)
	if err != nil {
		return ""
	}
	if value < 0 {
		value += 65536
	}
	return string(rune(value))
}

// decodeHexMatch resolves one matched \'XX escape through the codepage
// table.
func decodeHexMatch(match string) string {
	b, err := strconv.ParseInt(match[2:], 16, 32)
	if err != nil {
		return ""
	}
	return string(decodeByte(int(b)))
}

// Package rtf extracts plain text from Rich Text Format documents.
//
// The input is untrusted legacy correspondence produced by varied word
// processors and may be arbitrarily malformed. Conversion runs a structured
// pipeline of three stages: Tokenize scans the raw character stream into
// typed tokens, Interpret walks the token stream while suppressing
// non-content destination groups, and Normalize collapses leftover
// whitespace into readable text. If the structured pipeline faults,
// FallbackExtract recovers a lossy approximation by direct pattern
// substitution. Convert therefore always returns a string and never
// panics, whatever the input.
//
// Everything is flattened to a linear text stream: styling, layout, table
// structure, images and embedded objects are not reconstructed.
package rtf

import (
	"fmt"
	"strings"
)

// Strategy identifies which conversion path produced a result.
type Strategy string

const (
	// StrategyPassthrough means the input did not carry the RTF signature
	// and was returned unchanged.
	StrategyPassthrough Strategy = "passthrough"
	// StrategyStructured means the tokenize/interpret/normalize pipeline
	// produced the result.
	StrategyStructured Strategy = "structured"
	// StrategyFallback means the structured pipeline faulted and the
	// regex-based extractor produced the result.
	StrategyFallback Strategy = "fallback"
)

// signature is the prefix every RTF document begins with.
const signature = `{\rtf`

// Convert extracts plain text from an RTF document. Input whose trimmed
// form does not begin with the RTF signature is treated as already-plain
// text and returned unchanged. Convert never panics and never returns an
// error: worst case is degraded fidelity from the fallback extractor, not
// a failure.
func Convert(document string) string {
	text, _ := ConvertDetail(document)
	return text
}

// ConvertDetail behaves like Convert and additionally reports the strategy
// that produced the result, for callers that record conversion outcomes.
func ConvertDetail(document string) (string, Strategy) {
	if !strings.HasPrefix(strings.TrimSpace(document), signature) {
		return document, StrategyPassthrough
	}
	text, err := structuredConvert(document)
	if err != nil {
		return FallbackExtract(document), StrategyFallback
	}
	return text, StrategyStructured
}

// IsRTF reports whether the trimmed document begins with the RTF
// signature.
func IsRTF(document string) bool {
	return strings.HasPrefix(strings.TrimSpace(document), signature)
}

// structuredConvert runs the full structured pipeline behind a recover
// barrier. The stages tolerate malformed escapes and unbalanced groups
// locally; the barrier turns any unexpected panic into an error so the
// caller can fall through to the fallback strategy instead of propagating
// a fault.
func structuredConvert(document string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("structured conversion failed: %v", r)
		}
	}()
	return Normalize(Interpret(Tokenize(document))), nil
}

package rtf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackExtract(t *testing.T) {
	t.Run("StripsControlWordsAndBraces", func(t *testing.T) {
		got := FallbackExtract(`{\rtf1\ansi\pard Hello\par}`)
		assert.Equal(t, "Hello", got)
	})

	t.Run("DecodesEscapes", func(t *testing.T) {
		got := FallbackExtract(`{\rtf1 caf\'e9 \u8` + `211?x}`)
		assert.Equal(t, "café –x", got)
	})

	t.Run("NegativeUnicodeBiased", func(t *testing.T) {
		got := FallbackExtract(`\u-1?end`)
		assert.Equal(t, "￿end", got)
	})

	t.Run("ParagraphAndTabMarkers", func(t *testing.T) {
		got := FallbackExtract(`first\par second\tab third`)
		assert.Equal(t, "first\nsecond\t third", got)
	})

	t.Run("TableMarkers", func(t *testing.T) {
		got := FallbackExtract(`r1\cell r2\cell\row`)
		assert.Equal(t, "r1\t r2", got)
	})

	t.Run("ParameterSuffixNotLeaked", func(t *testing.T) {
		// \pard must not leave a stray d behind when \par is rewritten.
		got := FallbackExtract(`\pard\fs24 Clinic letter\par`)
		assert.Equal(t, "Clinic letter", got)
	})

	t.Run("ImplicitParFromBackslashNewline", func(t *testing.T) {
		got := FallbackExtract("one\\\r\ntwo")
		assert.Equal(t, "one\ntwo", got)
	})

	t.Run("BareLineBreaksRemoved", func(t *testing.T) {
		got := FallbackExtract("wrap\r\nped line")
		assert.Equal(t, "wrapped line", got)
	})

	t.Run("DeepNestingFullyUnwrapped", func(t *testing.T) {
		input := strings.Repeat("{", 5000) + "center" + strings.Repeat("}", 5000)
		got := FallbackExtract(input)
		assert.Equal(t, "center", got)
	})

	t.Run("NeverPanics", func(t *testing.T) {
		inputs := []string{
			"",
			`\`,
			`\'`,
			`\u`,
			`\u-`,
			"\x00\x01\xfe\xff",
			strings.Repeat(`\'zz`, 1000),
			strings.Repeat("{", 100000),
			`{\rtf1` + strings.Repeat(`\u-99999999999999999999?`, 100),
		}
		for _, input := range inputs {
			assert.NotPanics(t, func() {
				_ = FallbackExtract(input)
			}, "input %q", input)
		}
	})
}

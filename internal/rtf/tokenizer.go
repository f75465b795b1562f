package rtf

// maxParamDigits bounds the digits accumulated into a control-word
// parameter. Further digits are consumed but ignored so adversarial inputs
// cannot overflow the parameter value.
const maxParamDigits = 9

// Tokenize scans a raw RTF document into a flat token stream. It never
// fails: malformed escape sequences degrade to literal text or are dropped,
// and scanning truncates silently at end of input.
func Tokenize(raw string) []Token {
	tokens := make([]Token, 0, len(raw)/4+1)
	pos := 0
	for pos < len(raw) {
		switch raw[pos] {
		case '{':
			tokens = append(tokens, Token{Type: TokenGroupStart})
			pos++
		case '}':
			tokens = append(tokens, Token{Type: TokenGroupEnd})
			pos++
		case '\\':
			pos = scanEscape(raw, pos, &tokens)
		case '\r', '\n':
			// Raw line breaks in the source are formatting artifacts, not
			// content; only \par and \line convey paragraph breaks.
			pos++
		default:
			start := pos
			for pos < len(raw) && !isStructural(raw[pos]) {
				pos++
			}
			tokens = append(tokens, textToken(raw[start:pos]))
		}
	}
	return tokens
}

// isStructural reports whether a byte terminates a literal text run.
func isStructural(c byte) bool {
	return c == '{' || c == '}' || c == '\\' || c == '\r' || c == '\n'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// scanEscape handles a backslash at raw[pos] and returns the position after
// the consumed sequence.
func scanEscape(raw string, pos int, tokens *[]Token) int {
	next := pos + 1
	if next >= len(raw) {
		// Trailing backslash, nothing to emit.
		return len(raw)
	}
	switch c := raw[next]; {
	case c == 'u' && next+1 < len(raw) && (isDigit(raw[next+1]) || raw[next+1] == '-'):
		return scanUnicodeEscape(raw, next+1, tokens)
	case c == '\'':
		return scanHexEscape(raw, next+1, tokens)
	case c == '\\' || c == '{' || c == '}':
		*tokens = append(*tokens, textToken(string(c)))
		return next + 1
	case c == '\r':
		// A backslash before a line terminator is an implicit \par.
		end := next + 1
		if end < len(raw) && raw[end] == '\n' {
			end++
		}
		*tokens = append(*tokens, controlToken("par"))
		return end
	case c == '\n':
		*tokens = append(*tokens, controlToken("par"))
		return next + 1
	case isLetter(c):
		return scanControlWord(raw, next, tokens)
	default:
		// Control symbol such as \~, \- or \*.
		*tokens = append(*tokens, controlToken(string(c)))
		return next + 1
	}
}

// scanUnicodeEscape consumes the signed decimal code point of a \uN escape
// starting at raw[pos]. Negative values follow the 16-bit signed convention
// and are biased by +65536. A single trailing '?' placeholder, emitted by
// writers as the fallback character for non-unicode readers, is consumed
// and discarded so it is not duplicated into the output.
func scanUnicodeEscape(raw string, pos int, tokens *[]Token) int {
	neg := false
	if raw[pos] == '-' {
		neg = true
		pos++
	}
	value := 0
	digits := 0
	for pos < len(raw) && isDigit(raw[pos]) {
		if digits < maxParamDigits {
			value = value*10 + int(raw[pos]-'0')
		}
		digits++
		pos++
	}
	if digits == 0 {
		// \u- with no digits, drop the escape.
		return pos
	}
	if neg {
		value = -value
	}
	if value < 0 {
		value += 65536
	}
	*tokens = append(*tokens, unicodeToken(rune(value), value))
	if pos < len(raw) && raw[pos] == '?' {
		pos++
	}
	return pos
}

// scanHexEscape consumes the two hex digits of a \'XX escape starting at
// raw[pos] and resolves the byte through the codepage table. Malformed
// pairs are dropped without emitting a token.
func scanHexEscape(raw string, pos int, tokens *[]Token) int {
	if pos+1 >= len(raw) {
		// Truncated escape at end of input.
		return len(raw)
	}
	hi := hexValue(raw[pos])
	lo := hexValue(raw[pos+1])
	if hi < 0 || lo < 0 {
		return pos + 2
	}
	b := hi<<4 | lo
	*tokens = append(*tokens, hexToken(decodeByte(b), b))
	return pos + 2
}

// scanControlWord consumes a control word starting at the letter raw[pos]:
// a maximal run of letters, an optional signed decimal parameter, and one
// delimiting space. The space belongs to the control word and is consumed,
// not emitted.
func scanControlWord(raw string, pos int, tokens *[]Token) int {
	start := pos
	for pos < len(raw) && isLetter(raw[pos]) {
		pos++
	}
	name := raw[start:pos]

	hasParam := false
	param := 0
	if pos < len(raw) && (isDigit(raw[pos]) || (raw[pos] == '-' && pos+1 < len(raw) && isDigit(raw[pos+1]))) {
		neg := raw[pos] == '-'
		if neg {
			pos++
		}
		digits := 0
		for pos < len(raw) && isDigit(raw[pos]) {
			if digits < maxParamDigits {
				param = param*10 + int(raw[pos]-'0')
			}
			digits++
			pos++
		}
		if neg {
			param = -param
		}
		hasParam = true
	}

	if pos < len(raw) && raw[pos] == ' ' {
		pos++
	}

	if hasParam {
		*tokens = append(*tokens, controlParamToken(name, param))
	} else {
		*tokens = append(*tokens, controlToken(name))
	}
	return pos
}

package rtf

// TokenType identifies the kind of a scanned RTF token
type TokenType int

const (
	// TokenGroupStart is an opening brace beginning a nested group
	TokenGroupStart TokenType = iota
	// TokenGroupEnd is a closing brace ending the innermost group
	TokenGroupEnd
	// TokenControl is a control word or control symbol, with an optional
	// signed decimal parameter
	TokenControl
	// TokenText is a maximal run of literal document characters
	TokenText
	// TokenHex is a \'XX escape resolved through the codepage table
	TokenHex
	// TokenUnicode is a \uN escape resolved to a Unicode scalar value
	TokenUnicode
)

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	switch t {
	case TokenGroupStart:
		return "GroupStart"
	case TokenGroupEnd:
		return "GroupEnd"
	case TokenControl:
		return "Control"
	case TokenText:
		return "Text"
	case TokenHex:
		return "Hex"
	case TokenUnicode:
		return "Unicode"
	default:
		return "Unknown"
	}
}

// Token is one element of the scanned token stream. Tokens are immutable
// once produced; the tokenizer never backtracks past a produced token.
//
// The populated fields depend on Type:
//   - TokenControl: Name, plus Param when HasParam is true
//   - TokenText: Text
//   - TokenHex: Text (resolved character) and Code (original byte value)
//   - TokenUnicode: Text (resolved character) and Code (original code point)
//   - TokenGroupStart / TokenGroupEnd: no payload
type Token struct {
	Type     TokenType
	Text     string
	Name     string
	Param    int
	HasParam bool
	Code     int
}

func textToken(value string) Token {
	return Token{Type: TokenText, Text: value}
}

func controlToken(name string) Token {
	return Token{Type: TokenControl, Name: name}
}

func controlParamToken(name string, param int) Token {
	return Token{Type: TokenControl, Name: name, Param: param, HasParam: true}
}

func hexToken(value rune, byteCode int) Token {
	return Token{Type: TokenHex, Text: string(value), Code: byteCode}
}

func unicodeToken(value rune, codePoint int) Token {
	return Token{Type: TokenUnicode, Text: string(value), Code: codePoint}
}

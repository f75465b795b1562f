package rtf

import "strings"

// groupState is one entry of the explicit group stack. skip marks the group
// as inside a suppressed destination; destination records which control word
// made it so.
type groupState struct {
	skip        bool
	destination string
}

// Interpret walks the token stream left to right, maintaining the group
// stack and skip depth, and returns the concatenated plain-text output of
// all content tokens in document order.
//
// The stack is array-backed rather than call-stack-based so deeply nested
// adversarial input cannot exhaust goroutine stack space. Unbalanced groups
// are tolerated: a GroupEnd with an empty stack is a no-op, and groups left
// open at end of input end with the stream.
func Interpret(tokens []Token) string {
	var out strings.Builder
	stack := make([]groupState, 0, 16)
	skipDepth := 0
	destinationPending := false

	for _, tok := range tokens {
		switch tok.Type {
		case TokenGroupStart:
			stack = append(stack, groupState{skip: skipDepth > 0})
			if skipDepth > 0 {
				// Nested groups inside a skipped destination stay skipped
				// even if they look like content.
				skipDepth++
			}
			destinationPending = false

		case TokenGroupEnd:
			if skipDepth > 0 {
				skipDepth--
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			destinationPending = false

		case TokenControl:
			if skipDepth > 0 {
				continue
			}
			switch {
			case tok.Name == "*":
				// The next control word names an optional destination.
				destinationPending = true
			case destinationPending || isSkipDestination(tok.Name):
				destinationPending = false
				if len(stack) > 0 {
					stack[len(stack)-1].skip = true
					stack[len(stack)-1].destination = tok.Name
					skipDepth = 1
				}
			default:
				destinationPending = false
				if literal, ok := controlOutputs[tok.Name]; ok {
					out.WriteString(literal)
				}
			}

		case TokenText, TokenHex, TokenUnicode:
			if skipDepth > 0 {
				continue
			}
			out.WriteString(tok.Text)
		}
	}

	return out.String()
}

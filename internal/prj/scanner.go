// Package prj parses the nested bracket text of .prj projection files into a
// read-only node tree with a breadth-first path index.
//
//	GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137,298.257223563]],...]
//
// Parsing is two stages: Scan turns the text into a flat token stream with an
// explicit bracket stack, and Parse builds the tree from the tokens.
package prj

import (
	"fmt"
	"strings"
)

// TokenKind identifies a scanner token.
type TokenKind int

const (
	TokenTag     TokenKind = iota // name before an opening bracket
	TokenOpen                     // '[' or '('
	TokenLiteral                  // attribute value, quotes removed
	TokenClose                    // ']' or ')'
)

func (k TokenKind) String() string {
	switch k {
	case TokenTag:
		return "Tag"
	case TokenOpen:
		return "Open"
	case TokenLiteral:
		return "Literal"
	case TokenClose:
		return "Close"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one scanned element.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}

// ParseError reports malformed projection text.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("prj: %s at offset %d", e.Msg, e.Offset)
}

func closerFor(open byte) byte {
	if open == '(' {
		return ')'
	}
	return ']'
}

// Scan tokenizes text in a single pass. Quoted strings may contain brackets
// and commas. Whitespace outside quotes, including line breaks, is
// insignificant except inside an unquoted value. Either bracket style is
// accepted but must be closed by its own kind.
func Scan(text string) ([]Token, error) {
	var (
		tokens []Token
		opens  []int // offsets of unclosed brackets
		word   strings.Builder
		wordAt = -1
	)

	flush := func() {
		if wordAt < 0 {
			return
		}
		tokens = append(tokens, Token{Kind: TokenLiteral, Text: strings.TrimSpace(word.String()), Offset: wordAt})
		word.Reset()
		wordAt = -1
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '"':
			if wordAt >= 0 {
				return nil, &ParseError{Offset: i, Msg: "quote inside unquoted value"}
			}
			lit, next, ok := quoted(text, i)
			if !ok {
				return nil, &ParseError{Offset: i, Msg: "unterminated quoted string"}
			}
			if len(opens) == 0 {
				return nil, &ParseError{Offset: i, Msg: "value outside brackets"}
			}
			tokens = append(tokens, Token{Kind: TokenLiteral, Text: lit, Offset: i})
			i = next - 1
		case '[', '(':
			name := strings.TrimSpace(word.String())
			if name == "" {
				return nil, &ParseError{Offset: i, Msg: "bracket without tag name"}
			}
			tokens = append(tokens,
				Token{Kind: TokenTag, Text: name, Offset: wordAt},
				Token{Kind: TokenOpen, Text: string(c), Offset: i})
			word.Reset()
			wordAt = -1
			opens = append(opens, i)
		case ']', ')':
			if len(opens) == 0 {
				return nil, &ParseError{Offset: i, Msg: fmt.Sprintf("unmatched %q", c)}
			}
			top := opens[len(opens)-1]
			if closerFor(text[top]) != c {
				return nil, &ParseError{Offset: i, Msg: fmt.Sprintf("%q closes %q opened at offset %d", c, text[top], top)}
			}
			flush()
			opens = opens[:len(opens)-1]
			tokens = append(tokens, Token{Kind: TokenClose, Text: string(c), Offset: i})
		case ',':
			if len(opens) == 0 && wordAt >= 0 {
				return nil, &ParseError{Offset: wordAt, Msg: "text outside brackets"}
			}
			flush()
		case ' ', '\t', '\n', '\r':
			if wordAt >= 0 {
				word.WriteByte(c)
			}
		default:
			if wordAt < 0 {
				wordAt = i
			}
			word.WriteByte(c)
		}
	}

	if len(opens) > 0 {
		top := opens[len(opens)-1]
		return nil, &ParseError{Offset: top, Msg: fmt.Sprintf("unmatched %q", text[top])}
	}
	if wordAt >= 0 {
		return nil, &ParseError{Offset: wordAt, Msg: "text outside brackets"}
	}
	return tokens, nil
}

// quoted reads the string starting at the quote at text[i]. A doubled quote
// stands for one literal quote. It returns the offset just past the closing
// quote.
func quoted(text string, i int) (string, int, bool) {
	var b strings.Builder
	for j := i + 1; j < len(text); j++ {
		if text[j] != '"' {
			b.WriteByte(text[j])
			continue
		}
		if j+1 < len(text) && text[j+1] == '"' {
			b.WriteByte('"')
			j++
			continue
		}
		return b.String(), j + 1, true
	}
	return "", 0, false
}

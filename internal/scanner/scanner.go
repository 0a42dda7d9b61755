// Package scanner converts XON source text into a flat sequence of tokens.
//
// Scanning is a single left-to-right pass with no backtracking. Whitespace
// and // line comments are skipped; every other character must start a
// structural token, a string, a number or an identifier.
package scanner

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mcncl/xon/internal/errors"
	"github.com/mcncl/xon/internal/token"
)

const (
	reasonUnexpected   = "unexpected character"
	reasonUnterminated = "unterminated string"
	reasonNumber       = "malformed number"
)

// scanner holds the cursor state for one Scan call
type scanner struct {
	src  string
	pos  int
	line int
	toks []token.Token
}

// Scan tokenizes src. It fails with *errors.LexError on the first character
// that starts no valid token.
func Scan(src string) ([]token.Token, error) {
	s := &scanner{src: src, line: 1}
	for {
		s.skipTrivia()
		if s.pos >= len(s.src) {
			return s.toks, nil
		}
		if err := s.next(); err != nil {
			return nil, err
		}
	}
}

func (s *scanner) skipTrivia() {
	for s.pos < len(s.src) {
		switch c := s.src[s.pos]; c {
		case '\n':
			s.line++
			s.pos++
		case ' ', '\t', '\r', '\v', '\f':
			s.pos++
		case '/':
			if s.pos+1 >= len(s.src) || s.src[s.pos+1] != '/' {
				return
			}
			// the newline itself is left for the loop to count
			end := strings.IndexByte(s.src[s.pos:], '\n')
			if end < 0 {
				s.pos = len(s.src)
				return
			}
			s.pos += end
		default:
			return
		}
	}
}

func (s *scanner) emit(tok token.Token) {
	tok.Line = s.line
	s.toks = append(s.toks, tok)
}

func (s *scanner) next() error {
	c := s.src[s.pos]
	switch c {
	case '{':
		s.punct(token.LBrace)
	case '}':
		s.punct(token.RBrace)
	case '[':
		s.punct(token.LBracket)
	case ']':
		s.punct(token.RBracket)
	case ':':
		s.punct(token.Colon)
	case ',':
		s.punct(token.Comma)
	case '"':
		return s.scanString()
	default:
		switch {
		case isDigit(c) || c == '-':
			return s.scanNumber()
		case isIdentStart(c):
			s.scanIdentifier()
		default:
			r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
			return &errors.LexError{Line: s.line, Char: r, Reason: reasonUnexpected}
		}
	}
	return nil
}

func (s *scanner) punct(kind token.Kind) {
	s.emit(token.Token{Kind: kind})
	s.pos++
}

func (s *scanner) scanString() error {
	startLine := s.line
	s.pos++ // opening quote

	var b strings.Builder
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch c {
		case '"':
			s.pos++
			s.toks = append(s.toks, token.Token{Kind: token.String, Text: b.String(), Line: startLine})
			return nil
		case '\\':
			if s.pos+1 >= len(s.src) {
				s.pos = len(s.src)
				continue
			}
			esc := s.src[s.pos+1]
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				// covers \" and \\ as well as unknown escapes, which keep
				// the escaped character verbatim
				if esc == '\n' {
					s.line++
				}
				b.WriteByte(esc)
			}
			s.pos += 2
		default:
			if c == '\n' {
				s.line++
			}
			b.WriteByte(c)
			s.pos++
		}
	}
	return &errors.LexError{Line: startLine, Char: '"', Reason: reasonUnterminated}
}

func (s *scanner) scanNumber() error {
	start := s.pos
	if s.src[s.pos] == '0' && s.pos+1 < len(s.src) && (s.src[s.pos+1] == 'x' || s.src[s.pos+1] == 'X') {
		return s.scanHex()
	}

	if s.src[s.pos] == '-' {
		s.pos++
	}
	for s.pos < len(s.src) && (isDigit(s.src[s.pos]) || s.src[s.pos] == '.') {
		s.pos++
	}

	lit := s.src[start:s.pos]
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsInf(v, 0) || !hasDigit(lit) {
		return &errors.LexError{Line: s.line, Char: rune(lit[0]), Reason: reasonNumber}
	}
	s.emit(token.Token{Kind: token.Number, Num: v})
	return nil
}

func (s *scanner) scanHex() error {
	s.pos += 2 // 0x
	start := s.pos
	for s.pos < len(s.src) && isHexDigit(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return &errors.LexError{Line: s.line, Char: '0', Reason: reasonNumber}
	}
	v, err := strconv.ParseUint(s.src[start:s.pos], 16, 64)
	if err != nil {
		return &errors.LexError{Line: s.line, Char: '0', Reason: reasonNumber}
	}
	s.emit(token.Token{Kind: token.Number, Num: float64(v)})
	return nil
}

func (s *scanner) scanIdentifier() {
	start := s.pos
	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
	switch word := s.src[start:s.pos]; word {
	case "true":
		s.emit(token.Token{Kind: token.Bool, Bool: true})
	case "false":
		s.emit(token.Token{Kind: token.Bool, Bool: false})
	case "null":
		s.emit(token.Token{Kind: token.Null})
	default:
		s.emit(token.Token{Kind: token.Identifier, Text: word})
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

func hasDigit(lit string) bool {
	return strings.IndexFunc(lit, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0
}

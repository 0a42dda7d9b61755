// Package token defines the lexical units produced by the scanner and
// consumed by the parser.
package token

import (
	"fmt"
	"strconv"
)

// Kind identifies the category of a token
type Kind int

const (
	// EOF never appears in a scanned sequence; the parser uses it to describe
	// running out of tokens.
	EOF Kind = iota
	LBrace
	RBrace
	LBracket
	RBracket
	Colon
	Comma
	String
	Number
	Bool
	Null
	Identifier
)

// String returns a short human readable name for the kind
func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case Colon:
		return "':'"
	case Comma:
		return "','"
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	case Null:
		return "null"
	case Identifier:
		return "identifier"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is a classified lexical unit.
//
// Only the payload field matching Kind is meaningful: Text for String and
// Identifier, Num for Number, Bool for Bool. Line is the 1-based line the
// token started on.
type Token struct {
	Kind Kind
	Text string
	Num  float64
	Bool bool
	Line int
}

// Describe renders the token for diagnostics, including its payload
func (t Token) Describe() string {
	switch t.Kind {
	case String:
		return fmt.Sprintf("string %q", t.Text)
	case Identifier:
		return fmt.Sprintf("identifier %q", t.Text)
	case Number:
		return "number " + strconv.FormatFloat(t.Num, 'f', -1, 64)
	case Bool:
		return "boolean " + strconv.FormatBool(t.Bool)
	default:
		return t.Kind.String()
	}
}

// IsStructural reports whether the kind is one of the punctuation tokens
func (k Kind) IsStructural() bool {
	return k >= LBrace && k <= Comma
}

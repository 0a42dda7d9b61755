// Package parser builds a XON syntax tree from a token sequence by
// recursive descent.
package parser

import (
	"github.com/mcncl/xon/internal/errors"
	"github.com/mcncl/xon/internal/models"
	"github.com/mcncl/xon/internal/token"
)

// DefaultMaxDepth bounds container nesting unless overridden with
// WithMaxDepth.
const DefaultMaxDepth = 1000

// Option configures a Parse call
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth sets the deepest allowed container nesting. A value of zero
// or less disables the check.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

type parser struct {
	toks     []token.Token
	pos      int
	maxDepth int
}

// Parse consumes tokens and returns the root node. The whole sequence must
// form exactly one value. Failures are *errors.ParseError or
// *errors.DepthError; no partial tree is returned.
func Parse(toks []token.Token, opts ...Option) (models.Node, error) {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	p := &parser{toks: toks, maxDepth: o.maxDepth}
	root, err := p.value(0)
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, &errors.ParseError{
			Line:     tok.Line,
			Expected: []string{token.EOF.String()},
			Found:    tok.Describe(),
		}
	}
	return root, nil
}

func (p *parser) peek() (token.Token, bool) {
	if p.pos >= len(p.toks) {
		return token.Token{}, false
	}
	return p.toks[p.pos], true
}

// lastLine is the line reported for errors at end of input
func (p *parser) lastLine() int {
	if len(p.toks) == 0 {
		return 1
	}
	return p.toks[len(p.toks)-1].Line
}

func (p *parser) fail(expected ...token.Kind) error {
	names := make([]string, len(expected))
	for i, k := range expected {
		names[i] = k.String()
	}
	tok, ok := p.peek()
	if !ok {
		return &errors.ParseError{Line: p.lastLine(), Expected: names, Found: token.EOF.String()}
	}
	return &errors.ParseError{Line: tok.Line, Expected: names, Found: tok.Describe()}
}

func (p *parser) expect(kind token.Kind) (token.Token, error) {
	tok, ok := p.peek()
	if !ok || tok.Kind != kind {
		return token.Token{}, p.fail(kind)
	}
	p.pos++
	return tok, nil
}

// value parses one value. depth counts the containers already open.
func (p *parser) value(depth int) (models.Node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.fail()
	}

	switch tok.Kind {
	case token.LBrace:
		return p.object(depth + 1)
	case token.LBracket:
		return p.list(depth + 1)
	case token.String, token.Identifier:
		p.pos++
		return &models.String{Value: tok.Text}, nil
	case token.Number:
		p.pos++
		return &models.Number{Value: tok.Num}, nil
	case token.Bool:
		p.pos++
		return &models.Bool{Value: tok.Bool}, nil
	case token.Null:
		p.pos++
		return &models.Null{}, nil
	default:
		return nil, p.fail()
	}
}

func (p *parser) checkDepth(depth int, open token.Token) error {
	if p.maxDepth > 0 && depth > p.maxDepth {
		return &errors.DepthError{Line: open.Line, Limit: p.maxDepth}
	}
	return nil
}

func (p *parser) object(depth int) (models.Node, error) {
	open, _ := p.expect(token.LBrace)
	if err := p.checkDepth(depth, open); err != nil {
		return nil, err
	}

	obj := &models.Object{}
	for {
		tok, ok := p.peek()
		if ok && tok.Kind == token.RBrace {
			p.pos++
			return obj, nil
		}
		if !ok || (tok.Kind != token.String && tok.Kind != token.Identifier) {
			return nil, p.fail(token.String, token.Identifier, token.RBrace)
		}
		p.pos++

		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		val, err := p.value(depth)
		if err != nil {
			return nil, err
		}
		obj.Pairs = append(obj.Pairs, models.Pair{Key: tok.Text, Value: val})

		if err := p.separator(token.RBrace); err != nil {
			return nil, err
		}
	}
}

func (p *parser) list(depth int) (models.Node, error) {
	open, _ := p.expect(token.LBracket)
	if err := p.checkDepth(depth, open); err != nil {
		return nil, err
	}

	list := &models.List{}
	for {
		if tok, ok := p.peek(); ok && tok.Kind == token.RBracket {
			p.pos++
			return list, nil
		}

		item, err := p.value(depth)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)

		if err := p.separator(token.RBracket); err != nil {
			return nil, err
		}
	}
}

// separator consumes an optional comma after an element. Without a comma the
// container must close next.
func (p *parser) separator(closer token.Kind) error {
	tok, ok := p.peek()
	switch {
	case ok && tok.Kind == token.Comma:
		p.pos++
		return nil
	case ok && tok.Kind == closer:
		return nil
	default:
		return p.fail(token.Comma, closer)
	}
}

// Package xon reads XON documents into plain Go values and writes them back.
//
// XON is JSON with line comments, unquoted keys, hexadecimal integers and
// trailing commas:
//
//	cfg, err := xon.Xonify("config.xon")
//	if err != nil {
//		return err
//	}
//	port, _ := cfg.(*xon.Object).Get("port")
//
// Objects keep their keys in source order. Numbers are always float64.
package xon

import (
	"context"

	"github.com/mcncl/xon/internal/loader"
	"github.com/mcncl/xon/internal/models"
	"github.com/mcncl/xon/internal/parser"
	"github.com/mcncl/xon/internal/printer"
)

// Value is nil, bool, float64, string, *Object or Array.
type Value = models.XONValue

// Object is an insertion-ordered string-keyed map.
type Object = models.XONObject

// Array is an ordered list of values.
type Array = models.XONArray

// Option configures parsing.
type Option = parser.Option

// DefaultMaxDepth is the nesting limit applied when no option overrides it.
const DefaultMaxDepth = parser.DefaultMaxDepth

// WithMaxDepth limits how deeply objects and lists may nest. Zero or a
// negative value removes the limit.
func WithMaxDepth(n int) Option {
	return parser.WithMaxDepth(n)
}

// NewObject returns an empty Object ready for Set.
func NewObject() *Object {
	return models.NewXONObject()
}

// Xonify parses the XON file at path.
func Xonify(path string, opts ...Option) (Value, error) {
	return XonifyContext(context.Background(), path, opts...)
}

// XonifyContext is Xonify with a context carrying a logr logger.
func XonifyContext(ctx context.Context, path string, opts ...Option) (Value, error) {
	return loader.ParseFileValue(ctx, path, opts...)
}

// XonifyString parses src as a XON document.
func XonifyString(src string, opts ...Option) (Value, error) {
	return loader.ParseStringValue(context.Background(), src, opts...)
}

// ParseFile is an alias for Xonify.
func ParseFile(path string, opts ...Option) (Value, error) {
	return Xonify(path, opts...)
}

// Parse is an alias for XonifyString.
func Parse(src string, opts ...Option) (Value, error) {
	return XonifyString(src, opts...)
}

// Format renders v as canonical XON text. Besides the types listed on Value
// it accepts Go ints, map[string]any and []any; anything else is an error.
func Format(v Value) (string, error) {
	return printer.FormatValue(v)
}

// Package loader reads XON from files, strings and readers, runs the scanner
// and parser over it, and wraps failures into application errors.
package loader

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/mcncl/xon/internal/errors"
	"github.com/mcncl/xon/internal/models"
	"github.com/mcncl/xon/internal/parser"
	"github.com/mcncl/xon/internal/scanner"
)

// ParseReader reads all of reader and parses it as one XON document
func ParseReader(ctx context.Context, reader io.Reader, opts ...parser.Option) (models.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read input", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return models.Document{}, errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	return parseSource(ctx, string(data), "", opts...)
}

// ParseString parses XON from a string
func ParseString(ctx context.Context, src string, opts ...parser.Option) (models.Document, error) {
	if strings.TrimSpace(src) == "" {
		return models.Document{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return parseSource(ctx, src, "", opts...)
}

// ParseFile parses XON from a file path
func ParseFile(ctx context.Context, filePath string, opts ...parser.Option) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return parseSource(ctx, string(data), filePath, opts...)
}

// ParseSource parses src that was already read from source, a file path used
// to name the input in errors.
func ParseSource(ctx context.Context, src, source string, opts ...parser.Option) (models.Document, error) {
	if strings.TrimSpace(src) == "" {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("%s is empty", sourceName(source)),
			errors.ErrFileEmpty,
		)
	}
	return parseSource(ctx, src, source, opts...)
}

// ParseStringValue parses src and projects the result onto runtime values.
func ParseStringValue(ctx context.Context, src string, opts ...parser.Option) (models.XONValue, error) {
	doc, err := ParseString(ctx, src, opts...)
	if err != nil {
		return nil, err
	}
	return models.ToValue(doc.Root), nil
}

// ParseFileValue parses the file at filePath and projects the result onto
// runtime values.
func ParseFileValue(ctx context.Context, filePath string, opts ...parser.Option) (models.XONValue, error) {
	doc, err := ParseFile(ctx, filePath, opts...)
	if err != nil {
		return nil, err
	}
	return models.ToValue(doc.Root), nil
}

func parseSource(ctx context.Context, src, source string, opts ...parser.Option) (models.Document, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("source", sourceName(source))

	toks, err := scanner.Scan(src)
	if err != nil {
		log.V(1).Info("scan failed", "error", err.Error())
		return models.Document{}, errors.NewLexError(fmt.Sprintf("failed to scan %s", sourceName(source)), err)
	}
	log.V(1).Info("scanned input", "bytes", len(src), "tokens", len(toks))

	root, err := parser.Parse(toks, opts...)
	if err != nil {
		log.V(1).Info("parse failed", "error", err.Error())
		var depthErr *errors.DepthError
		if stderrors.As(err, &depthErr) {
			return models.Document{}, errors.NewDepthError(fmt.Sprintf("failed to parse %s", sourceName(source)), err)
		}
		return models.Document{}, errors.NewParseError(fmt.Sprintf("failed to parse %s", sourceName(source)), err)
	}
	log.V(1).Info("parsed document", "rootKind", root.Kind().String())

	return models.Document{
		Root:         root,
		Source:       source,
		RootIsObject: root.Kind() == models.KindObject,
	}, nil
}

func sourceName(source string) string {
	if source == "" {
		return "input"
	}
	return fmt.Sprintf("'%s'", source)
}

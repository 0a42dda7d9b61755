package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/mcncl/xon/internal/errors"
	"github.com/mcncl/xon/internal/loader"
	"github.com/mcncl/xon/internal/models"
	"github.com/mcncl/xon/internal/printer"
	"github.com/mcncl/xon/internal/query"
)

const stdinName = "-"

// ParseCmd parses a document and prints it back
type ParseCmd struct {
	File string `arg:"" optional:"" default:"-" help:"XON file to parse, or - for stdin."`
	Dump bool   `help:"Print the parse tree instead of canonical text."`
}

// Run executes the parse command
func (c *ParseCmd) Run(rc *Context) error {
	doc, err := rc.load(c.File)
	if err != nil {
		return err
	}
	if c.Dump {
		return rc.write(printer.Dump(doc.Root))
	}
	return rc.write(printer.Format(doc.Root) + "\n")
}

// FmtCmd prints or rewrites files in canonical form
type FmtCmd struct {
	Files []string `arg:"" optional:"" help:"Files to format. Reads stdin when none are given."`
	Write bool     `short:"w" help:"Write the result back to each file instead of stdout."`
	Check bool     `short:"c" help:"List files that are not in canonical form and fail if there are any."`
}

// Run executes the fmt command
func (c *FmtCmd) Run(rc *Context) error {
	files := c.Files
	if len(files) == 0 {
		files = []string{stdinName}
	}
	write := c.Write || rc.Config.Format.Write
	check := c.Check || rc.Config.Format.CheckOnly
	log := logr.FromContextOrDiscard(rc.Ctx)

	var unformatted []string
	for _, file := range files {
		if file != stdinName && rc.Config.ShouldSkipFile(file) {
			log.V(1).Info("skipping excluded file", "file", file)
			continue
		}

		src, doc, err := rc.loadSource(file)
		if err != nil {
			return err
		}
		formatted := printer.Format(doc.Root) + "\n"

		switch {
		case check:
			if formatted != src {
				unformatted = append(unformatted, file)
				fmt.Fprintln(rc.Stdout, file)
			}
		case write && file != stdinName:
			if formatted == src {
				log.V(1).Info("already formatted", "file", file)
				continue
			}
			if err := os.WriteFile(file, []byte(formatted), 0644); err != nil {
				return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", file), err)
			}
			fmt.Fprintf(rc.Stderr, "Formatted %s\n", file)
		default:
			if err := rc.write(formatted); err != nil {
				return err
			}
		}
	}

	if len(unformatted) > 0 {
		return errors.NewFormatError(fmt.Sprintf("%d file(s) not in canonical form", len(unformatted)), nil)
	}
	return nil
}

// GetCmd prints the value at a dotted path
type GetCmd struct {
	File          string `arg:"" help:"XON file to read, or - for stdin."`
	Path          string `arg:"" help:"Dotted path such as server.port or features.0."`
	NormalizeKeys bool   `help:"Match keys written in another case style, so appName finds app_name."`
	Raw           bool   `short:"r" help:"Print strings without quotes."`
}

// Run executes the get command
func (c *GetCmd) Run(rc *Context) error {
	doc, err := rc.load(c.File)
	if err != nil {
		return err
	}

	opts := query.PathOptions{NormalizeKeys: c.NormalizeKeys || rc.Config.Query.NormalizeKeys}
	v, err := query.Resolve(models.ToValue(doc.Root), c.Path, opts)
	if err != nil {
		return errors.NewQueryError(fmt.Sprintf("cannot resolve '%s'", c.Path), err)
	}
	return rc.printValue(v, c.Raw)
}

// KeysCmd lists the top-level keys of an object document
type KeysCmd struct {
	File string `arg:"" help:"XON file to read, or - for stdin."`
}

// Run executes the keys command
func (c *KeysCmd) Run(rc *Context) error {
	doc, err := rc.load(c.File)
	if err != nil {
		return err
	}

	obj, ok := doc.Root.(*models.Object)
	if !ok {
		return errors.NewQueryError(fmt.Sprintf("document root is a %s, not an object", doc.Root.Kind()), nil)
	}

	var b strings.Builder
	for _, pair := range obj.Pairs {
		fmt.Fprintf(&b, "%-15s %s\n", pair.Key, summarize(pair.Value))
	}
	return rc.write(b.String())
}

// summarize describes a node on a single line
func summarize(node models.Node) string {
	switch n := node.(type) {
	case *models.String:
		return "string " + printer.Format(n)
	case *models.Number:
		return "number " + printer.FormatNumber(n.Value)
	case *models.Bool:
		return fmt.Sprintf("bool %t", n.Value)
	case *models.Null:
		return "null"
	case *models.List:
		return fmt.Sprintf("list (%d items)", n.Len())
	case *models.Object:
		return fmt.Sprintf("object (%d keys)", n.Len())
	default:
		panic(fmt.Sprintf("unknown node type %T", node))
	}
}

// EvalCmd evaluates a CEL expression against a document
type EvalCmd struct {
	File string `arg:"" help:"XON file to read, or - for stdin."`
	Expr string `arg:"" help:"CEL expression, or the name of one under query.expressions in the config file."`
	Raw  bool   `short:"r" help:"Print strings without quotes."`
}

// Run executes the eval command
func (c *EvalCmd) Run(rc *Context) error {
	expr := c.Expr
	if named, ok := rc.Config.FindExpression(c.Expr); ok {
		expr = named
	}

	env, err := query.NewEnv()
	if err != nil {
		return errors.NewQueryError("failed to create expression environment", err)
	}
	x, err := env.Compile(expr)
	if err != nil {
		return errors.NewQueryError(fmt.Sprintf("failed to compile '%s'", expr), err)
	}

	doc, err := rc.load(c.File)
	if err != nil {
		return err
	}
	v, err := x.Eval(rc.Ctx, models.ToValue(doc.Root))
	if err != nil {
		return errors.NewQueryError(fmt.Sprintf("failed to evaluate '%s'", expr), err)
	}
	return rc.printValue(v, c.Raw)
}

// CheckCmd parses files and reports every failure
type CheckCmd struct {
	Files []string `arg:"" help:"Files to check, or - for stdin."`
}

// Run executes the check command
func (c *CheckCmd) Run(rc *Context) error {
	checked, failed := 0, 0
	for _, file := range c.Files {
		if file != stdinName && rc.Config.ShouldSkipFile(file) {
			continue
		}
		checked++

		if _, err := rc.load(file); err != nil {
			failed++
			if line, ok := errors.LineOf(err); ok {
				fmt.Fprintf(rc.Stderr, "%s:%d: %s\n", file, line, errors.UserFriendlyError(err))
			} else {
				fmt.Fprintf(rc.Stderr, "%s: %s\n", file, errors.UserFriendlyError(err))
			}
			continue
		}
		fmt.Fprintf(rc.Stdout, "%s: ok\n", file)
	}

	if failed > 0 {
		return errors.NewParseError(fmt.Sprintf("%d of %d file(s) failed to parse", failed, checked), nil)
	}
	return nil
}

// load parses a file, or stdin when path is "-"
func (rc *Context) load(path string) (models.Document, error) {
	if path == stdinName {
		if err := rc.checkStdin(); err != nil {
			return models.Document{}, err
		}
		return loader.ParseReader(rc.Ctx, rc.Stdin, rc.Config.ParserOptions()...)
	}
	return loader.ParseFile(rc.Ctx, path, rc.Config.ParserOptions()...)
}

// loadSource is load for callers that also need the raw text
func (rc *Context) loadSource(path string) (string, models.Document, error) {
	var (
		data []byte
		err  error
		name string
	)
	if path == stdinName {
		if err := rc.checkStdin(); err != nil {
			return "", models.Document{}, err
		}
		data, err = io.ReadAll(rc.Stdin)
		if err != nil {
			return "", models.Document{}, errors.NewInputError("failed to read from stdin", err)
		}
	} else {
		name = path
		data, err = os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", models.Document{}, errors.NewInputError(fmt.Sprintf("file '%s' not found", path), errors.ErrFileNotFound)
			}
			return "", models.Document{}, errors.NewInputError(fmt.Sprintf("failed to read file '%s'", path), err)
		}
	}

	doc, err := loader.ParseSource(rc.Ctx, string(data), name, rc.Config.ParserOptions()...)
	if err != nil {
		return "", models.Document{}, err
	}
	return string(data), doc, nil
}

// checkStdin fails with ErrNoInput when stdin is an interactive terminal
func (rc *Context) checkStdin() error {
	f, ok := rc.Stdin.(*os.File)
	if !ok {
		return nil
	}
	info, err := f.Stat()
	if err != nil {
		return errors.NewInputError("failed to access stdin", err)
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		return errors.NewInputError("no input provided", errors.ErrNoInput)
	}
	return nil
}

// printValue writes a query result as XON text
func (rc *Context) printValue(v models.XONValue, raw bool) error {
	if s, ok := v.(string); ok && raw {
		return rc.write(s + "\n")
	}
	out, err := printer.FormatValue(v)
	if err != nil {
		return errors.NewFormatError("failed to format result", err)
	}
	return rc.write(out + "\n")
}

func (rc *Context) write(s string) error {
	if _, err := io.WriteString(rc.Stdout, s); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

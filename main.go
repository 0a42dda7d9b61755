package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-logr/logr"
	"github.com/mcncl/xon/internal/config"
	"github.com/mcncl/xon/internal/errors"
	"github.com/mcncl/xon/internal/logging"
)

// CLI defines the command-line interface
type CLI struct {
	Config   string           `help:"Path to a config file. Defaults to the nearest .xon.yml." type:"path"`
	Debug    bool             `help:"Enable debug logging." short:"d"`
	MaxDepth int              `help:"Maximum nesting depth. Zero keeps the configured value, a negative value disables the limit." name:"max-depth"`
	Version  kong.VersionFlag `help:"Show version information." short:"v"`

	Parse ParseCmd `cmd:"" help:"Parse a file and print it in canonical form."`
	Fmt   FmtCmd   `cmd:"" help:"Print or rewrite files in canonical form. Comments are not kept."`
	Get   GetCmd   `cmd:"" help:"Print the value at a dotted path."`
	Keys  KeysCmd  `cmd:"" help:"List the top-level keys of a document."`
	Eval  EvalCmd  `cmd:"" help:"Evaluate a CEL expression with the document bound to doc."`
	Check CheckCmd `cmd:"" help:"Report syntax errors with line numbers."`
}

// Context holds the runtime context shared by every command
type Context struct {
	Ctx    context.Context
	Config *config.Config
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// exitCode carries a requested exit status out of kong's help and version
// handling.
type exitCode int

// run executes one invocation and returns the process exit status
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("xon"),
		kong.Description("Parse, format and query XON configuration files"),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("xon version %s", Version)},
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "xon: error: %v\n", err)
		fmt.Fprintf(stderr, "\nFor help, run: xon --help\n")
		return 1
	}

	configPath := cli.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, cli.MaxDepth, cli.Debug)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(errors.NewConfigError("failed to load configuration", err)))
		return 1
	}

	logger, err := logging.NewLogger(cfg.Dev.Debug, Version)
	if err != nil {
		fmt.Fprintf(stderr, "warning: logging disabled: %v\n", err)
		logger = logr.Discard()
	}
	if configPath != "" {
		logger.V(1).Info("loaded configuration", "path", configPath, "maxDepth", cfg.Parser.MaxDepth)
	}

	rc := &Context{
		Ctx:    logr.NewContext(context.Background(), logger),
		Config: cfg,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}
	if err := kctx.Run(rc); err != nil {
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
		return 1
	}
	return 0
}

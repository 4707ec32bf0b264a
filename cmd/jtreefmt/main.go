// Command jtreefmt parses, queries, and re-serializes JSON text using the
// github.com/tzimuto1/json-parser library.
//
// Stable ABI:
//
//	jtreefmt [--indent N] [--query PATH] [--in-place] [--quiet] [--verbose] [file|-]
//	jtreefmt --help
//	jtreefmt --version
//
// Exit codes: 0 (success), 2 (usage/parse/query error), 10 (internal/IO).
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/tzimuto1/json-parser/jparse"
	"github.com/tzimuto1/json-parser/jser"
)

const (
	exitOK       = 0
	exitUsage    = 2
	exitInternal = 10
)

var version = "v0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type flags struct {
	indent   int
	query    string
	inPlace  bool
	quiet    bool
	verbose  bool
	help     bool
	showVers bool
}

func parseFlags(args []string) (flags, []string, error) {
	f := flags{indent: -1}
	var positional []string
	consumeAsPositional := false

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if consumeAsPositional {
			positional = append(positional, arg)
			continue
		}

		switch {
		case arg == "--":
			consumeAsPositional = true
		case arg == "-":
			positional = append(positional, arg)
		case arg == "--quiet" || arg == "-q":
			f.quiet = true
		case arg == "--verbose" || arg == "-v":
			f.verbose = true
		case arg == "--help" || arg == "-h":
			f.help = true
		case arg == "--version":
			f.showVers = true
		case arg == "--in-place":
			f.inPlace = true
		case arg == "--indent":
			if i+1 >= len(args) {
				return flags{}, nil, fmt.Errorf("--indent requires a value")
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return flags{}, nil, fmt.Errorf("--indent: %w", err)
			}
			f.indent = n
		case strings.HasPrefix(arg, "--indent="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--indent="))
			if err != nil {
				return flags{}, nil, fmt.Errorf("--indent: %w", err)
			}
			f.indent = n
		case arg == "--query":
			if i+1 >= len(args) {
				return flags{}, nil, fmt.Errorf("--query requires a value")
			}
			i++
			f.query = args[i]
		case strings.HasPrefix(arg, "--query="):
			f.query = strings.TrimPrefix(arg, "--query=")
		default:
			if strings.HasPrefix(arg, "-") {
				return flags{}, nil, fmt.Errorf("unknown option: %s", arg)
			}
			positional = append(positional, arg)
		}
	}
	return f, positional, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 1 {
		switch args[0] {
		case "--help", "-h":
			_ = writeHelp(stdout)
			return exitOK
		case "--version":
			_ = writeLine(stdout, "jtreefmt "+version)
			return exitOK
		}
	}

	fl, positional, err := parseFlags(args)
	if err != nil {
		return writeErrorAndReturn(stderr, exitUsage, "error: %v\n", err)
	}
	if fl.help {
		_ = writeHelp(stderr)
		return exitOK
	}
	if fl.showVers {
		_ = writeLine(stderr, "jtreefmt "+version)
		return exitOK
	}
	if len(positional) > 1 {
		_ = writeLine(stderr, "error: multiple input files specified")
		return exitUsage
	}
	if fl.inPlace && (len(positional) == 0 || positional[0] == "-") {
		_ = writeLine(stderr, "error: --in-place requires a named input file")
		return exitUsage
	}

	logger := newLogger(stderr, fl.verbose)

	path := "-"
	if len(positional) == 1 {
		path = positional[0]
	}
	input, err := readInput(path, stdin)
	if err != nil {
		logger.Error("read input failed", "path", path, "error", err.Error())
		return writeErrorAndReturn(stderr, exitInternal, "error: reading input: %v\n", err)
	}

	res := jparse.Parse(input)
	if res.Err != nil {
		logger.Error("parse failed", "path", path, "offset", res.Position, "error", res.Err.Error())
		return writeErrorAndReturn(stderr, exitUsage, "error: parsing %s: %v\n", path, res.Err)
	}

	root := res.Root
	if fl.query != "" {
		root, err = query(root, fl.query)
		if err != nil {
			logger.Error("query failed", "path", path, "query", fl.query, "error", err.Error())
			return writeErrorAndReturn(stderr, exitUsage, "error: %v\n", err)
		}
	}

	out := jser.Serialize(root, fl.indent)

	if fl.inPlace {
		if err := writeAtomic(path, out); err != nil {
			logger.Error("in-place write failed", "path", path, "error", err.Error())
			return writeErrorAndReturn(stderr, exitInternal, "error: writing %s: %v\n", path, err)
		}
		if !fl.quiet {
			_ = writeLine(stderr, "wrote "+path)
		}
		return exitOK
	}

	if _, err := stdout.Write(out); err != nil {
		logger.Error("write output failed", "error", err.Error())
		return writeErrorAndReturn(stderr, exitInternal, "error: writing output: %v\n", err)
	}
	if fl.indent <= 0 {
		_, _ = stdout.Write([]byte("\n"))
	}
	return exitOK
}

// newLogger builds a slog.Logger writing to stderr, following the handler
// selection pattern of go.jacobcolvin.com/x/log's CreateHandler: a level
// picks the handler's minimum severity, format picks the encoding. jtreefmt
// only ever needs one format (text) and two levels, so the level/format
// parameters those helpers take are collapsed into the single --verbose
// flag rather than reproduced in full.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

func writeErrorAndReturn(w io.Writer, code int, format string, args ...any) int {
	_ = writef(w, format, args...)
	return code
}

func writeHelp(w io.Writer) error {
	lines := []string{
		"usage: jtreefmt [--indent N] [--query PATH] [--in-place] [--quiet] [--verbose] [file|-]",
		"       jtreefmt --help",
		"       jtreefmt --version",
		"  --indent N    pretty-print with N spaces per nesting level (default: compact)",
		"  --query PATH  print only the value at the dotted path (e.g. a.b.0.c)",
		"  --in-place    rewrite the named input file atomically instead of stdout",
		"  --quiet       suppress the \"wrote <path>\" notice on --in-place",
		"  --verbose     log debug-level diagnostics to stderr",
	}
	for _, l := range lines {
		if err := writeLine(w, l); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(w io.Writer, msg string) error {
	return writef(w, "%s\n", msg)
}

func writef(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		return fmt.Errorf("write stream: %w", err)
	}
	return nil
}

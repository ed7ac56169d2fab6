package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config     string
	quiet      bool
	verbose    bool
	lookbehind bool
}

// fmtFlags holds flags for the fmt command.
type fmtFlags struct {
	common  commonFlags
	output  string
	workers int
	check   bool
	watch   bool
}

// htmlFlags holds flags for the html command.
type htmlFlags struct {
	common    commonFlags
	output    string
	css       string
	title     string
	hardWraps bool
	// hardWrapsSet records an explicit --hard-wraps, which overrides config.
	hardWrapsSet bool
}

// treeFlags holds flags for the tree command.
type treeFlags struct {
	common commonFlags
	output string
}

// typeFlags holds flags for the type command.
type typeFlags struct {
	common commonFlags
	tree   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log rule activity to stderr")
	fs.BoolVar(&f.lookbehind, "lookbehind", false, "match tags with the lookbehind pattern family")
}

// newFlagSet creates a FlagSet whose errors and usage go to w.
func newFlagSet(name string, w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { printCommandUsage(w, name) }
	return fs
}

// parseFlagSet parses args, mapping flag errors to ErrUsage.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseFmtFlags parses fmt command flags and returns positional args.
func parseFmtFlags(args []string, w io.Writer) (*fmtFlags, []string, error) {
	fs := newFlagSet("fmt", w)
	f := &fmtFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (default: in place)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.check, "check", false, "report files not in normal form without writing")
	fs.BoolVar(&f.watch, "watch", false, "keep running and reformat files as they change")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseHTMLFlags parses html command flags and returns positional args.
func parseHTMLFlags(args []string, w io.Writer) (*htmlFlags, []string, error) {
	fs := newFlagSet("html", w)
	f := &htmlFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.StringVar(&f.css, "css", "", "stylesheet to inline")
	fs.StringVar(&f.title, "title", "", "document title")
	fs.BoolVar(&f.hardWraps, "hard-wraps", true, "render single newlines as <br>")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	f.hardWrapsSet = fs.Changed("hard-wraps")
	return f, fs.Args(), nil
}

// parseTreeFlags parses tree command flags and returns positional args.
func parseTreeFlags(args []string, w io.Writer) (*treeFlags, []string, error) {
	fs := newFlagSet("tree", w)
	f := &treeFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseTypeFlags parses type command flags and returns positional args.
func parseTypeFlags(args []string, w io.Writer) (*typeFlags, []string, error) {
	fs := newFlagSet("type", w)
	f := &typeFlags{}

	fs.BoolVar(&f.tree, "tree", false, "print the document tree instead of markdown")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// isHelp reports whether err is a --help request, which is not a failure.
func isHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

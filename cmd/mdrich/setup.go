package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	mdrich "github.com/alnah/go-mdrich"
	"github.com/alnah/go-mdrich/internal/config"
	"github.com/alnah/go-mdrich/internal/fileutil"
	"github.com/alnah/go-mdrich/internal/pipeline"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input specified")
	ErrReadInput          = errors.New("failed to read input")
	ErrReadCSS            = errors.New("failed to read CSS file")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrCreateOutputDir    = errors.New("failed to create output directory")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrCheckFailed        = errors.New("files not in normal form")
	ErrFormatFailed       = errors.New("formatting failed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// stdinArg names standard input as a command argument.
const stdinArg = "-"

// Rule groups as named in the config file.
const (
	groupElements    = "transformers.elements"
	groupTextFormats = "transformers.textFormats"
	groupTextMatches = "transformers.textMatches"
)

// unknownRuleError reports a rule name that is unknown or listed in the
// wrong group.
type unknownRuleError struct {
	group     string
	name      string
	available []string
	err       error
}

func (e *unknownRuleError) Error() string {
	return fmt.Sprintf("%s: %v", e.group, e.err)
}

func (e *unknownRuleError) Unwrap() error { return e.err }

// session bundles what every command derives from its common flags.
type session struct {
	cfg    *config.Config
	reg    *mdrich.Registry
	logger *slog.Logger
}

// newSession loads the config, applies flag overrides and builds the rule set.
func newSession(f commonFlags, env *Environment) (*session, error) {
	cfg, err := loadConfig(f.config)
	if err != nil {
		return nil, err
	}
	if f.lookbehind {
		cfg.Capabilities.Lookbehind = true
	}

	logger := newLogger(f.verbose, env.Stderr)
	reg, err := buildRegistry(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, reg: reg, logger: logger}, nil
}

// loadConfig returns the default config when nameOrPath is empty.
func loadConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newLogger returns a debug text logger on w when verbose, else a discarding one.
func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// buildRegistry resolves the configured rule names group by group. An empty
// group selects its defaults.
func buildRegistry(cfg *config.Config, logger *slog.Logger) (*mdrich.Registry, error) {
	groups := []struct {
		name     string
		names    []string
		defaults []mdrich.Transformer
	}{
		{groupElements, cfg.Transformers.Elements, mdrich.ElementTransformers()},
		{groupTextFormats, cfg.Transformers.TextFormats, mdrich.TextFormatTransformers()},
		{groupTextMatches, cfg.Transformers.TextMatches, mdrich.TextMatchTransformers()},
	}

	var rules []mdrich.Transformer
	for _, g := range groups {
		if len(g.names) == 0 {
			rules = append(rules, g.defaults...)
			continue
		}
		for _, name := range g.names {
			t, err := lookupInGroup(g.name, name)
			if err != nil {
				return nil, err
			}
			rules = append(rules, t)
		}
	}

	reg, err := mdrich.NewRegistry(rules,
		mdrich.WithCapabilities(mdrich.Capabilities{Lookbehind: cfg.Capabilities.Lookbehind}),
		mdrich.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("building rule set: %w", err)
	}
	return reg, nil
}

// lookupInGroup resolves name and checks it belongs to group.
func lookupInGroup(group, name string) (mdrich.Transformer, error) {
	t, err := mdrich.Lookup(name)
	if err == nil && ruleGroup(t) != group {
		err = fmt.Errorf("%w: %q is not a %s rule", mdrich.ErrUnknownTransformer, name, strings.TrimPrefix(group, "transformers."))
	}
	if err != nil {
		return nil, &unknownRuleError{group: group, name: name, available: ruleNames(group), err: err}
	}
	return t, nil
}

// ruleGroup returns the config group a rule is listed under.
func ruleGroup(t mdrich.Transformer) string {
	switch t.(type) {
	case *mdrich.ElementTransformer:
		return groupElements
	case *mdrich.TextFormatTransformer:
		return groupTextFormats
	case *mdrich.TextMatchTransformer:
		return groupTextMatches
	}
	return ""
}

// ruleNames lists the built-in rule names of group in lookup order.
func ruleNames(group string) []string {
	var names []string
	for _, name := range mdrich.TransformerNames() {
		if t, err := mdrich.Lookup(name); err == nil && ruleGroup(t) == group {
			names = append(names, name)
		}
	}
	return names
}

// searchedPaths extracts the paths a config lookup tried from its error.
func searchedPaths(err error) []string {
	_, tried, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(tried, ", ")
}

// readInput reads a markdown file, or stdin for "-", with line endings
// normalized.
func readInput(path string, env *Environment) (string, error) {
	var data []byte
	var err error
	if path == stdinArg {
		data, err = io.ReadAll(env.Stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- user-provided path
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return pipeline.NormalizeLineEndings(string(data)), nil
}

// singleInput returns the one positional argument a command takes.
func singleInput(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoInput
	case 1:
		return args[0], nil
	}
	return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(args))
}

// writeOutput writes content to path, or to stdout when path is empty.
func writeOutput(path, content string, env *Environment) error {
	if path == "" {
		if _, err := io.WriteString(env.Stdout, content); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateOutputDir, err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(content), filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

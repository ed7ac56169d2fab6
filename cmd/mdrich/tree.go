package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdrich/internal/yamlutil"
)

// runTree imports a markdown file and dumps the document tree as YAML.
func runTree(_ context.Context, args []string, env *Environment) error {
	flags, positional, err := parseTreeFlags(args, env.Stderr)
	if err != nil {
		if isHelp(err) {
			return nil
		}
		return err
	}

	inputPath, err := singleInput(positional)
	if err != nil {
		return err
	}

	s, err := newSession(flags.common, env)
	if err != nil {
		return err
	}

	markdown, err := readInput(inputPath, env)
	if err != nil {
		return err
	}

	doc := s.reg.ImportString(markdown)
	out, err := yamlutil.Marshal(doc.Snapshot(doc.Root()))
	if err != nil {
		return fmt.Errorf("encoding tree: %w", err)
	}
	return writeOutput(flags.output, string(out), env)
}

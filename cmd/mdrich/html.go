package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-mdrich/internal/pipeline"
)

// runHTML renders the normal form of a markdown file as a standalone HTML
// preview.
func runHTML(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseHTMLFlags(args, env.Stderr)
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

	css, err := resolveCSS(flags.css, s.cfg.HTML.CSS)
	if err != nil {
		return err
	}

	hardWraps := s.cfg.HTML.HardWrapsEnabled()
	if flags.hardWrapsSet {
		hardWraps = flags.hardWraps
	}
	title := s.cfg.HTML.Title
	if flags.title != "" {
		title = flags.title
	}

	preview := pipeline.NewPreview(pipeline.WithHardWraps(hardWraps), pipeline.WithTitle(title))
	out, err := preview.Render(ctx, pipeline.PreviewInput{
		Markdown:  normalForm(s.reg, markdown),
		CSS:       css,
		SourceDir: sourceDir(inputPath),
	})
	if err != nil {
		return err
	}

	if err := writeOutput(flags.output, out, env); err != nil {
		return err
	}
	if flags.output != "" && !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
	}
	return nil
}

// resolveCSS reads the stylesheet named by the flag, falling back to config.
func resolveCSS(flagPath, cfgPath string) (string, error) {
	path := flagPath
	if path == "" {
		path = cfgPath
	}
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadCSS, err)
	}
	return string(data), nil
}

// sourceDir returns the absolute directory relative links resolve against.
// Standard input has none.
func sourceDir(inputPath string) string {
	if inputPath == stdinArg {
		return ""
	}
	abs, err := filepath.Abs(inputPath)
	if err != nil {
		return ""
	}
	return filepath.Dir(abs)
}

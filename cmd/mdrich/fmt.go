package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alnah/go-mdrich/internal/fileutil"
)

// runFmt rewrites markdown files in normal form: the markdown obtained by
// importing them into a document and exporting it back.
func runFmt(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseFmtFlags(args, env.Stderr)
	if err != nil {
		if isHelp(err) {
			return nil
		}
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if flags.watch && flags.check {
		return fmt.Errorf("%w: --watch cannot be combined with --check", ErrUsage)
	}

	inputPath, err := singleInput(positional)
	if err != nil {
		return err
	}

	s, err := newSession(flags.common, env)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, flags.output)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	workers := resolvePoolSize(flags.workers, s.cfg.Workers)
	s.logger.Debug("formatting", slog.Int("files", len(files)), slog.Int("workers", workers))

	params := &formatParams{reg: s.reg, check: flags.check}
	results := formatBatch(ctx, files, workers, params)
	summary := printResults(results, flags.check, flags.common.quiet, flags.common.verbose, env)

	if flags.watch {
		return runWatch(ctx, inputPath, flags, workers, params, s, env)
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrFormatFailed, summary.Failed)
	}
	if flags.check && summary.Changed > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrCheckFailed, summary.Changed)
	}
	return nil
}

// discoverFiles finds the markdown files under inputPath and where each is
// written.
func discoverFiles(inputPath, output string) ([]FileToFormat, error) {
	paths, err := fileutil.FindMarkdown(inputPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}
	baseDir := ""
	if info.IsDir() {
		baseDir = inputPath
	}

	files := make([]FileToFormat, 0, len(paths))
	for _, p := range paths {
		files = append(files, FileToFormat{
			InputPath:  p,
			OutputPath: resolveOutputPath(p, output, baseDir),
		})
	}
	return files, nil
}

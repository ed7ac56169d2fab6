package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	mdrich "github.com/alnah/go-mdrich"
	"github.com/alnah/go-mdrich/internal/fileutil"
	"github.com/alnah/go-mdrich/internal/pipeline"
)

// FileToFormat represents a single file to process.
type FileToFormat struct {
	InputPath  string
	OutputPath string
}

// FormatResult holds the outcome of formatting one file.
type FormatResult struct {
	InputPath  string
	OutputPath string
	Changed    bool
	Err        error
	Duration   time.Duration
}

// formatParams groups parameters shared across the batch.
type formatParams struct {
	reg   *mdrich.Registry
	check bool
}

// formatBatch formats files concurrently with at most workers goroutines.
// The registry is read-only and shared by every worker.
func formatBatch(ctx context.Context, files []FileToFormat, workers int, params *formatParams) []FormatResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(workers, len(files))
	results := make([]FormatResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = FormatResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = formatFile(files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// formatFile rewrites one file in normal form, or only compares in check mode.
func formatFile(f FileToFormat, params *formatParams) FormatResult {
	start := time.Now()
	result := FormatResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	done := func(err error) FormatResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return done(fmt.Errorf("%w: %w", ErrReadInput, err))
	}

	formatted := normalForm(params.reg, string(content))
	result.Changed = formatted != string(content)

	if params.check {
		result.OutputPath = ""
		return done(nil)
	}
	if !result.Changed && f.OutputPath == f.InputPath {
		return done(nil)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return done(fmt.Errorf("%w: %w", ErrCreateOutputDir, err))
	}
	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(formatted), filePermissions); err != nil {
		return done(fmt.Errorf("%w: %w", ErrWriteOutput, err))
	}
	return done(nil)
}

// normalForm imports then exports markdown, ending non-empty output with a
// newline.
func normalForm(reg *mdrich.Registry, markdown string) string {
	doc := reg.ImportString(pipeline.NormalizeLineEndings(markdown))
	out := reg.ExportString(doc)
	if out == "" {
		return ""
	}
	return out + "\n"
}

// resolveOutputPath determines where a formatted file is written. Without an
// output the file is rewritten in place.
func resolveOutputPath(inputPath, output, baseInputDir string) string {
	if output == "" {
		return inputPath
	}

	if baseInputDir == "" && fileutil.IsMarkdown(output) {
		return output
	}

	if baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil && !strings.HasPrefix(relPath, "..") {
			return filepath.Join(output, relPath)
		}
	}
	return filepath.Join(output, filepath.Base(inputPath))
}

// ResultSummary holds the count of results by outcome.
type ResultSummary struct {
	Changed int
	Failed  int
	Total   int
}

// countResults tallies changed and failed files.
func countResults(results []FormatResult) ResultSummary {
	summary := ResultSummary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Changed:
			summary.Changed++
		}
	}
	return summary
}

// printResults outputs batch results using the provided writers.
func printResults(results []FormatResult, check, quiet, verbose bool, env *Environment) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		switch {
		case check && r.Changed:
			// Listed even with --quiet: it is the command's result.
			fmt.Fprintln(env.Stdout, r.InputPath)
		case quiet:
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (changed: %v, %v)\n",
				r.InputPath, r.OutputPath, r.Changed, r.Duration.Round(time.Millisecond))
		case !check && r.Changed:
			fmt.Fprintf(env.Stdout, "Formatted %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		verb := "formatted"
		if check {
			verb = "need formatting"
		}
		fmt.Fprintf(env.Stdout, "\n%d %s, %d unchanged, %d failed\n",
			summary.Changed, verb, summary.Total-summary.Changed-summary.Failed, summary.Failed)
	}
	return summary
}

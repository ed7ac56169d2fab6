package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-mdrich/internal/fileutil"
)

// watchDebounce delays formatting until a burst of events settles.
const watchDebounce = 300 * time.Millisecond

// changeSet collects changed paths and signals ready once no event arrived
// for watchDebounce.
type changeSet struct {
	mu    sync.Mutex
	paths map[string]struct{}
	timer *time.Timer
	ready chan struct{}
}

func newChangeSet() *changeSet {
	return &changeSet{
		paths: make(map[string]struct{}),
		ready: make(chan struct{}, 1),
	}
}

// add records path and restarts the debounce timer.
func (c *changeSet) add(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths[path] = struct{}{}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(watchDebounce, func() {
		select {
		case c.ready <- struct{}{}:
		default:
		}
	})
}

// drain returns the collected paths in lexical order and forgets them.
func (c *changeSet) drain() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	paths := make([]string, 0, len(c.paths))
	for p := range c.paths {
		paths = append(paths, p)
	}
	clear(c.paths)
	slices.Sort(paths)
	return paths
}

func (c *changeSet) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
}

// watchTarget describes what a watch session reacts to.
type watchTarget struct {
	root      string // Directory being watched
	file      string // Set when a single file is watched
	outputDir string // Writes under it are ignored
}

// accepts reports whether a change to path should be formatted.
func (w watchTarget) accepts(path string) bool {
	if shouldIgnoreEvent(path) || !fileutil.IsMarkdown(path) {
		return false
	}
	if w.outputDir != "" && isUnder(path, w.outputDir) {
		return false
	}
	return w.file == "" || filepath.Clean(path) == w.file
}

// runWatch reformats markdown files under inputPath as they change, until
// ctx is canceled.
func runWatch(ctx context.Context, inputPath string, flags *fmtFlags, workers int, params *formatParams, s *session, env *Environment) error {
	target, err := newWatchTarget(inputPath, flags.output)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer watcher.Close()
	if err := addDirsRecursive(watcher, target.root, s.logger); err != nil {
		return err
	}

	changes := newChangeSet()
	defer changes.stop()

	baseDir := ""
	if target.file == "" {
		baseDir = inputPath
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s (Ctrl+C to stop)\n", inputPath)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleWatchEvent(watcher, ev, target, changes, s.logger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", slog.Any("error", err))
		case <-changes.ready:
			var files []FileToFormat
			for _, p := range changes.drain() {
				if fileutil.FileExists(p) {
					files = append(files, FileToFormat{InputPath: p, OutputPath: resolveOutputPath(p, flags.output, baseDir)})
				}
			}
			results := formatBatch(ctx, files, workers, params)
			printResults(results, false, flags.common.quiet, flags.common.verbose, env)
		}
	}
}

// newWatchTarget resolves the watched directory for a file or directory input.
func newWatchTarget(inputPath, output string) (watchTarget, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return watchTarget{}, err
	}
	var t watchTarget
	if info.IsDir() {
		t.root = inputPath
	} else {
		t.root = filepath.Dir(inputPath)
		t.file = filepath.Clean(inputPath)
	}
	if output != "" && !fileutil.IsMarkdown(output) {
		t.outputDir = output
	}
	return t, nil
}

// handleWatchEvent queues markdown changes and follows new directories.
func handleWatchEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, target watchTarget, changes *changeSet, logger *slog.Logger) {
	if ev.Has(fsnotify.Create) && target.file == "" {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() && !shouldIgnoreEvent(ev.Name) {
			_ = addDirsRecursive(watcher, ev.Name, logger)
			return
		}
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}
	if !target.accepts(ev.Name) {
		return
	}
	logger.Debug("file change detected", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
	changes.add(ev.Name)
}

// addDirsRecursive watches root and every non-hidden directory below it.
func addDirsRecursive(w *fsnotify.Watcher, root string, logger *slog.Logger) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			logger.Warn("watch add failed", slog.String("dir", path), slog.Any("error", err))
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for hidden, swap and temp files, including
// the temp files written by fmt itself.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	return strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#")
}

// isUnder reports whether path is dir or inside it.
func isUnder(path, dir string) bool {
	absPath, err1 := filepath.Abs(path)
	absDir, err2 := filepath.Abs(dir)
	if err1 != nil || err2 != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

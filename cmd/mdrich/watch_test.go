package main

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestChangeSet - Debounced path collection
// ---------------------------------------------------------------------------

func TestChangeSet(t *testing.T) {
	t.Parallel()

	c := newChangeSet()
	defer c.stop()

	c.add("b.md")
	c.add("a.md")
	c.add("b.md")

	select {
	case <-c.ready:
	case <-time.After(5 * time.Second):
		t.Fatal("changeSet never signaled ready")
	}

	if got, want := c.drain(), []string{"a.md", "b.md"}; !slices.Equal(got, want) {
		t.Errorf("drain() = %v, want %v", got, want)
	}
	if got := c.drain(); len(got) != 0 {
		t.Errorf("second drain() = %v, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// TestShouldIgnoreEvent - Editor and temp file filtering
// ---------------------------------------------------------------------------

func TestShouldIgnoreEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"docs/a.md", false},
		{"docs/.a.md.swp", true},
		{"docs/a.md~", true},
		{"docs/#a.md#", true},
		{"docs/a.swx", true},
		{"docs/.mdrich-123.tmp", true},
		{"docs/.hidden.md", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := shouldIgnoreEvent(tt.path); got != tt.want {
				t.Errorf("shouldIgnoreEvent(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWatchTargetAccepts - Which changes get formatted
// ---------------------------------------------------------------------------

func TestWatchTargetAccepts(t *testing.T) {
	t.Parallel()

	dirTarget := watchTarget{root: "docs", outputDir: "docs/out"}
	fileTarget := watchTarget{root: "docs", file: filepath.Clean("docs/a.md")}

	tests := []struct {
		name   string
		target watchTarget
		path   string
		want   bool
	}{
		{"markdown in dir", dirTarget, "docs/sub/b.md", true},
		{"not markdown", dirTarget, "docs/b.txt", false},
		{"under output dir", dirTarget, "docs/out/b.md", false},
		{"watched file", fileTarget, "docs/a.md", true},
		{"sibling of watched file", fileTarget, "docs/b.md", false},
		{"swap file", dirTarget, "docs/.b.md.swp", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.target.accepts(tt.path); got != tt.want {
				t.Errorf("accepts(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsUnder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, dir string
		want      bool
	}{
		{"out/a.md", "out", true},
		{"out", "out", true},
		{"output/a.md", "out", false},
		{"a.md", "out", false},
	}
	for _, tt := range tests {
		if got := isUnder(tt.path, tt.dir); got != tt.want {
			t.Errorf("isUnder(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunFmtWatch - Files changed after startup are reformatted
// ---------------------------------------------------------------------------

func TestRunFmtWatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.md"), cleanMarkdown)
	target := filepath.Join(dir, "b.md")

	ctx, cancel := context.WithCancel(context.Background())
	env, _, _ := testEnv("")
	done := make(chan error, 1)
	go func() {
		done <- runFmt(ctx, []string{"--watch", "-q", dir}, env)
	}()

	// Rewrite until the watcher picks the file up; the first writes may land
	// before the watch is registered.
	deadline := time.Now().Add(10 * time.Second)
	formatted := false
	for !formatted && time.Now().Before(deadline) {
		writeTestFile(t, target, messyMarkdown)
		for range 20 {
			time.Sleep(50 * time.Millisecond)
			if data, err := os.ReadFile(target); err == nil && string(data) == cleanMarkdown {
				formatted = true
				break
			}
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runFmt(--watch) error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runFmt(--watch) did not stop after cancel")
	}
	if !formatted {
		t.Fatal("changed file was not reformatted")
	}
}

func TestRunFmtWatchWithCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.md"), cleanMarkdown)
	env, _, _ := testEnv("")

	err := runFmt(context.Background(), []string{"--watch", "--check", dir}, env)
	if exitCodeFor(err) != ExitUsage {
		t.Errorf("exit code = %d, want %d (err %v)", exitCodeFor(err), ExitUsage, err)
	}
}

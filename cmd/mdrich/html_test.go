package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunHTML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "doc.md")
	writeTestFile(t, input, "# Title\n\n* item\n\n==marked== ![img](pic.png)\nnext line\n")
	css := filepath.Join(dir, "style.css")
	writeTestFile(t, css, "h1 { color: red; }")
	cfg := filepath.Join(dir, "mdrich.yaml")
	writeTestFile(t, cfg, "html:\n  hardWraps: false\n  title: From Config\n")

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name: "defaults",
			args: []string{input},
			contains: []string{
				"<!DOCTYPE html>",
				"<title>Document</title>",
				`<h1 id="title">Title</h1>`,
				"<li>item</li>",
				"<mark>marked</mark>",
				`src="file://` + filepath.ToSlash(dir) + `/pic.png"`,
				"<br",
			},
		},
		{
			name:     "css and title flags",
			args:     []string{"--css", css, "--title", "Notes", input},
			contains: []string{"<title>Notes</title>", "h1 { color: red; }"},
		},
		{
			name:     "config options",
			args:     []string{"-c", cfg, input},
			contains: []string{"<title>From Config</title>"},
			excludes: []string{"<br"},
		},
		{
			name:     "flag overrides config",
			args:     []string{"-c", cfg, "--hard-wraps", input},
			contains: []string{"<br"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := testEnv("")
			if err := runHTML(context.Background(), tt.args, env); err != nil {
				t.Fatalf("runHTML() unexpected error: %v", err)
			}
			out := stdout.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q\n%s", want, out)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(out, bad) {
					t.Errorf("output should not contain %q\n%s", bad, out)
				}
			}
		})
	}
}

func TestRunHTMLOutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "site", "index.html")
	env, stdout, _ := testEnv("**bold**")

	if err := runHTML(context.Background(), []string{"-o", out, "-"}, env); err != nil {
		t.Fatalf("runHTML() unexpected error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<strong>bold</strong>") {
		t.Errorf("output file = %s", data)
	}
	if !strings.Contains(stdout.String(), "Created "+out) {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunHTMLErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "doc.md")
	writeTestFile(t, input, "text")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"missing css", []string{"--css", filepath.Join(dir, "none.css"), input}, ErrReadCSS},
		{"missing input", []string{filepath.Join(dir, "none.md")}, ErrReadInput},
		{"no input", nil, ErrNoInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, _ := testEnv("")
			err := runHTML(context.Background(), tt.args, env)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("runHTML() error = %v, want %v", err, tt.wantErr)
			}
			if exitCodeFor(err) == ExitSuccess {
				t.Error("exit code = success for a failure")
			}
		})
	}
}

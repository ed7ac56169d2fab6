package pipeline

import (
	"context"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPreprocessMarkdown - Preprocessing Stages
// ---------------------------------------------------------------------------

func TestPreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "CRLF line endings",
			input:    "a\r\nb\rc",
			expected: "a\nb\nc",
		},
		{
			name:     "blank lines compressed",
			input:    "a\n\n\n\nb",
			expected: "a\n\nb",
		},
		{
			name:     "highlight replaced",
			input:    "some ==marked== text",
			expected: "some " + MarkStartPlaceholder + "marked" + MarkEndPlaceholder + " text",
		},
		{
			name:     "highlight needs content",
			input:    "a ==== b",
			expected: "a ==== b",
		},
		{
			name:     "highlight never crosses lines",
			input:    "==a\nb==",
			expected: "==a\nb==",
		},
		{
			name:     "fenced code untouched",
			input:    "```\n==x==\n```\n==y==",
			expected: "```\n==x==\n```\n" + MarkStartPlaceholder + "y" + MarkEndPlaceholder,
		},
	}

	p := &PreviewPreprocessor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := p.PreprocessMarkdown(context.Background(), tt.input)
			if got != tt.expected {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPreprocessMarkdownCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "a\r\n==b=="
	if got := (&PreviewPreprocessor{}).PreprocessMarkdown(ctx, input); got != input {
		t.Errorf("PreprocessMarkdown() on canceled context = %q, want input unchanged", got)
	}
}

// ---------------------------------------------------------------------------
// TestConvertMarkPlaceholders
// ---------------------------------------------------------------------------

func TestConvertMarkPlaceholders(t *testing.T) {
	t.Parallel()

	input := "<p>" + MarkStartPlaceholder + "x" + MarkEndPlaceholder + "</p>"
	if got, want := ConvertMarkPlaceholders(input), "<p><mark>x</mark></p>"; got != want {
		t.Errorf("ConvertMarkPlaceholders() = %q, want %q", got, want)
	}
}

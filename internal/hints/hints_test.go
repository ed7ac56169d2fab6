package hints

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains []string
		excludes string
	}{
		{
			name:     "suggests user config path",
			paths:    []string{"team.yaml", "team.yml", "/home/u/.config/go-mdrich/team.yaml"},
			contains: []string{"--config", "or create /home/u/.config/go-mdrich/team.yaml"},
		},
		{
			name:     "local paths only",
			paths:    []string{"team.yaml", "team.yml"},
			contains: []string{"--config"},
			excludes: "or create",
		},
		{
			name:     "no paths",
			contains: []string{"hint: use --config"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			for _, want := range tt.contains {
				if !strings.Contains(hint, want) {
					t.Errorf("hint %q missing %q", hint, want)
				}
			}
			if tt.excludes != "" && strings.Contains(hint, tt.excludes) {
				t.Errorf("hint %q should not contain %q", hint, tt.excludes)
			}
		})
	}
}

func TestForUnknownRule(t *testing.T) {
	t.Parallel()

	hint := ForUnknownRule("transformers.elements", []string{"heading", "quote"})
	if hint != "\n  hint: transformers.elements accepts: heading, quote" {
		t.Errorf("ForUnknownRule() = %q", hint)
	}
	if got := ForUnknownRule("transformers.elements", nil); got != "" {
		t.Errorf("ForUnknownRule(nil) = %q, want empty", got)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hint string
		want string
	}{
		{"output directory", ForOutputDirectory(), "writable"},
		{"check failed", ForCheckFailed(), "without --check; use --verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint %q missing prefix", tt.hint)
			}
			if !strings.Contains(tt.hint, tt.want) {
				t.Errorf("hint %q missing %q", tt.hint, tt.want)
			}
		})
	}
}

func TestFormatHints(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q", got)
	}
}

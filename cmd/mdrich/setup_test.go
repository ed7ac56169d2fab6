package main

import (
	"errors"
	"slices"
	"strings"
	"testing"

	mdrich "github.com/alnah/go-mdrich"
	"github.com/alnah/go-mdrich/internal/config"
)

func TestBuildRegistry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cfg       config.Config
		wantErr   error
		wantGroup string
		check     func(t *testing.T, reg *mdrich.Registry)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, reg *mdrich.Registry) {
				if got := len(reg.Elements()); got != len(mdrich.ElementTransformers()) {
					t.Errorf("elements = %d, want defaults", got)
				}
				if got := len(reg.TextFormats()); got != len(mdrich.TextFormatTransformers()) {
					t.Errorf("text formats = %d, want defaults", got)
				}
			},
		},
		{
			name: "custom group keeps others at defaults",
			cfg: config.Config{Transformers: config.TransformersConfig{
				Elements: []string{"checkList", "unorderedList"},
			}},
			check: func(t *testing.T, reg *mdrich.Registry) {
				els := reg.Elements()
				if len(els) != 2 || els[0].Name != "checkList" || els[1].Name != "unorderedList" {
					t.Errorf("elements = %v", els)
				}
				if len(reg.TextMatches()) != 1 {
					t.Errorf("text matches = %d, want 1", len(reg.TextMatches()))
				}
			},
		},
		{
			name: "lookbehind",
			cfg:  config.Config{Capabilities: config.CapabilitiesConfig{Lookbehind: true}},
			check: func(t *testing.T, reg *mdrich.Registry) {
				if !reg.Capabilities().Lookbehind {
					t.Error("Lookbehind = false, want true")
				}
			},
		},
		{
			name: "unknown name",
			cfg: config.Config{Transformers: config.TransformersConfig{
				TextFormats: []string{"underline"},
			}},
			wantErr:   mdrich.ErrUnknownTransformer,
			wantGroup: groupTextFormats,
		},
		{
			name: "wrong group",
			cfg: config.Config{Transformers: config.TransformersConfig{
				TextMatches: []string{"heading"},
			}},
			wantErr:   mdrich.ErrUnknownTransformer,
			wantGroup: groupTextMatches,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg, err := buildRegistry(&tt.cfg, newLogger(false, nil))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("buildRegistry() error = %v, want %v", err, tt.wantErr)
				}
				var ruleErr *unknownRuleError
				if !errors.As(err, &ruleErr) || ruleErr.group != tt.wantGroup {
					t.Errorf("error group = %v, want %s", err, tt.wantGroup)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildRegistry() unexpected error: %v", err)
			}
			tt.check(t, reg)
		})
	}
}

func TestRuleNames(t *testing.T) {
	t.Parallel()

	if got := ruleNames(groupTextMatches); !slices.Equal(got, []string{"link"}) {
		t.Errorf("ruleNames(textMatches) = %v", got)
	}
	elements := ruleNames(groupElements)
	if !slices.Contains(elements, "checkList") || slices.Contains(elements, "boldStar") {
		t.Errorf("ruleNames(elements) = %v", elements)
	}
}

func TestSearchedPaths(t *testing.T) {
	t.Parallel()

	err := errors.New("loading config: config file not found: tried a.yaml, a.yml, /home/u/.config/go-mdrich/a.yaml")
	want := []string{"a.yaml", "a.yml", "/home/u/.config/go-mdrich/a.yaml"}
	if got := searchedPaths(err); !slices.Equal(got, want) {
		t.Errorf("searchedPaths() = %v, want %v", got, want)
	}
	if got := searchedPaths(errors.New("config file not found: ./x.yaml")); got != nil {
		t.Errorf("searchedPaths() = %v, want nil", got)
	}
}

func TestSingleInput(t *testing.T) {
	t.Parallel()

	if _, err := singleInput(nil); !errors.Is(err, ErrNoInput) {
		t.Errorf("singleInput(nil) error = %v, want ErrNoInput", err)
	}
	if got, err := singleInput([]string{"a.md"}); err != nil || got != "a.md" {
		t.Errorf("singleInput() = %q, %v", got, err)
	}
	if _, err := singleInput([]string{"a", "b"}); !errors.Is(err, ErrUsage) {
		t.Errorf("singleInput(two) error = %v, want ErrUsage", err)
	}
}

func TestNewLoggerVerbose(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	logger := newLogger(true, &buf)
	logger.Debug("rule fired", "name", "heading")
	if !strings.Contains(buf.String(), "rule fired") {
		t.Errorf("verbose logger output = %q", buf.String())
	}
}

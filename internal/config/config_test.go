package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if !cfg.Transformers.IsDefault() {
		t.Error("Transformers.IsDefault() = false, want true")
	}
	if cfg.Capabilities.Lookbehind {
		t.Error("Capabilities.Lookbehind = true, want false")
	}
	if !cfg.HTML.HardWrapsEnabled() {
		t.Error("HTML.HardWrapsEnabled() = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tooMany := make([]string, MaxRules+1)
	for i := range tooMany {
		tooMany[i] = "rule" + strings.Repeat("x", i%10) + string(rune('a'+i%26)) + string(rune('a'+i/26))
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "custom rule order",
			cfg: Config{Transformers: TransformersConfig{
				Elements:    []string{"checkList", "unorderedList"},
				TextFormats: []string{"boldStar"},
			}},
		},
		{
			name:    "empty rule name",
			cfg:     Config{Transformers: TransformersConfig{Elements: []string{" "}}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "rule name too long",
			cfg:     Config{Transformers: TransformersConfig{TextFormats: []string{strings.Repeat("a", MaxRuleNameLength+1)}}},
			wantErr: ErrFieldTooLong,
		},
		{
			name: "duplicate across groups",
			cfg: Config{Transformers: TransformersConfig{
				Elements:    []string{"link"},
				TextMatches: []string{"link"},
			}},
			wantErr: ErrDuplicateRule,
		},
		{
			name:    "too many rules",
			cfg:     Config{Transformers: TransformersConfig{TextFormats: tooMany}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "title too long",
			cfg:     Config{HTML: HTMLConfig{Title: strings.Repeat("t", MaxTitleLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "negative workers",
			cfg:     Config{Workers: -1},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "too many workers",
			cfg:     Config{Workers: MaxWorkers + 1},
			wantErr: ErrInvalidValue,
		},
		{
			name: "max workers",
			cfg:  Config{Workers: MaxWorkers},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	if err := validateFieldLength("f", "1234567890", 10); err != nil {
		t.Errorf("value at limit: unexpected error %v", err)
	}
	err := validateFieldLength("test.field", "12345678901", 10)
	if !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("error = %v, want ErrFieldTooLong", err)
	}
	if !strings.Contains(err.Error(), "test.field") {
		t.Errorf("error %q does not name the field", err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "full config",
			content: `transformers:
  elements: [heading, checkList, unorderedList]
  textFormats: [boldStar, italicStar]
  textMatches: [link]
capabilities:
  lookbehind: true
html:
  hardWraps: false
  title: Notes
  css: ./style.css
workers: 4
`,
			check: func(t *testing.T, cfg *Config) {
				if !slices.Equal(cfg.Transformers.Elements, []string{"heading", "checkList", "unorderedList"}) {
					t.Errorf("Elements = %v", cfg.Transformers.Elements)
				}
				if !cfg.Capabilities.Lookbehind {
					t.Error("Lookbehind = false, want true")
				}
				if cfg.HTML.HardWrapsEnabled() {
					t.Error("HardWrapsEnabled() = true, want false")
				}
				if cfg.HTML.Title != "Notes" || cfg.HTML.CSS != "./style.css" {
					t.Errorf("HTML = %+v", cfg.HTML)
				}
				if cfg.Workers != 4 {
					t.Errorf("Workers = %d, want 4", cfg.Workers)
				}
			},
		},
		{
			name:    "unknown field rejected",
			content: "transformer:\n  elements: [heading]\n",
			wantErr: ErrConfigParse,
		},
		{
			name:    "invalid value rejected",
			content: "workers: 99\n",
			wantErr: ErrInvalidValue,
		},
		{
			name:    "empty file",
			content: "",
			wantErr: ErrConfigParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "mdrich.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			cfg, err := LoadConfig(path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadConfig() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig() unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
		t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
	}

	missing := filepath.Join(t.TempDir(), "absent.yaml")
	if _, err := LoadConfig(missing); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig(missing path) error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigByName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile(filepath.Join(dir, "team.yml"), []byte("workers: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("team")
	if err != nil {
		t.Fatalf("LoadConfig(name) unexpected error: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}

	_, err = LoadConfig("nope")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig(unknown name) error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "nope.yaml") || !strings.Contains(err.Error(), appDir) {
		t.Errorf("error %q does not list the searched paths", err)
	}
}

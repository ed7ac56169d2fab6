package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPreviewRender - Full Chain
// ---------------------------------------------------------------------------

func TestPreviewRender(t *testing.T) {
	t.Parallel()

	in := PreviewInput{
		Markdown:  "# Notes\r\n\r\nSome ==marked== text with ![img](pic.png).",
		CSS:       "mark{color:red}",
		SourceDir: t.TempDir(),
	}
	got, err := NewPreview(WithTitle("Notes")).Render(context.Background(), in)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	for _, want := range []string{
		"<title>Notes</title>",
		"<mark>marked</mark>",
		"<style>mark{color:red}</style>",
		`src="file://`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, MarkStartPlaceholder) {
		t.Error("Render() left a highlight placeholder")
	}
}

type failingConverter struct{}

func (failingConverter) ToHTML(context.Context, string) (string, error) {
	return "", ErrHTMLConversion
}

func TestPreviewRenderConverterError(t *testing.T) {
	t.Parallel()

	p := NewPreview()
	p.Converter = failingConverter{}

	if _, err := p.Render(context.Background(), PreviewInput{Markdown: "x"}); !errors.Is(err, ErrHTMLConversion) {
		t.Errorf("Render() error = %v, want ErrHTMLConversion", err)
	}
}

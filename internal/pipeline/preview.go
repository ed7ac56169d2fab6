package pipeline

import (
	"context"
	"fmt"
)

// Preview chains the preview stages.
type Preview struct {
	Preprocessor MarkdownPreprocessor
	Converter    HTMLConverter
	Styler       CSSInjector
}

// NewPreview creates a Preview with the default stages.
func NewPreview(opts ...ConverterOption) *Preview {
	return &Preview{
		Preprocessor: &PreviewPreprocessor{},
		Converter:    NewGoldmarkConverter(opts...),
		Styler:       &CSSInjection{},
	}
}

// PreviewInput holds what one preview needs.
type PreviewInput struct {
	Markdown string
	CSS      string
	// SourceDir, when set, rebases relative links onto it.
	SourceDir string
}

// Render converts markdown into a standalone HTML document.
func (p *Preview) Render(ctx context.Context, in PreviewInput) (string, error) {
	md := p.Preprocessor.PreprocessMarkdown(ctx, in.Markdown)

	out, err := p.Converter.ToHTML(ctx, md)
	if err != nil {
		return "", err
	}
	out = ConvertMarkPlaceholders(out)
	out = p.Styler.InjectCSS(ctx, out, in.CSS)

	out, err = RebaseRelativeLinks(out, in.SourceDir)
	if err != nil {
		return "", fmt.Errorf("%w: rebasing links: %v", ErrHTMLConversion, err)
	}
	return out, nil
}

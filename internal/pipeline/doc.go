// Package pipeline renders normalized markdown as a standalone HTML preview.
//
// The stages run in order:
//   - Markdown preprocessing (line endings, blank lines, ==highlight== marks)
//   - Markdown to HTML conversion via Goldmark with chroma highlighting
//   - Stylesheet injection
//   - Rebasing of relative links onto the source directory
//
// The rich-text model lives in the root mdrich package; this package only
// consumes the markdown it exports.
package pipeline

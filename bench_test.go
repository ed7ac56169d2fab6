//go:build bench

package mdrich

import (
	"fmt"
	"strings"
	"testing"
)

// benchMarkdown returns a document exercising every default rule, repeated n times.
func benchMarkdown(n int) string {
	block := "# Heading\n\n" +
		"Some **bold**, *italic*, ~~struck~~ and ==marked== text with `code`.\n" +
		"A [link](https://example.com \"title\") continues the paragraph.\n\n" +
		"> quoted *line*\n\n" +
		"- one\n    - nested __two__\n- three\n\n" +
		"3. first\n4. second\n\n" +
		"```go\nfunc main() {}\n```\n\n"
	return strings.Repeat(block, n)
}

// BenchmarkImport benchmarks bulk import with both tag matchers.
func BenchmarkImport(b *testing.B) {
	for _, lookbehind := range []bool{false, true} {
		reg, err := NewRegistry(DefaultTransformers(), WithCapabilities(Capabilities{Lookbehind: lookbehind}))
		if err != nil {
			b.Fatal(err)
		}
		name := "scanner"
		if lookbehind {
			name = "lookbehind"
		}
		for _, size := range []int{1, 50} {
			md := benchMarkdown(size)
			b.Run(fmt.Sprintf("%s/blocks=%d", name, size), func(b *testing.B) {
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					_ = reg.ImportString(md)
				}
			})
		}
	}
}

// BenchmarkExport benchmarks bulk export of an imported document.
func BenchmarkExport(b *testing.B) {
	reg := DefaultRegistry()
	doc := reg.ImportString(benchMarkdown(50))

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = reg.ExportString(doc)
	}
}

// BenchmarkShortcutTyping benchmarks one keystroke-per-update typing with
// shortcuts installed.
func BenchmarkShortcutTyping(b *testing.B) {
	const typed = "## Title **bold** and *italic* with [a](b)"
	reg := DefaultRegistry()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ed := NewEditor()
		if _, err := RegisterShortcuts(ed, reg); err != nil {
			b.Fatal(err)
		}
		for _, r := range typed {
			ed.InsertText(string(r))
		}
	}
}

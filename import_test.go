package mdrich

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func textSnap(s string, f Format) NodeSnapshot {
	n := NodeSnapshot{Kind: "text", Text: s}
	if f != 0 {
		n.Format = f.String()
	}
	return n
}

func TestImport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []NodeSnapshot
	}{
		{
			name:  "heading",
			input: "# Title",
			expected: []NodeSnapshot{
				{Kind: "heading", Level: 1, Children: []NodeSnapshot{textSnap("Title", 0)}},
			},
		},
		{
			name:  "heading with format",
			input: "### **Bold** title",
			expected: []NodeSnapshot{
				{Kind: "heading", Level: 3, Children: []NodeSnapshot{
					textSnap("Bold", FormatBold),
					textSnap(" title", 0),
				}},
			},
		},
		{
			name:  "bold and italic",
			input: "**bold** and *italic*",
			expected: []NodeSnapshot{
				{Kind: "paragraph", Children: []NodeSnapshot{
					textSnap("bold", FormatBold),
					textSnap(" and ", 0),
					textSnap("italic", FormatItalic),
				}},
			},
		},
		{
			name:  "nested formats",
			input: "*Hello **world**!*",
			expected: []NodeSnapshot{
				{Kind: "paragraph", Children: []NodeSnapshot{
					textSnap("Hello ", FormatItalic),
					textSnap("world", FormatBold|FormatItalic),
					textSnap("!", FormatItalic),
				}},
			},
		},
		{
			name:  "code span keeps tags literal",
			input: "`a *b*`",
			expected: []NodeSnapshot{
				{Kind: "paragraph", Children: []NodeSnapshot{textSnap("a *b*", FormatCode)}},
			},
		},
		{
			name:  "intraword underscores stay literal",
			input: "snake_case_name",
			expected: []NodeSnapshot{
				{Kind: "paragraph", Children: []NodeSnapshot{textSnap("snake_case_name", 0)}},
			},
		},
		{
			name:  "nested bullet list",
			input: "- a\n- b\n    - c",
			expected: []NodeSnapshot{
				{Kind: "list", ListType: "bullet", Children: []NodeSnapshot{
					{Kind: "listitem", Children: []NodeSnapshot{textSnap("a", 0)}},
					{Kind: "listitem", Children: []NodeSnapshot{textSnap("b", 0)}},
					{Kind: "listitem", Children: []NodeSnapshot{
						{Kind: "list", ListType: "bullet", Children: []NodeSnapshot{
							{Kind: "listitem", Children: []NodeSnapshot{textSnap("c", 0)}},
						}},
					}},
				}},
			},
		},
		{
			name:  "numbered list keeps start",
			input: "3. three\n4. four",
			expected: []NodeSnapshot{
				{Kind: "list", ListType: "number", Start: 3, Children: []NodeSnapshot{
					{Kind: "listitem", Children: []NodeSnapshot{textSnap("three", 0)}},
					{Kind: "listitem", Children: []NodeSnapshot{textSnap("four", 0)}},
				}},
			},
		},
		{
			name:  "adjacent quote lines merge",
			input: "> a\n> b",
			expected: []NodeSnapshot{
				{Kind: "quote", Children: []NodeSnapshot{
					textSnap("a", 0),
					{Kind: "linebreak"},
					textSnap("b", 0),
				}},
			},
		},
		{
			name:  "fenced code",
			input: "```go\nfmt.Println()\n\n```",
			expected: []NodeSnapshot{
				{Kind: "code", Language: "go", Children: []NodeSnapshot{textSnap("fmt.Println()\n", 0)}},
			},
		},
		{
			name:  "unclosed fence is text",
			input: "```go\nx",
			expected: []NodeSnapshot{
				{Kind: "paragraph", Children: []NodeSnapshot{
					textSnap("```go", 0),
					{Kind: "linebreak"},
					textSnap("x", 0),
				}},
			},
		},
		{
			name:  "link with title",
			input: `see [site](https://example.com "Home") now`,
			expected: []NodeSnapshot{
				{Kind: "paragraph", Children: []NodeSnapshot{
					textSnap("see ", 0),
					{Kind: "link", URL: "https://example.com", Title: "Home", Children: []NodeSnapshot{textSnap("site", 0)}},
					textSnap(" now", 0),
				}},
			},
		},
		{
			name:  "formatted link",
			input: "**[a](u)**",
			expected: []NodeSnapshot{
				{Kind: "paragraph", Children: []NodeSnapshot{
					{Kind: "link", URL: "u", Children: []NodeSnapshot{textSnap("a", FormatBold)}},
				}},
			},
		},
		{
			name:  "continuation lines",
			input: "line one\nline two\n\nnext",
			expected: []NodeSnapshot{
				{Kind: "paragraph", Children: []NodeSnapshot{
					textSnap("line one", 0),
					{Kind: "linebreak"},
					textSnap("line two", 0),
				}},
				{Kind: "paragraph", Children: []NodeSnapshot{textSnap("next", 0)}},
			},
		},
		{
			name:  "continuation into list item",
			input: "- a\nmore",
			expected: []NodeSnapshot{
				{Kind: "list", ListType: "bullet", Children: []NodeSnapshot{
					{Kind: "listitem", Children: []NodeSnapshot{
						textSnap("a", 0),
						{Kind: "linebreak"},
						textSnap("more", 0),
					}},
				}},
			},
		},
		{
			name:     "blank lines only",
			input:    "\n   \n",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := DefaultRegistry().ImportString(tt.input)
			got := doc.Snapshot(doc.Root())
			want := NodeSnapshot{Kind: "root", Children: tt.expected}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ImportString(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestImportCheckList(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry([]Transformer{CheckList, UnorderedList, BoldStar})
	if err != nil {
		t.Fatalf("NewRegistry() unexpected error: %v", err)
	}

	// Only a lowercase x marks an item as checked.
	doc := reg.ImportString("- [x] done\n- [ ] **todo**\n- [X] upper")
	want := NodeSnapshot{Kind: "root", Children: []NodeSnapshot{
		{Kind: "list", ListType: "check", Children: []NodeSnapshot{
			{Kind: "listitem", Checked: "checked", Children: []NodeSnapshot{textSnap("done", 0)}},
			{Kind: "listitem", Checked: "unchecked", Children: []NodeSnapshot{textSnap("todo", FormatBold)}},
			{Kind: "listitem", Checked: "unchecked", Children: []NodeSnapshot{textSnap("upper", 0)}},
		}},
	}}
	if diff := cmp.Diff(want, doc.Snapshot(doc.Root())); diff != "" {
		t.Errorf("ImportString() mismatch (-want +got):\n%s", diff)
	}
}

func TestImportReplacesContentAndMovesCaret(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()
	doc := NewDocument()
	paragraphWith(doc, "old")
	doc.Select(doc.FirstChild(doc.Root()), 0)

	reg.Import(doc, doc.Root(), "# new")

	if got := doc.TextContent(doc.Root()); got != "new" {
		t.Errorf("TextContent() = %q, want %q", got, "new")
	}
	sel, ok := doc.Selection()
	if !ok {
		t.Fatal("selection lost")
	}
	if want := (Point{Node: doc.LastDescendant(doc.Root()), Offset: 3}); sel.Anchor != want {
		t.Errorf("caret = %+v, want %+v", sel.Anchor, want)
	}
}

func TestImportWithoutRules(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry(nil) unexpected error: %v", err)
	}
	doc := reg.ImportString("# not a heading\n**plain**")
	want := NodeSnapshot{Kind: "root", Children: []NodeSnapshot{
		{Kind: "paragraph", Children: []NodeSnapshot{
			textSnap("# not a heading", 0),
			{Kind: "linebreak"},
			textSnap("**plain**", 0),
		}},
	}}
	if diff := cmp.Diff(want, doc.Snapshot(doc.Root())); diff != "" {
		t.Errorf("ImportString() mismatch (-want +got):\n%s", diff)
	}
}

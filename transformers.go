package mdrich

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// listIndentSize is the number of leading spaces per list nesting level.
const listIndentSize = 4

// Element rules.
var (
	Heading = &ElementTransformer{
		Name:         "heading",
		Dependencies: []NodeKind{KindHeading},
		Pattern:      regexp.MustCompile(`^(#{1,6})\s`),
		Replace: blockReplace(func(doc *Document, match []string) NodeID {
			return doc.NewHeading(len(match[1]))
		}),
		Export: func(doc *Document, n NodeID, exportChildren func(NodeID) string) (string, bool) {
			if !doc.Is(n, KindHeading) {
				return "", false
			}
			return strings.Repeat("#", doc.Level(n)) + " " + exportChildren(n), true
		},
	}

	Quote = &ElementTransformer{
		Name:         "quote",
		Dependencies: []NodeKind{KindQuote},
		Pattern:      regexp.MustCompile(`^>\s`),
		Replace:      quoteReplace,
		Export: func(doc *Document, n NodeID, exportChildren func(NodeID) string) (string, bool) {
			if !doc.Is(n, KindQuote) {
				return "", false
			}
			lines := strings.Split(exportChildren(n), "\n")
			for i, line := range lines {
				lines[i] = "> " + line
			}
			return strings.Join(lines, "\n"), true
		},
	}

	Code = &ElementTransformer{
		Name:         "code",
		Dependencies: []NodeKind{KindCodeBlock},
		Pattern:      regexp.MustCompile("^```(\\w{1,10})?\\s"),
		Replace: blockReplace(func(doc *Document, match []string) NodeID {
			language := ""
			if len(match) > 1 {
				language = match[1]
			}
			return doc.NewCodeBlock(language)
		}),
		Export: func(doc *Document, n NodeID, _ func(NodeID) string) (string, bool) {
			if !doc.Is(n, KindCodeBlock) {
				return "", false
			}
			var sb strings.Builder
			sb.WriteString("```")
			sb.WriteString(doc.Language(n))
			if content := doc.TextContent(n); content != "" {
				sb.WriteString("\n")
				sb.WriteString(content)
			}
			sb.WriteString("\n```")
			return sb.String(), true
		},
	}

	UnorderedList = &ElementTransformer{
		Name:         "unorderedList",
		Dependencies: []NodeKind{KindList, KindListItem},
		Pattern:      regexp.MustCompile(`^(\s*)[-*+]\s`),
		Replace:      listReplace(ListBullet),
		Export:       listExportFunc,
	}

	OrderedList = &ElementTransformer{
		Name:         "orderedList",
		Dependencies: []NodeKind{KindList, KindListItem},
		Pattern:      regexp.MustCompile(`^(\s*)(\d{1,})\.\s`),
		Replace:      listReplace(ListNumber),
		Export:       listExportFunc,
	}

	// CheckList is not part of the default set. Register it before
	// UnorderedList, which would otherwise claim "- [ ] " lines.
	CheckList = &ElementTransformer{
		Name:         "checkList",
		Dependencies: []NodeKind{KindList, KindListItem},
		Pattern:      regexp.MustCompile(`(?i)^(\s*)(?:-\s)?\s?(\[(\s|x)?\])\s`),
		Replace:      listReplace(ListCheck),
		Export:       listExportFunc,
	}
)

// Text format rules. Code goes first so nothing inside a code span is
// transformed; longer tags precede their prefixes.
var (
	InlineCode           = &TextFormatTransformer{Name: "inlineCode", Tag: "`", Format: FormatCode}
	BoldItalicStar       = &TextFormatTransformer{Name: "boldItalicStar", Tag: "***", Format: FormatBold | FormatItalic}
	BoldItalicUnderscore = &TextFormatTransformer{Name: "boldItalicUnderscore", Tag: "___", Format: FormatBold | FormatItalic, DisallowIntraword: true}
	BoldStar             = &TextFormatTransformer{Name: "boldStar", Tag: "**", Format: FormatBold}
	BoldUnderscore       = &TextFormatTransformer{Name: "boldUnderscore", Tag: "__", Format: FormatBold, DisallowIntraword: true}
	Highlight            = &TextFormatTransformer{Name: "highlight", Tag: "==", Format: FormatHighlight}
	ItalicStar           = &TextFormatTransformer{Name: "italicStar", Tag: "*", Format: FormatItalic}
	ItalicUnderscore     = &TextFormatTransformer{Name: "italicUnderscore", Tag: "_", Format: FormatItalic, DisallowIntraword: true}
	Strikethrough        = &TextFormatTransformer{Name: "strikethrough", Tag: "~~", Format: FormatStrikethrough}
)

const linkPattern = `(?:\[([^\[]+)\])(?:\((?:([^()\s]+)(?:\s"((?:[^"]*\\")*[^"]*)"\s*)?)\))`

// Link turns [text](url "title") into a link node.
var Link = &TextMatchTransformer{
	Name:          "link",
	Dependencies:  []NodeKind{KindLink},
	Trigger:       ')',
	ImportPattern: regexp.MustCompile(linkPattern),
	Pattern:       regexp.MustCompile(linkPattern + `$`),
	Replace: func(doc *Document, text NodeID, match []string) {
		title := ""
		if len(match) > 3 {
			title = match[3]
		}
		link := doc.NewLink(match[2], title)
		label := doc.NewText(match[1])
		doc.SetFormat(label, doc.Format(text))
		doc.Append(link, label)
		doc.Replace(text, link)
	},
	Export: func(doc *Document, n NodeID, _ func(NodeID) string, exportFormat func(NodeID, string) string) (string, bool) {
		if !doc.Is(n, KindLink) {
			return "", false
		}
		content := "[" + doc.TextContent(n) + "](" + doc.URL(n) + ")"
		if title := doc.Title(n); title != "" {
			content = "[" + doc.TextContent(n) + "](" + doc.URL(n) + ` "` + title + `")`
		}
		// Markdown has no nested styles inside links, so only a lone run
		// contributes its format.
		if first := doc.FirstChild(n); doc.ChildCount(n) == 1 && doc.Is(first, KindText) {
			return exportFormat(first, content), true
		}
		return content, true
	},
}

// ElementTransformers returns the default element rules in match order.
func ElementTransformers() []Transformer {
	return []Transformer{Heading, Quote, Code, UnorderedList, OrderedList}
}

// TextFormatTransformers returns the default text format rules in match order.
func TextFormatTransformers() []Transformer {
	return []Transformer{
		InlineCode,
		BoldItalicStar,
		BoldItalicUnderscore,
		BoldStar,
		BoldUnderscore,
		Highlight,
		ItalicStar,
		ItalicUnderscore,
		Strikethrough,
	}
}

// TextMatchTransformers returns the default text match rules.
func TextMatchTransformers() []Transformer {
	return []Transformer{Link}
}

// DefaultTransformers returns every default rule: elements, then text
// formats, then text matches.
func DefaultTransformers() []Transformer {
	all := ElementTransformers()
	all = append(all, TextFormatTransformers()...)
	return append(all, TextMatchTransformers()...)
}

var rulesByName = func() map[string]Transformer {
	m := make(map[string]Transformer)
	for _, t := range append(DefaultTransformers(), CheckList) {
		m[TransformerName(t)] = t
	}
	return m
}()

// Lookup returns the built-in rule with the given name.
func Lookup(name string) (Transformer, error) {
	t, ok := rulesByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransformer, name)
	}
	return t, nil
}

// TransformerNames returns the names of every built-in rule.
func TransformerNames() []string {
	names := make([]string, 0, len(rulesByName))
	for _, t := range append(DefaultTransformers(), CheckList) {
		names = append(names, TransformerName(t))
	}
	return names
}

// blockReplace builds a replace func that moves the children into a new
// block node taking the paragraph's place.
func blockReplace(create func(doc *Document, match []string) NodeID) ElementReplaceFunc {
	return func(doc *Document, parent NodeID, children []NodeID, match []string, _ bool) {
		block := create(doc, match)
		doc.Append(block, children...)
		doc.Replace(parent, block)
		doc.SelectStart(block)
	}
}

func quoteReplace(doc *Document, parent NodeID, children []NodeID, match []string, isImport bool) {
	if isImport {
		if prev := doc.PrevSibling(parent); doc.Is(prev, KindQuote) {
			doc.Append(prev, doc.NewLineBreak())
			doc.Append(prev, children...)
			doc.Remove(parent)
			doc.SelectStart(prev)
			return
		}
	}
	blockReplace(func(doc *Document, _ []string) NodeID { return doc.NewQuote() })(doc, parent, children, match, isImport)
}

// listReplace joins an adjacent list of the same type when there is one and
// nests the new item by its leading indentation.
func listReplace(t ListType) ElementReplaceFunc {
	return func(doc *Document, parent NodeID, children []NodeID, match []string, _ bool) {
		checked := CheckNone
		if t == ListCheck {
			checked = CheckUnchecked
			if len(match) > 3 && match[3] == "x" {
				checked = CheckChecked
			}
		}
		item := doc.NewListItem(checked)

		prev, next := doc.PrevSibling(parent), doc.NextSibling(parent)
		switch {
		case doc.Is(next, KindList) && doc.ListType(next) == t:
			if first := doc.FirstChild(next); first != NoNode {
				doc.InsertBefore(first, item)
			} else {
				doc.Append(next, item)
			}
			doc.Remove(parent)
		case doc.Is(prev, KindList) && doc.ListType(prev) == t:
			doc.Append(prev, item)
			doc.Remove(parent)
		default:
			start := 1
			if t == ListNumber && len(match) > 2 {
				if n, err := strconv.Atoi(match[2]); err == nil {
					start = n
				}
			}
			list := doc.NewList(t, start)
			doc.Append(list, item)
			doc.Replace(parent, list)
		}

		doc.Append(item, children...)
		doc.SelectStart(item)
		if indent := len(match[1]) / listIndentSize; indent > 0 {
			doc.SetIndent(item, indent)
		}
	}
}

func listExportFunc(doc *Document, n NodeID, exportChildren func(NodeID) string) (string, bool) {
	if !doc.Is(n, KindList) {
		return "", false
	}
	return listExport(doc, n, exportChildren, 0), true
}

func listExport(doc *Document, list NodeID, exportChildren func(NodeID) string, depth int) string {
	var out []string
	index := 0
	for _, item := range doc.Children(list) {
		if !doc.Is(item, KindListItem) {
			continue
		}
		if first := doc.FirstChild(item); doc.ChildCount(item) == 1 && doc.Is(first, KindList) {
			out = append(out, listExport(doc, first, exportChildren, depth+1))
			continue
		}
		indent := strings.Repeat(" ", depth*listIndentSize)
		var prefix string
		switch doc.ListType(list) {
		case ListNumber:
			prefix = strconv.Itoa(doc.ListStart(list)+index) + ". "
		case ListCheck:
			if doc.Checked(item) == CheckChecked {
				prefix = "- [x] "
			} else {
				prefix = "- [ ] "
			}
		default:
			prefix = "- "
		}
		out = append(out, indent+prefix+exportChildren(item))
		index++
	}
	return strings.Join(out, "\n")
}

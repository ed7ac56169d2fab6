package mdrich

import (
	"regexp"
	"strings"
)

var (
	codeFencePattern = regexp.MustCompile("^```(\\w{1,10})?\\s?$")
	emptyLinePattern = regexp.MustCompile(`^\s{0,3}$`)
)

// Import replaces the children of root with the blocks parsed from markdown.
// Fenced code blocks are taken verbatim; every other line becomes a block
// through the element rules, then its text is resolved into formatted runs
// and text matches. Plain lines continue a preceding paragraph, quote or list.
func (r *Registry) Import(doc *Document, root NodeID, markdown string) {
	doc.Clear(root)
	lines := strings.Split(markdown, "\n")
	for i := 0; i < len(lines); i++ {
		if end, ok := r.importCodeBlock(doc, root, lines, i); ok {
			i = end
			continue
		}
		r.importBlock(doc, root, lines[i])
	}

	// Blank lines only delimit blocks.
	for _, c := range doc.Children(root) {
		if r.isEmptyParagraph(doc, c) {
			doc.Remove(c)
		}
	}
	if _, ok := doc.Selection(); ok {
		doc.SelectEnd(root)
	}
}

// ImportString parses markdown into a new, normalized document.
func (r *Registry) ImportString(markdown string) *Document {
	doc := NewDocument()
	r.Import(doc, doc.Root(), markdown)
	doc.Normalize(doc.Root())
	return doc
}

func (r *Registry) isEmptyParagraph(doc *Document, id NodeID) bool {
	if !doc.Is(id, KindParagraph) {
		return false
	}
	first := doc.FirstChild(id)
	return first == NoNode ||
		(doc.ChildCount(id) == 1 && doc.Is(first, KindText) && emptyLinePattern.MatchString(doc.Text(first)))
}

// importCodeBlock consumes a fenced block starting at line start, returning
// the index of the closing fence. An unclosed fence is not a code block.
func (r *Registry) importCodeBlock(doc *Document, root NodeID, lines []string, start int) (int, bool) {
	open := codeFencePattern.FindStringSubmatch(lines[start])
	if open == nil {
		return start, false
	}
	for end := start + 1; end < len(lines); end++ {
		if !codeFencePattern.MatchString(lines[end]) {
			continue
		}
		block := doc.NewCodeBlock(open[1])
		doc.Append(block, doc.NewText(strings.Join(lines[start+1:end], "\n")))
		doc.Append(root, block)
		return end, true
	}
	return start, false
}

func (r *Registry) importBlock(doc *Document, root NodeID, line string) {
	trimmed := strings.TrimSpace(line)
	text := doc.NewText(trimmed)
	paragraph := doc.NewParagraph()
	doc.Append(paragraph, text)
	doc.Append(root, paragraph)

	for _, t := range r.elements {
		match := t.Pattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		doc.SetText(text, line[len(match[0]):])
		t.Replace(doc, paragraph, []NodeID{text}, match, true)
		break
	}

	r.importTextFormats(doc, text)

	// A plain line continues the block before it.
	if !doc.IsAttached(paragraph) || trimmed == "" {
		return
	}
	prev := doc.PrevSibling(paragraph)
	if !doc.Is(prev, KindParagraph) && !doc.Is(prev, KindQuote) && !doc.Is(prev, KindList) {
		return
	}
	target := prev
	if doc.Is(prev, KindList) {
		target = NoNode
		if last := doc.LastDescendant(prev); last != NoNode {
			target = doc.FindParent(last, KindListItem)
		}
	}
	if target == NoNode || doc.TextContent(target) == "" {
		return
	}
	doc.Append(target, doc.NewLineBreak())
	doc.Append(target, doc.Children(paragraph)...)
	doc.Remove(paragraph)
}

// importTextFormats resolves the outermost tag span of a run, then recurses
// into the content (unless it is code) and into the text around it. Runs
// without spans go to the text match rules.
func (r *Registry) importTextFormats(doc *Document, text NodeID) {
	content := doc.Text(text)
	m, t, ok := r.findOutermostMatch(content)
	if !ok {
		r.importTextMatches(doc, text)
		return
	}

	var current, leading, remainder NodeID
	switch {
	case m.start == 0 && m.end == len(content):
		current = text
	case m.start == 0:
		parts := doc.SplitText(text, m.end)
		current, remainder = parts[0], parts[1]
	default:
		parts := doc.SplitText(text, m.start, m.end)
		leading, current = parts[0], parts[1]
		if len(parts) > 2 {
			remainder = parts[2]
		}
	}

	doc.SetText(current, m.content)
	for _, f := range t.Format.Flags() {
		if !doc.HasFormat(current, f) {
			doc.ToggleFormat(current, f)
		}
	}

	if !doc.HasFormat(current, FormatCode) {
		r.importTextFormats(doc, current)
	}
	if leading != NoNode {
		r.importTextFormats(doc, leading)
	}
	if remainder != NoNode {
		r.importTextFormats(doc, remainder)
	}
}

// importTextMatches replaces every text match in a run, working through the
// parts produced by its own splits.
func (r *Registry) importTextMatches(doc *Document, text NodeID) {
	for text != NoNode {
		matched := false
		for _, t := range r.textMatches {
			content := doc.Text(text)
			loc := t.ImportPattern.FindStringSubmatchIndex(content)
			if loc == nil {
				continue
			}
			match := submatches(content, loc)
			start, end := loc[0], loc[1]

			var target, left, right NodeID
			if start == 0 {
				parts := doc.SplitText(text, end)
				target = parts[0]
				if len(parts) > 1 {
					right = parts[1]
				}
			} else {
				parts := doc.SplitText(text, start, end)
				left, target = parts[0], parts[1]
				if len(parts) > 2 {
					right = parts[2]
				}
			}
			if left != NoNode {
				r.importTextMatches(doc, left)
			}
			text = right
			t.Replace(doc, target, match)
			matched = true
			break
		}
		if !matched {
			return
		}
	}
}

// submatches expands an index slice into strings, leaving unmatched groups
// empty.
func submatches(s string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := range out {
		if loc[2*i] >= 0 {
			out[i] = s[loc[2*i]:loc[2*i+1]]
		}
	}
	return out
}

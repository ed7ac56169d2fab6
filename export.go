package mdrich

import "strings"

// Export renders the children of root as markdown, one block per top-level
// child, separated by blank lines.
func (r *Registry) Export(doc *Document, root NodeID) string {
	var out []string
	for _, c := range doc.Children(root) {
		if s, ok := r.exportTopLevel(doc, c); ok {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n\n")
}

// ExportString renders the whole document.
func (r *Registry) ExportString(doc *Document) string {
	return r.Export(doc, doc.Root())
}

func (r *Registry) exportTopLevel(doc *Document, n NodeID) (string, bool) {
	exportChildren := func(id NodeID) string { return r.exportChildren(doc, id) }
	for _, t := range r.elements {
		if s, ok := t.Export(doc, n, exportChildren); ok {
			return s, true
		}
	}
	switch {
	case doc.IsElement(n):
		return r.exportChildren(doc, n), true
	case doc.Is(n, KindDecorator):
		return doc.Text(n), true
	}
	return "", false
}

func (r *Registry) exportChildren(doc *Document, n NodeID) string {
	exportChildren := func(id NodeID) string { return r.exportChildren(doc, id) }
	exportFormat := func(text NodeID, content string) string { return r.exportTextFormat(doc, text, content) }

	var sb strings.Builder
next:
	for _, c := range doc.Children(n) {
		for _, t := range r.textMatches {
			if t.Export == nil {
				continue
			}
			if s, ok := t.Export(doc, c, exportChildren, exportFormat); ok {
				sb.WriteString(s)
				continue next
			}
		}
		switch {
		case doc.Is(c, KindLineBreak):
			sb.WriteString("\n")
		case doc.Is(c, KindText):
			sb.WriteString(r.exportTextFormat(doc, c, doc.Text(c)))
		case doc.IsElement(c):
			sb.WriteString(r.exportChildren(doc, c))
		case doc.Is(c, KindDecorator):
			sb.WriteString(doc.Text(c))
		}
	}
	return sb.String()
}

// exportTextFormat wraps content in the tags of the run's format. Tags hug
// the trimmed content, and a tag is left open or closed when the neighbouring
// run carries the same flag. Each flag is written once even when several
// tags express it.
func (r *Registry) exportTextFormat(doc *Document, text NodeID, content string) string {
	trimmed := strings.TrimSpace(content)
	output := trimmed
	var applied Format
	for _, t := range r.exportFormats {
		f := t.Format
		if !doc.HasFormat(text, f) || applied.Has(f) {
			continue
		}
		applied |= f
		if !doc.HasFormat(textSibling(doc, text, true), f) {
			output = t.Tag + output
		}
		if !doc.HasFormat(textSibling(doc, text, false), f) {
			output += t.Tag
		}
	}
	return strings.Replace(content, trimmed, output, 1)
}

// textSibling returns the nearest text run before (or after) text, looking
// into inline elements such as links.
func textSibling(doc *Document, text NodeID, backward bool) NodeID {
	step := func(id NodeID) NodeID {
		if backward {
			return doc.PrevSibling(id)
		}
		return doc.NextSibling(id)
	}

	sibling := step(text)
	if sibling == NoNode {
		if parent := doc.Parent(text); parent != NoNode && doc.IsInline(parent) {
			sibling = step(parent)
		}
	}
	for sibling != NoNode {
		if doc.IsElement(sibling) {
			if !doc.IsInline(sibling) {
				break
			}
			var descendant NodeID
			if backward {
				descendant = doc.LastDescendant(sibling)
			} else {
				descendant = doc.FirstDescendant(sibling)
			}
			if doc.Is(descendant, KindText) {
				return descendant
			}
			sibling = step(sibling)
			continue
		}
		if doc.Is(sibling, KindText) {
			return sibling
		}
		return NoNode
	}
	return NoNode
}

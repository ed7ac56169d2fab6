package mdrich

import (
	"log/slog"
)

// ShortcutDetector applies markdown rules at the caret while the user types.
// It looks only at the run holding the caret (and, for text formats, the
// runs before it on the same line).
type ShortcutDetector struct {
	reg *Registry
}

// NewShortcutDetector creates a detector for the rules in reg.
func NewShortcutDetector(reg *Registry) *ShortcutDetector {
	return &ShortcutDetector{reg: reg}
}

// Transform tries, in order, an element rule, a text match rule and a text
// format rule at the caret offset inside anchor, whose parent is parent. It
// reports whether one fired. Doing nothing is the common case.
func (s *ShortcutDetector) Transform(doc *Document, parent, anchor NodeID, offset int) bool {
	switch {
	case s.runElement(doc, parent, anchor, offset):
	case s.runTextMatch(doc, anchor, offset):
	case s.runTextFormat(doc, anchor, offset):
	default:
		return false
	}
	return true
}

// runElement converts a root-level paragraph whose first run starts with a
// block prefix ending in the space just typed.
func (s *ShortcutDetector) runElement(doc *Document, parent, anchor NodeID, offset int) bool {
	if !doc.IsRootOrShadowRoot(doc.Parent(parent)) || doc.FirstChild(parent) != anchor {
		return false
	}
	text := doc.Text(anchor)
	if r, _ := runeBefore(text, offset); r != ' ' {
		return false
	}
	for _, t := range s.reg.elements {
		loc := t.Pattern.FindStringSubmatchIndex(text)
		if loc == nil || loc[0] != 0 || loc[1] != offset {
			continue
		}
		match := submatches(text, loc)
		siblings := doc.NextSiblings(anchor)
		parts := doc.SplitText(anchor, offset)
		doc.Remove(parts[0])
		if len(parts) > 1 {
			siblings = append([]NodeID{parts[1]}, siblings...)
		}
		t.Replace(doc, parent, siblings, match, false)
		s.reg.logger.Debug("shortcut applied", slog.String("rule", t.Name))
		return true
	}
	return false
}

// runTextMatch replaces a pattern ending at the trigger character just typed.
// Text after the caret is ignored.
func (s *ShortcutDetector) runTextMatch(doc *Document, anchor NodeID, offset int) bool {
	text := doc.Text(anchor)
	trigger, _ := runeBefore(text, offset)
	rules := s.reg.matchesByTrigger[trigger]
	if len(rules) == 0 {
		return false
	}
	text = text[:offset]
	for _, t := range rules {
		loc := t.Pattern.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		match := submatches(text, loc)
		var target NodeID
		if loc[0] == 0 {
			target = doc.SplitText(anchor, loc[1])[0]
		} else {
			target = doc.SplitText(anchor, loc[0], loc[1])[1]
		}
		doc.SelectNext(target)
		t.Replace(doc, target, match)
		s.reg.logger.Debug("shortcut applied", slog.String("rule", t.Name))
		return true
	}
	return false
}

// runTextFormat formats the span between a close tag just completed and its
// open tag, searching back through the runs of the current line.
func (s *ShortcutDetector) runTextFormat(doc *Document, anchor NodeID, offset int) bool {
	text := doc.Text(anchor)
	closeChar, size := runeBefore(text, offset)
	if size != 1 {
		return false
	}
	closeEnd := offset

	for _, t := range s.reg.formatsByLastChar[byte(closeChar)] {
		tag := t.Tag
		closeStart := closeEnd - len(tag)
		if closeStart < 0 || text[closeStart:closeEnd] != tag {
			continue
		}
		// A space before the close tag cancels the span.
		if closeStart > 0 && text[closeStart-1] == ' ' {
			continue
		}
		if isEscaped(text, closeStart) {
			continue
		}
		if after, asize := runeAt(text, closeEnd); t.DisallowIntraword && asize > 0 && !isPunctuationOrSpace(after) {
			continue
		}

		openNode := anchor
		openStart := openTagStart(text, closeStart, tag)
		for sibling := anchor; openStart < 0; {
			if sibling = doc.PrevSibling(sibling); sibling == NoNode || doc.Is(sibling, KindLineBreak) {
				break
			}
			if doc.Is(sibling, KindText) {
				st := doc.Text(sibling)
				openNode = sibling
				openStart = openTagStart(st, len(st), tag)
			}
		}
		if openStart < 0 {
			continue
		}
		if openNode == anchor && openStart+len(tag) == closeStart {
			continue
		}
		openText := doc.Text(openNode)
		if before, bsize := runeBefore(openText, openStart); bsize > 0 {
			// Repeated delimiters belong to a longer tag (*** vs **).
			if before == closeChar {
				continue
			}
			if t.DisallowIntraword && !isPunctuationOrSpace(before) {
				continue
			}
		}

		// Strip the close tag first so the open offset stays valid.
		closeText := text[:closeStart] + text[closeEnd:]
		doc.SetText(anchor, closeText)
		if openNode == anchor {
			openText = closeText
		}
		doc.SetText(openNode, openText[:openStart]+openText[openStart+len(tag):])

		prev, hadSelection := doc.Selection()
		focus := closeStart - len(tag)
		if openNode != anchor {
			focus = closeStart
		}
		doc.SetSelection(Selection{
			Anchor: Point{Node: openNode, Offset: openStart},
			Focus:  Point{Node: anchor, Offset: focus},
		})
		flags := t.Format.Flags()
		for _, f := range flags {
			doc.FormatSelection(f)
		}

		sel, _ := doc.Selection()
		sel.Anchor = sel.Focus
		for _, f := range flags {
			sel.Format &^= f
		}
		if hadSelection {
			sel.Format = prev.Format
		}
		doc.SetSelection(sel)
		s.reg.logger.Debug("shortcut applied", slog.String("rule", t.Name))
		return true
	}
	return false
}

// openTagStart returns the start of the last unescaped tag ending at or
// before maxIndex that is not followed by a space, or -1.
func openTagStart(s string, maxIndex int, tag string) int {
	n := len(tag)
	for i := maxIndex; i >= n; i-- {
		start := i - n
		if s[start:i] != tag {
			continue
		}
		if i < len(s) && s[i] == ' ' {
			continue
		}
		if start > 0 && s[start-1] == '\\' {
			continue
		}
		return start
	}
	return -1
}

// isEscaped reports whether the byte at i follows a lone backslash.
func isEscaped(s string, i int) bool {
	return i > 0 && s[i-1] == '\\' && (i < 2 || s[i-2] != '\\')
}

// RegisterShortcuts attaches a shortcut detector for reg to ed. It fails
// with ErrMissingDependency, installing nothing, when ed lacks a node kind a
// rule needs. The returned func detaches the detector.
func RegisterShortcuts(ed *Editor, reg *Registry) (func(), error) {
	if ed == nil {
		return nil, ErrNilEditor
	}
	if reg == nil {
		return nil, ErrNilRegistry
	}
	if err := reg.ValidateDependencies(ed); err != nil {
		return nil, err
	}

	detector := NewShortcutDetector(reg)
	return ed.RegisterUpdateListener(func(ed *Editor, ev UpdateEvent) {
		// Undo and redo replay changes already transformed.
		if ev.HasTag(TagHistoric) || ev.HasTag(TagShortcut) {
			return
		}
		// Wait until a composition is confirmed.
		if ed.IsComposing() {
			return
		}
		if ev.Selection == nil || ev.PrevSelection == nil || !ev.Selection.IsCollapsed() {
			return
		}

		doc := ed.Document()
		anchor, offset := ev.Selection.Anchor.Node, ev.Selection.Anchor.Offset
		if !doc.Is(anchor, KindText) || !ev.IsDirty(anchor) {
			return
		}
		// Only a caret advanced by one character can complete a shortcut.
		_, typed := runeBefore(doc.Text(anchor), offset)
		if offset != typed && offset > ev.PrevSelection.Anchor.Offset+typed {
			return
		}

		ed.Update(func(doc *Document) {
			if !doc.Is(anchor, KindText) || doc.HasFormat(anchor, FormatCode) {
				return
			}
			parent := doc.Parent(anchor)
			if parent == NoNode || doc.Is(parent, KindCodeBlock) {
				return
			}
			detector.Transform(doc, parent, anchor, offset)
		}, TagShortcut)
	}), nil
}

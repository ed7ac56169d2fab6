package mdrich

import "unicode/utf8"

// Point is a caret position. For text runs Offset is a byte offset into the
// run; for elements it is a child index.
type Point struct {
	Node   NodeID
	Offset int
}

// Selection is a range between two points. Format is the active format set
// applied to text typed at a collapsed caret.
type Selection struct {
	Anchor Point
	Focus  Point
	Format Format
}

// IsCollapsed reports whether anchor and focus coincide.
func (s Selection) IsCollapsed() bool {
	return s.Anchor == s.Focus
}

// Selection returns the current selection, if any.
func (d *Document) Selection() (Selection, bool) {
	if d.sel == nil {
		return Selection{}, false
	}
	return *d.sel, true
}

// SetSelection installs sel.
func (d *Document) SetSelection(sel Selection) {
	d.sel = &sel
}

// ClearSelection removes the selection.
func (d *Document) ClearSelection() {
	d.sel = nil
}

// Select installs a collapsed caret. For text runs the active format becomes
// the run's format.
func (d *Document) Select(id NodeID, offset int) {
	p := Point{Node: id, Offset: offset}
	sel := Selection{Anchor: p, Focus: p}
	if d.Is(id, KindText) {
		sel.Format = d.nodes[id].format
	}
	d.sel = &sel
}

// SelectRange installs a range selection between two points.
func (d *Document) SelectRange(anchor, focus Point) {
	format := Format(0)
	if d.sel != nil {
		format = d.sel.Format
	}
	d.sel = &Selection{Anchor: anchor, Focus: focus, Format: format}
}

// SelectStart places the caret before the first leaf of id.
func (d *Document) SelectStart(id NodeID) {
	if leaf := d.FirstDescendant(id); d.Is(leaf, KindText) {
		d.Select(leaf, 0)
		return
	}
	d.Select(id, 0)
}

// SelectEnd places the caret after the last leaf of id.
func (d *Document) SelectEnd(id NodeID) {
	if leaf := d.LastDescendant(id); d.Is(leaf, KindText) {
		d.Select(leaf, len(d.nodes[leaf].text))
		return
	}
	d.Select(id, d.rec(id).size)
}

// SelectNext places the caret at the start of the node following id, or after
// id in its parent when id is the last child.
func (d *Document) SelectNext(id NodeID) {
	if next := d.rec(id).next; next != NoNode {
		if d.Is(next, KindText) {
			d.Select(next, 0)
			return
		}
		d.Select(d.nodes[id].parent, d.IndexOf(next))
		return
	}
	p := d.nodes[id].parent
	d.Select(p, d.IndexOf(id)+1)
}

// FormatSelection sets flag f on every text run covered by a range selection,
// splitting the runs at the selection edges. The selection is moved onto the
// formatted runs and f joins its active format. It reports whether any text
// was formatted.
func (d *Document) FormatSelection(f Format) bool {
	if d.sel == nil || d.sel.IsCollapsed() {
		return false
	}
	start, end := d.sel.Anchor, d.sel.Focus
	backward := d.precedes(end, start)
	if backward {
		start, end = end, start
	}
	if !d.Is(start.Node, KindText) || !d.Is(end.Node, KindText) {
		return false
	}

	var runs []NodeID
	if start.Node == end.Node {
		parts := d.SplitText(start.Node, start.Offset, end.Offset)
		if start.Offset > 0 && len(parts) > 1 {
			runs = append(runs, parts[1])
		} else {
			runs = append(runs, parts[0])
		}
	} else {
		var between []NodeID
		for c := d.nextInOrder(start.Node); c != NoNode && c != end.Node; c = d.nextInOrder(c) {
			if d.Is(c, KindText) {
				between = append(between, c)
			}
		}
		if start.Offset < len(d.nodes[start.Node].text) {
			parts := d.SplitText(start.Node, start.Offset)
			runs = append(runs, parts[len(parts)-1])
		}
		runs = append(runs, between...)
		if end.Offset > 0 {
			runs = append(runs, d.SplitText(end.Node, end.Offset)[0])
		}
	}
	if len(runs) == 0 {
		return false
	}

	for _, r := range runs {
		d.nodes[r].format |= f
		d.markDirty(r)
	}
	first, last := runs[0], runs[len(runs)-1]
	anchor := Point{Node: first, Offset: 0}
	focus := Point{Node: last, Offset: len(d.nodes[last].text)}
	if backward {
		anchor, focus = focus, anchor
	}
	d.sel.Anchor, d.sel.Focus = anchor, focus
	d.sel.Format |= f
	return true
}

// nextInOrder returns the node after id in a pre-order walk of the document.
func (d *Document) nextInOrder(id NodeID) NodeID {
	if first := d.rec(id).first; first != NoNode {
		return first
	}
	for c := id; c != NoNode; c = d.nodes[c].parent {
		if next := d.nodes[c].next; next != NoNode {
			return next
		}
	}
	return NoNode
}

// path returns the child indices leading from the root to id.
func (d *Document) path(id NodeID) []int {
	var rev []int
	for c := id; d.nodes[c].parent != NoNode; c = d.nodes[c].parent {
		rev = append(rev, d.IndexOf(c))
	}
	out := make([]int, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}

// precedes reports whether point a comes strictly before point b.
func (d *Document) precedes(a, b Point) bool {
	if a.Node == b.Node {
		return a.Offset < b.Offset
	}
	pa, pb := d.path(a.Node), d.path(b.Node)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			return pa[i] < pb[i]
		}
	}
	return len(pa) < len(pb)
}

// Selection bookkeeping used by structural edits.

func (d *Document) points() []*Point {
	if d.sel == nil {
		return nil
	}
	return []*Point{&d.sel.Anchor, &d.sel.Focus}
}

func (d *Document) selectionTouches(id NodeID) bool {
	for _, p := range d.points() {
		if p.Node == id {
			return true
		}
	}
	return false
}

func (d *Document) clampSelection(id NodeID, length int) {
	for _, p := range d.points() {
		if p.Node == id && p.Offset > length {
			p.Offset = length
		}
	}
}

func (d *Document) redistributeSelection(id NodeID, parts []NodeID, bounds []int) {
	for _, p := range d.points() {
		if p.Node != id {
			continue
		}
		for i := range parts {
			if p.Offset <= bounds[i+1] || i == len(parts)-1 {
				p.Node = parts[i]
				p.Offset -= bounds[i]
				break
			}
		}
	}
}

func (d *Document) moveSelectionOff(old, repl NodeID) {
	for _, p := range d.points() {
		if p.Node == old {
			p.Node, p.Offset = repl, 0
		}
	}
}

func (d *Document) moveSelectionInto(from, to NodeID, offset int) {
	for _, p := range d.points() {
		if p.Node == from {
			p.Node = to
			p.Offset += offset
		}
	}
}

// runeBefore decodes the rune ending at byte offset i of s.
func runeBefore(s string, i int) (rune, int) {
	if i <= 0 || i > len(s) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeLastRuneInString(s[:i])
}

// runeAt decodes the rune starting at byte offset i of s.
func runeAt(s string, i int) (rune, int) {
	if i < 0 || i >= len(s) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s[i:])
}

package mdrich

// Editing primitives acting at the selection. A range selection is first
// collapsed to its focus.

// InsertText inserts s at the caret using the active format. Text typed
// with the run's own format extends the run; otherwise a new run is split
// in. It reports whether anything was inserted.
func (d *Document) InsertText(s string) bool {
	p, ok := d.caret()
	if !ok || s == "" {
		return false
	}
	format := d.sel.Format

	if d.Is(p.Node, KindText) {
		n := &d.nodes[p.Node]
		if n.format == format {
			n.text = n.text[:p.Offset] + s + n.text[p.Offset:]
			d.markDirty(p.Node)
			d.Select(p.Node, p.Offset+len(s))
			return true
		}
		run := d.alloc(node{kind: KindText, text: s, format: format})
		if p.Offset == 0 {
			d.InsertBefore(p.Node, run)
		} else {
			d.InsertAfter(d.SplitText(p.Node, p.Offset)[0], run)
		}
		d.Select(run, len(s))
		return true
	}

	if !d.IsElement(p.Node) {
		return false
	}
	run := d.alloc(node{kind: KindText, text: s, format: format})
	d.Splice(p.Node, p.Offset, 0, run)
	d.Select(run, len(s))
	return true
}

// InsertLineBreak inserts a line break at the caret and moves the caret
// after it.
func (d *Document) InsertLineBreak() bool {
	p, ok := d.caret()
	if !ok {
		return false
	}
	br := d.NewLineBreak()
	if d.Is(p.Node, KindText) {
		switch {
		case p.Offset == 0:
			d.InsertBefore(p.Node, br)
			d.Select(p.Node, 0)
		case p.Offset >= len(d.nodes[p.Node].text):
			d.InsertAfter(p.Node, br)
			d.SelectNext(br)
		default:
			parts := d.SplitText(p.Node, p.Offset)
			d.InsertAfter(parts[0], br)
			d.Select(parts[1], 0)
		}
		return true
	}
	if !d.IsElement(p.Node) {
		return false
	}
	d.Splice(p.Node, p.Offset, 0, br)
	d.Select(p.Node, p.Offset+1)
	return true
}

// InsertParagraph splits the block holding the caret. Content after the
// caret moves into a new paragraph, or a new item inside lists.
func (d *Document) InsertParagraph() bool {
	p, ok := d.caret()
	if !ok {
		return false
	}

	// Find the inline container and the point where its children split.
	var block NodeID
	moveFrom := NoNode
	switch {
	case d.Is(p.Node, KindText):
		block = d.Parent(p.Node)
		for d.IsInline(block) {
			block = d.Parent(block)
		}
		text := d.nodes[p.Node].text
		switch {
		case p.Offset == 0:
			moveFrom = d.topChild(block, p.Node)
		case p.Offset >= len(text):
			moveFrom = d.nodes[d.topChild(block, p.Node)].next
		default:
			parts := d.SplitText(p.Node, p.Offset)
			moveFrom = parts[1]
			if d.Parent(parts[1]) != block {
				moveFrom = d.nodes[d.topChild(block, p.Node)].next
			}
		}
	case d.IsElement(p.Node):
		block = p.Node
		moveFrom = d.ChildAt(block, p.Offset)
	default:
		return false
	}
	if block == NoNode || d.Is(block, KindRoot) {
		return false
	}

	var next NodeID
	if d.Is(block, KindListItem) {
		next = d.NewListItem(CheckNone)
		if d.Checked(block) != CheckNone {
			d.SetChecked(next, CheckUnchecked)
		}
	} else {
		next = d.NewParagraph()
	}
	d.InsertAfter(block, next)

	if moveFrom != NoNode {
		var moving []NodeID
		for c := moveFrom; c != NoNode; c = d.nodes[c].next {
			moving = append(moving, c)
		}
		d.Append(next, moving...)
	}
	d.SelectStart(next)
	return true
}

// topChild returns the child of block that contains id.
func (d *Document) topChild(block, id NodeID) NodeID {
	c := id
	for d.nodes[c].parent != block {
		c = d.nodes[c].parent
	}
	return c
}

// caret collapses the selection to its focus and returns it.
func (d *Document) caret() (Point, bool) {
	if d.sel == nil {
		return Point{}, false
	}
	if !d.sel.IsCollapsed() {
		d.sel.Anchor = d.sel.Focus
	}
	return d.sel.Focus, true
}

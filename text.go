package mdrich

import (
	"slices"
)

// Text returns the content of a text run (or a decorator's literal text).
func (d *Document) Text(id NodeID) string { return d.rec(id).text }

// SetText replaces a text run's content. Selection points inside the run are
// clamped to the new length.
func (d *Document) SetText(id NodeID, s string) {
	n := d.rec(id)
	n.text = s
	d.markDirty(id)
	d.clampSelection(id, len(s))
}

// Format returns the format flags of a text run.
func (d *Document) Format(id NodeID) Format { return d.rec(id).format }

// SetFormat replaces the format flags of a text run.
func (d *Document) SetFormat(id NodeID, f Format) {
	d.rec(id).format = f
	d.markDirty(id)
}

// HasFormat reports whether id is a text run carrying flag f.
func (d *Document) HasFormat(id NodeID, f Format) bool {
	return d.Is(id, KindText) && d.nodes[id].format.Has(f)
}

// ToggleFormat flips flag f on a text run.
func (d *Document) ToggleFormat(id NodeID, f Format) {
	d.rec(id).format ^= f
	d.markDirty(id)
}

// SplitText cuts a text run at the given byte offsets and returns the parts in
// order. The first part reuses id; offsets at the edges or repeated are
// ignored, so no part is ever empty unless the run itself is. Selection points
// inside the run follow their characters.
func (d *Document) SplitText(id NodeID, offsets ...int) []NodeID {
	n := d.rec(id)
	text := n.text
	cuts := make([]int, 0, len(offsets))
	for _, o := range offsets {
		if o > 0 && o < len(text) {
			cuts = append(cuts, o)
		}
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)
	if len(cuts) == 0 {
		return []NodeID{id}
	}

	parts := make([]NodeID, 0, len(cuts)+1)
	bounds := append(append([]int{0}, cuts...), len(text))
	format := n.format
	n.text = text[:bounds[1]]
	d.markDirty(id)
	parts = append(parts, id)

	prev := id
	for i := 1; i < len(bounds)-1; i++ {
		part := d.alloc(node{kind: KindText, text: text[bounds[i]:bounds[i+1]], format: format})
		if d.nodes[prev].parent != NoNode {
			d.linkAfter(d.nodes[prev].parent, prev, part)
		}
		parts = append(parts, part)
		prev = part
	}
	d.redistributeSelection(id, parts, bounds)
	return parts
}

// Normalize merges adjacent text runs that share a format and drops empty runs
// that do not hold the selection. It walks the whole subtree of id.
func (d *Document) Normalize(id NodeID) {
	var elements []NodeID
	d.Walk(id, func(c NodeID, _ int) bool {
		if d.IsElement(c) {
			elements = append(elements, c)
		}
		return true
	})
	for _, e := range elements {
		d.normalizeChildren(e)
	}
}

func (d *Document) normalizeChildren(parent NodeID) {
	c := d.nodes[parent].first
	for c != NoNode {
		next := d.nodes[c].next
		if d.nodes[c].kind != KindText {
			c = next
			continue
		}
		if d.nodes[c].text == "" && !d.selectionTouches(c) {
			d.detach(c)
			c = next
			continue
		}
		if next != NoNode && d.nodes[next].kind == KindText &&
			d.nodes[next].format == d.nodes[c].format &&
			(d.nodes[next].text != "" || !d.selectionTouches(next)) {
			offset := len(d.nodes[c].text)
			d.nodes[c].text += d.nodes[next].text
			d.markDirty(c)
			d.detach(next)
			d.moveSelectionInto(next, c, offset)
			continue
		}
		c = next
	}
}

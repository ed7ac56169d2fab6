package mdrich

// List nesting is structural: a nested list lives inside a wrapper list item
// whose only child is that list. An item's indent is the number of wrapper
// items above it.

// isNestedList reports whether id is a wrapper list item.
func (d *Document) isNestedList(id NodeID) bool {
	return d.Is(id, KindListItem) && d.Is(d.nodes[id].first, KindList)
}

// Indent returns a list item's nesting depth. Top-level items are at 0.
func (d *Document) Indent(id NodeID) int {
	indent := 0
	for p := d.rec(id).parent; d.Is(p, KindList); {
		item := d.nodes[p].parent
		if !d.Is(item, KindListItem) {
			break
		}
		indent++
		p = d.nodes[item].parent
	}
	return indent
}

// SetIndent moves a list item to the given nesting depth, creating or
// removing wrapper items as needed. Negative depths become 0.
func (d *Document) SetIndent(id NodeID, indent int) {
	indent = max(0, indent)
	for current := d.Indent(id); current != indent; {
		if current < indent {
			if !d.indentItem(id) {
				return
			}
			current++
		} else {
			if !d.outdentItem(id) {
				return
			}
			current--
		}
	}
}

// indentItem pushes an item one level deeper, joining an adjacent nested list
// when there is one.
func (d *Document) indentItem(id NodeID) bool {
	if d.isNestedList(id) {
		return false
	}
	list := d.rec(id).parent
	if !d.Is(list, KindList) {
		return false
	}
	prev, next := d.nodes[id].prev, d.nodes[id].next

	switch {
	case d.isNestedList(prev) && d.isNestedList(next):
		inner := d.nodes[prev].first
		d.Append(inner, id)
		d.Append(inner, d.Children(d.nodes[next].first)...)
		d.Remove(next)
	case d.isNestedList(next):
		inner := d.nodes[next].first
		if first := d.nodes[inner].first; first != NoNode {
			d.InsertBefore(first, id)
		} else {
			d.Append(inner, id)
		}
	case d.isNestedList(prev):
		d.Append(d.nodes[prev].first, id)
	default:
		wrapper := d.NewListItem(CheckNone)
		inner := d.NewList(d.nodes[list].listType, 1)
		d.Append(wrapper, inner)
		switch {
		case prev != NoNode:
			d.InsertAfter(prev, wrapper)
		case next != NoNode:
			d.InsertBefore(next, wrapper)
		default:
			d.Append(list, wrapper)
		}
		d.Append(inner, id)
	}
	return true
}

// outdentItem pulls an item one level up, splitting its list around it when
// it sits in the middle.
func (d *Document) outdentItem(id NodeID) bool {
	if d.isNestedList(id) {
		return false
	}
	list := d.rec(id).parent
	wrapper := NoNode
	if d.Is(list, KindList) {
		wrapper = d.nodes[list].parent
	}
	if !d.Is(wrapper, KindListItem) {
		return false
	}

	switch id {
	case d.nodes[list].first:
		d.InsertBefore(wrapper, id)
		if d.nodes[list].size == 0 {
			d.Remove(wrapper)
		}
	case d.nodes[list].last:
		d.InsertAfter(wrapper, id)
		if d.nodes[list].size == 0 {
			d.Remove(wrapper)
		}
	default:
		t := d.nodes[list].listType
		before, after := d.NewListItem(CheckNone), d.NewListItem(CheckNone)
		beforeList, afterList := d.NewList(t, 1), d.NewList(t, 1)
		d.Append(before, beforeList)
		d.Append(after, afterList)
		var head []NodeID
		for c := d.nodes[list].first; c != id; c = d.nodes[c].next {
			head = append(head, c)
		}
		d.Append(beforeList, head...)
		d.Append(afterList, d.NextSiblings(id)...)
		d.InsertBefore(wrapper, before)
		d.InsertAfter(wrapper, after)
		d.Replace(wrapper, id)
	}
	return true
}

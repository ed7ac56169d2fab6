package mdrich

import "fmt"

// NodeID identifies a node inside a Document. The zero value is NoNode.
type NodeID int32

// NoNode is the absent node.
const NoNode NodeID = 0

// NodeKind is the structural kind of a node.
type NodeKind uint8

// Node kinds.
const (
	KindRoot NodeKind = iota + 1
	KindParagraph
	KindHeading
	KindQuote
	KindCodeBlock
	KindList
	KindListItem
	KindLink
	KindLineBreak
	KindText
	KindDecorator
)

var kindNames = map[NodeKind]string{
	KindRoot:      "root",
	KindParagraph: "paragraph",
	KindHeading:   "heading",
	KindQuote:     "quote",
	KindCodeBlock: "code",
	KindList:      "list",
	KindListItem:  "listitem",
	KindLink:      "link",
	KindLineBreak: "linebreak",
	KindText:      "text",
	KindDecorator: "decorator",
}

// String returns the lowercase kind name.
func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// AllKinds returns every node kind, root first.
func AllKinds() []NodeKind {
	return []NodeKind{
		KindRoot, KindParagraph, KindHeading, KindQuote, KindCodeBlock,
		KindList, KindListItem, KindLink, KindLineBreak, KindText, KindDecorator,
	}
}

// ListType distinguishes bullet, numbered and check lists.
type ListType uint8

// List types.
const (
	ListBullet ListType = iota + 1
	ListNumber
	ListCheck
)

// String returns "bullet", "number" or "check".
func (t ListType) String() string {
	switch t {
	case ListBullet:
		return "bullet"
	case ListNumber:
		return "number"
	case ListCheck:
		return "check"
	}
	return ""
}

// CheckState is the checked state of a list item in a check list.
type CheckState uint8

// Check states. CheckNone is used outside check lists.
const (
	CheckNone CheckState = iota
	CheckUnchecked
	CheckChecked
)

// HeadingLevel bounds.
const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 6
)

// node is one arena record. Links are indices into Document.nodes.
type node struct {
	kind NodeKind

	parent NodeID
	prev   NodeID
	next   NodeID
	first  NodeID
	last   NodeID
	size   int

	text   string // Text content, or literal text for decorators
	format Format

	level    int
	language string
	listType ListType
	start    int
	checked  CheckState
	url      string
	title    string
}

// Document is a mutable rich-text tree stored as a flat arena of node records.
// Splitting and moving nodes only relinks records; removed nodes stay in the
// arena detached from the root until the document is discarded.
//
// A Document is not safe for concurrent mutation.
type Document struct {
	nodes []node
	root  NodeID
	sel   *Selection
	dirty map[NodeID]struct{}
	rev   uint64 // bumped by every structural or content change
}

// NewDocument creates an empty document with a root node.
func NewDocument() *Document {
	d := &Document{nodes: make([]node, 1, 64)}
	d.root = d.alloc(node{kind: KindRoot})
	return d
}

// Clone returns a deep copy of the document, including its selection.
// Node IDs are preserved.
func (d *Document) Clone() *Document {
	c := &Document{
		nodes: make([]node, len(d.nodes)),
		root:  d.root,
		rev:   d.rev,
	}
	copy(c.nodes, d.nodes)
	if d.sel != nil {
		sel := *d.sel
		c.sel = &sel
	}
	return c
}

// Compact returns a deep copy holding only the nodes attached to the root,
// renumbered in document order. Node IDs are not preserved; the selection is
// remapped, or dropped when it points at a detached node.
func (d *Document) Compact() *Document {
	ids := make(map[NodeID]NodeID)
	order := []NodeID{}
	stack := []NodeID{d.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ids[id] = NodeID(len(order) + 1)
		order = append(order, id)
		for c := d.nodes[id].last; c != NoNode; c = d.nodes[c].prev {
			stack = append(stack, c)
		}
	}

	remap := func(id NodeID) NodeID {
		if id == NoNode {
			return NoNode
		}
		return ids[id]
	}
	c := &Document{nodes: make([]node, 1, len(order)+1), root: ids[d.root], rev: d.rev}
	for _, id := range order {
		n := d.nodes[id]
		n.parent, n.prev, n.next = remap(n.parent), remap(n.prev), remap(n.next)
		n.first, n.last = remap(n.first), remap(n.last)
		c.nodes = append(c.nodes, n)
	}
	if d.sel != nil {
		anchor, aok := ids[d.sel.Anchor.Node]
		focus, fok := ids[d.sel.Focus.Node]
		if aok && fok {
			sel := *d.sel
			sel.Anchor.Node, sel.Focus.Node = anchor, focus
			c.sel = &sel
		}
	}
	return c
}

func (d *Document) alloc(n node) NodeID {
	d.nodes = append(d.nodes, n)
	id := NodeID(len(d.nodes) - 1)
	if n.kind == KindText {
		d.markDirty(id)
	}
	return id
}

// rec returns the record for id. An invalid id is a programmer error.
func (d *Document) rec(id NodeID) *node {
	if id <= NoNode || int(id) >= len(d.nodes) {
		panic(fmt.Sprintf("mdrich: invalid node id %d", id))
	}
	return &d.nodes[id]
}

func (d *Document) markDirty(id NodeID) {
	d.rev++
	if d.dirty != nil {
		d.dirty[id] = struct{}{}
	}
}

// Root returns the root node.
func (d *Document) Root() NodeID { return d.root }

// Len returns the number of records in the arena, attached or not.
func (d *Document) Len() int { return len(d.nodes) - 1 }

// Node constructors. New nodes are detached until appended.

// NewParagraph creates a detached paragraph.
func (d *Document) NewParagraph() NodeID { return d.alloc(node{kind: KindParagraph}) }

// NewHeading creates a detached heading. The level is clamped to 1..6.
func (d *Document) NewHeading(level int) NodeID {
	level = max(MinHeadingLevel, min(MaxHeadingLevel, level))
	return d.alloc(node{kind: KindHeading, level: level})
}

// NewQuote creates a detached block quote.
func (d *Document) NewQuote() NodeID { return d.alloc(node{kind: KindQuote}) }

// NewCodeBlock creates a detached code block with an optional language.
func (d *Document) NewCodeBlock(language string) NodeID {
	return d.alloc(node{kind: KindCodeBlock, language: language})
}

// NewList creates a detached list. Numbered lists default to start 1.
func (d *Document) NewList(t ListType, start int) NodeID {
	if start < 1 {
		start = 1
	}
	return d.alloc(node{kind: KindList, listType: t, start: start})
}

// NewListItem creates a detached list item.
func (d *Document) NewListItem(checked CheckState) NodeID {
	return d.alloc(node{kind: KindListItem, checked: checked})
}

// NewLink creates a detached inline link.
func (d *Document) NewLink(url, title string) NodeID {
	return d.alloc(node{kind: KindLink, url: url, title: title})
}

// NewLineBreak creates a detached line break.
func (d *Document) NewLineBreak() NodeID { return d.alloc(node{kind: KindLineBreak}) }

// NewText creates a detached unformatted text run.
func (d *Document) NewText(s string) NodeID { return d.alloc(node{kind: KindText, text: s}) }

// NewDecorator creates a detached opaque node that exports as its literal text.
func (d *Document) NewDecorator(text string) NodeID {
	return d.alloc(node{kind: KindDecorator, text: text})
}

// Kind predicates and attributes.

// Kind returns the node kind.
func (d *Document) Kind(id NodeID) NodeKind { return d.rec(id).kind }

// Is reports whether id is a valid node of kind k. NoNode is never any kind.
func (d *Document) Is(id NodeID, k NodeKind) bool {
	return id > NoNode && int(id) < len(d.nodes) && d.nodes[id].kind == k
}

// IsElement reports whether the node can have children.
func (d *Document) IsElement(id NodeID) bool {
	if id == NoNode {
		return false
	}
	switch d.rec(id).kind {
	case KindRoot, KindParagraph, KindHeading, KindQuote, KindCodeBlock,
		KindList, KindListItem, KindLink:
		return true
	}
	return false
}

// IsInline reports whether the node flows inside a block.
func (d *Document) IsInline(id NodeID) bool {
	if id == NoNode {
		return false
	}
	switch d.rec(id).kind {
	case KindLink, KindText, KindLineBreak, KindDecorator:
		return true
	}
	return false
}

// Level returns a heading's level.
func (d *Document) Level(id NodeID) int { return d.rec(id).level }

// Language returns a code block's language.
func (d *Document) Language(id NodeID) string { return d.rec(id).language }

// ListType returns a list's type.
func (d *Document) ListType(id NodeID) ListType { return d.rec(id).listType }

// ListStart returns a list's first number.
func (d *Document) ListStart(id NodeID) int { return d.rec(id).start }

// Checked returns a list item's check state.
func (d *Document) Checked(id NodeID) CheckState { return d.rec(id).checked }

// SetChecked sets a list item's check state.
func (d *Document) SetChecked(id NodeID, c CheckState) {
	d.rec(id).checked = c
	d.rev++
}

// URL returns a link's destination.
func (d *Document) URL(id NodeID) string { return d.rec(id).url }

// Title returns a link's title.
func (d *Document) Title(id NodeID) string { return d.rec(id).title }

// Navigation.

// Parent returns the parent, or NoNode when detached or root.
func (d *Document) Parent(id NodeID) NodeID { return d.rec(id).parent }

// FirstChild returns the first child or NoNode.
func (d *Document) FirstChild(id NodeID) NodeID { return d.rec(id).first }

// LastChild returns the last child or NoNode.
func (d *Document) LastChild(id NodeID) NodeID { return d.rec(id).last }

// PrevSibling returns the previous sibling or NoNode.
func (d *Document) PrevSibling(id NodeID) NodeID { return d.rec(id).prev }

// NextSibling returns the next sibling or NoNode.
func (d *Document) NextSibling(id NodeID) NodeID { return d.rec(id).next }

// ChildCount returns the number of children.
func (d *Document) ChildCount(id NodeID) int { return d.rec(id).size }

// Children returns a copy of the child list.
func (d *Document) Children(id NodeID) []NodeID {
	n := d.rec(id)
	out := make([]NodeID, 0, n.size)
	for c := n.first; c != NoNode; c = d.nodes[c].next {
		out = append(out, c)
	}
	return out
}

// NextSiblings returns every sibling after id.
func (d *Document) NextSiblings(id NodeID) []NodeID {
	var out []NodeID
	for c := d.rec(id).next; c != NoNode; c = d.nodes[c].next {
		out = append(out, c)
	}
	return out
}

// ChildAt returns the i-th child or NoNode when out of range.
func (d *Document) ChildAt(id NodeID, i int) NodeID {
	if i < 0 {
		return NoNode
	}
	c := d.rec(id).first
	for ; c != NoNode && i > 0; i-- {
		c = d.nodes[c].next
	}
	return c
}

// IndexOf returns the position of id among its siblings, or -1 when detached.
func (d *Document) IndexOf(id NodeID) int {
	p := d.rec(id).parent
	if p == NoNode {
		return -1
	}
	i := 0
	for c := d.nodes[p].first; c != NoNode; c = d.nodes[c].next {
		if c == id {
			return i
		}
		i++
	}
	return -1
}

// FirstDescendant returns the deepest first leaf below id, or NoNode if id has
// no children.
func (d *Document) FirstDescendant(id NodeID) NodeID {
	c := d.rec(id).first
	if c == NoNode {
		return NoNode
	}
	for d.IsElement(c) && d.nodes[c].first != NoNode {
		c = d.nodes[c].first
	}
	return c
}

// LastDescendant returns the deepest last leaf below id, or NoNode if id has
// no children.
func (d *Document) LastDescendant(id NodeID) NodeID {
	c := d.rec(id).last
	if c == NoNode {
		return NoNode
	}
	for d.IsElement(c) && d.nodes[c].last != NoNode {
		c = d.nodes[c].last
	}
	return c
}

// FindParent returns the closest ancestor of id (id included) of kind k.
func (d *Document) FindParent(id NodeID, k NodeKind) NodeID {
	for c := id; c != NoNode; c = d.nodes[c].parent {
		if d.nodes[c].kind == k {
			return c
		}
	}
	return NoNode
}

// IsAttached reports whether id is reachable from the root.
func (d *Document) IsAttached(id NodeID) bool {
	for c := id; c != NoNode; c = d.rec(c).parent {
		if c == d.root {
			return true
		}
	}
	return false
}

// IsRootOrShadowRoot reports whether id is the document root. Documents have
// no shadow roots.
func (d *Document) IsRootOrShadowRoot(id NodeID) bool {
	return id != NoNode && id == d.root
}

// Mutation.

// detach unlinks id from its parent, keeping its own subtree intact.
func (d *Document) detach(id NodeID) {
	n := d.rec(id)
	p := n.parent
	if p == NoNode {
		return
	}
	pr := &d.nodes[p]
	if n.prev != NoNode {
		d.nodes[n.prev].next = n.next
	} else {
		pr.first = n.next
	}
	if n.next != NoNode {
		d.nodes[n.next].prev = n.prev
	} else {
		pr.last = n.prev
	}
	pr.size--
	n.parent, n.prev, n.next = NoNode, NoNode, NoNode
	d.rev++
}

// linkAfter inserts detached id after ref under parent. A NoNode ref means
// insert as first child.
func (d *Document) linkAfter(parent, ref, id NodeID) {
	n := d.rec(id)
	pr := d.rec(parent)
	n.parent = parent
	if ref == NoNode {
		n.prev = NoNode
		n.next = pr.first
		if pr.first != NoNode {
			d.nodes[pr.first].prev = id
		} else {
			pr.last = id
		}
		pr.first = id
	} else {
		r := &d.nodes[ref]
		n.prev = ref
		n.next = r.next
		if r.next != NoNode {
			d.nodes[r.next].prev = id
		} else {
			pr.last = id
		}
		r.next = id
	}
	pr.size++
	d.rev++
}

func (d *Document) checkNotAncestor(parent, child NodeID) {
	for c := parent; c != NoNode; c = d.nodes[c].parent {
		if c == child {
			panic(fmt.Sprintf("mdrich: cannot insert node %d into its own subtree", child))
		}
	}
}

// Append moves children to the end of parent, in order.
func (d *Document) Append(parent NodeID, children ...NodeID) {
	for _, c := range children {
		d.checkNotAncestor(parent, c)
		d.detach(c)
		d.linkAfter(parent, d.rec(parent).last, c)
	}
}

// InsertBefore moves id directly before ref.
func (d *Document) InsertBefore(ref, id NodeID) {
	p := d.rec(ref).parent
	if p == NoNode {
		panic("mdrich: InsertBefore on detached node")
	}
	d.checkNotAncestor(p, id)
	d.detach(id)
	d.linkAfter(p, d.nodes[ref].prev, id)
}

// InsertAfter moves id directly after ref.
func (d *Document) InsertAfter(ref, id NodeID) {
	p := d.rec(ref).parent
	if p == NoNode {
		panic("mdrich: InsertAfter on detached node")
	}
	d.checkNotAncestor(p, id)
	d.detach(id)
	d.linkAfter(p, ref, id)
}

// Remove detaches id from the tree.
func (d *Document) Remove(id NodeID) {
	d.detach(id)
}

// Replace puts repl where old was and detaches old. Children are not moved.
func (d *Document) Replace(old, repl NodeID) NodeID {
	p := d.rec(old).parent
	if p == NoNode {
		panic("mdrich: Replace on detached node")
	}
	d.detach(repl)
	d.linkAfter(p, d.nodes[old].prev, repl)
	d.detach(old)
	d.moveSelectionOff(old, repl)
	return repl
}

// Splice removes deleteCount children of parent starting at index and inserts
// nodes in their place.
func (d *Document) Splice(parent NodeID, index, deleteCount int, nodes ...NodeID) {
	var ref NodeID
	if index > 0 {
		if ref = d.ChildAt(parent, index-1); ref == NoNode {
			ref = d.rec(parent).last
		}
	}
	for i := 0; i < deleteCount; i++ {
		var victim NodeID
		if ref == NoNode {
			victim = d.rec(parent).first
		} else {
			victim = d.nodes[ref].next
		}
		if victim == NoNode {
			break
		}
		d.detach(victim)
	}
	for _, c := range nodes {
		d.checkNotAncestor(parent, c)
		d.detach(c)
		d.linkAfter(parent, ref, c)
		ref = c
	}
}

// Clear detaches every child of id.
func (d *Document) Clear(id NodeID) {
	for c := d.rec(id).first; c != NoNode; c = d.rec(id).first {
		d.detach(c)
	}
}

// TextContent returns the plain text below id. Line breaks contribute "\n";
// consecutive block children are separated by a blank line.
func (d *Document) TextContent(id NodeID) string {
	n := d.rec(id)
	switch n.kind {
	case KindText, KindDecorator:
		return n.text
	case KindLineBreak:
		return "\n"
	}
	var out []byte
	for c := n.first; c != NoNode; c = d.nodes[c].next {
		out = append(out, d.TextContent(c)...)
		if d.IsElement(c) && !d.IsInline(c) && d.nodes[c].next != NoNode {
			out = append(out, "\n\n"...)
		}
	}
	return string(out)
}

// Walk visits id and its descendants depth first. Returning false from fn
// skips the node's children.
func (d *Document) Walk(id NodeID, fn func(id NodeID, depth int) bool) {
	d.walk(id, 0, fn)
}

func (d *Document) walk(id NodeID, depth int, fn func(NodeID, int) bool) {
	if !fn(id, depth) {
		return
	}
	for c := d.rec(id).first; c != NoNode; c = d.nodes[c].next {
		d.walk(c, depth+1, fn)
	}
}

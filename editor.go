package mdrich

import (
	"log/slog"
	"slices"
)

// Update tags.
const (
	// TagHistoric marks updates produced by Undo and Redo.
	TagHistoric = "historic"
	// TagShortcut marks updates produced by the shortcut detector.
	TagShortcut = "markdown-shortcut"
)

// UpdateEvent describes a committed update.
type UpdateEvent struct {
	Tags []string
	// DirtyLeaves holds the text runs created or changed by the update.
	DirtyLeaves map[NodeID]struct{}
	// Selection and PrevSelection are nil when there was no selection.
	Selection     *Selection
	PrevSelection *Selection
}

// HasTag reports whether the update carries tag.
func (e UpdateEvent) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// IsDirty reports whether the update touched id.
func (e UpdateEvent) IsDirty(id NodeID) bool {
	_, ok := e.DirtyLeaves[id]
	return ok
}

// UpdateListener is notified after every committed update.
type UpdateListener func(ed *Editor, ev UpdateEvent)

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithNodes registers node kinds with the editor. Root, paragraph, text and
// line break kinds are always registered. Without this option every kind is.
func WithNodes(kinds ...NodeKind) EditorOption {
	return func(e *Editor) {
		e.nodes = map[NodeKind]bool{
			KindRoot:      true,
			KindParagraph: true,
			KindText:      true,
			KindLineBreak: true,
		}
		for _, k := range kinds {
			e.nodes[k] = true
		}
	}
}

// WithHistoryLimit caps the number of undo steps.
// Panics if n <= 0 (programmer error).
func WithHistoryLimit(n int) EditorOption {
	if n <= 0 {
		panic("mdrich: WithHistoryLimit limit must be positive")
	}
	return func(e *Editor) {
		e.history = newHistory(n)
	}
}

// WithEditorLogger sets the logger used for debug output.
// Panics if l is nil (programmer error).
func WithEditorLogger(l *slog.Logger) EditorOption {
	if l == nil {
		panic("mdrich: WithEditorLogger logger must not be nil")
	}
	return func(e *Editor) {
		e.logger = l
	}
}

type listenerEntry struct {
	id int
	fn UpdateListener
}

type pendingUpdate struct {
	fn   func(doc *Document)
	tags []string
}

// Editor owns a document and serializes updates to it. Updates requested
// while listeners run are queued and committed once notification completes.
// An Editor is not safe for concurrent use.
type Editor struct {
	doc       *Document
	nodes     map[NodeKind]bool
	history   *history
	logger    *slog.Logger
	listeners []listenerEntry
	nextID    int
	composing bool
	updating  bool
	pending   []pendingUpdate
}

// NewEditor creates an editor holding one empty paragraph with the caret in
// it.
func NewEditor(opts ...EditorOption) *Editor {
	e := &Editor{
		doc:     NewDocument(),
		history: newHistory(defaultHistoryLimit),
		logger:  slog.New(slog.DiscardHandler),
	}
	WithNodes(AllKinds()...)(e)
	for _, opt := range opts {
		opt(e)
	}

	p := e.doc.NewParagraph()
	e.doc.Append(e.doc.Root(), p)
	e.doc.Select(p, 0)
	return e
}

// Document returns the live document. Mutate it only inside Update.
func (e *Editor) Document() *Document { return e.doc }

// HasNode reports whether kind is registered.
func (e *Editor) HasNode(kind NodeKind) bool { return e.nodes[kind] }

// SetComposing marks an input method composition as in progress.
func (e *Editor) SetComposing(composing bool) { e.composing = composing }

// IsComposing reports whether a composition is in progress.
func (e *Editor) IsComposing() bool { return e.composing }

// RegisterUpdateListener adds fn and returns a func removing it.
func (e *Editor) RegisterUpdateListener(fn UpdateListener) func() {
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		e.listeners = slices.DeleteFunc(e.listeners, func(l listenerEntry) bool { return l.id == id })
	}
}

// Update runs fn against the document, normalizes it, records history and
// notifies listeners. Calls made from a listener are queued.
func (e *Editor) Update(fn func(doc *Document), tags ...string) {
	if e.updating {
		e.pending = append(e.pending, pendingUpdate{fn: fn, tags: tags})
		return
	}
	e.commit(fn, tags)
	for len(e.pending) > 0 {
		next := e.pending[0]
		e.pending = e.pending[1:]
		e.commit(next.fn, next.tags)
	}
}

func (e *Editor) commit(fn func(doc *Document), tags []string) {
	e.updating = true
	defer func() { e.updating = false }()

	prev := e.selection()
	before := e.doc.Compact()
	rev := e.doc.rev

	e.doc.dirty = make(map[NodeID]struct{})
	fn(e.doc)
	e.doc.Normalize(e.doc.Root())
	dirty := e.doc.dirty
	e.doc.dirty = nil

	changed := e.doc.rev != rev
	if changed && !slices.Contains(tags, TagHistoric) {
		e.history.push(before)
	}
	e.logger.Debug("update committed",
		slog.Any("tags", tags),
		slog.Bool("changed", changed),
		slog.Int("dirty", len(dirty)))
	e.notify(UpdateEvent{
		Tags:          tags,
		DirtyLeaves:   dirty,
		Selection:     e.selection(),
		PrevSelection: prev,
	})
}

func (e *Editor) notify(ev UpdateEvent) {
	for _, l := range slices.Clone(e.listeners) {
		l.fn(e, ev)
	}
}

func (e *Editor) selection() *Selection {
	sel, ok := e.doc.Selection()
	if !ok {
		return nil
	}
	return &sel
}

// Undo restores the state before the last recorded update.
func (e *Editor) Undo() error {
	return e.travel(e.history.undo)
}

// Redo reapplies the last undone update.
func (e *Editor) Redo() error {
	return e.travel(e.history.redo)
}

// CanUndo reports whether Undo has a step to restore.
func (e *Editor) CanUndo() bool { return e.history.canUndo() }

// CanRedo reports whether Redo has a step to restore.
func (e *Editor) CanRedo() bool { return e.history.canRedo() }

func (e *Editor) travel(step func(current *Document) (*Document, error)) error {
	snap, err := step(e.doc.Compact())
	if err != nil {
		return err
	}
	restored := snap.Clone()
	e.Update(func(doc *Document) {
		doc.nodes = restored.nodes
		doc.root = restored.root
		doc.sel = restored.sel
		doc.rev++
	}, TagHistoric)
	return nil
}

// InsertText types s at the caret.
func (e *Editor) InsertText(s string) {
	e.Update(func(doc *Document) { doc.InsertText(s) })
}

// InsertLineBreak inserts a line break at the caret.
func (e *Editor) InsertLineBreak() {
	e.Update(func(doc *Document) { doc.InsertLineBreak() })
}

// InsertParagraph splits the block at the caret.
func (e *Editor) InsertParagraph() {
	e.Update(func(doc *Document) { doc.InsertParagraph() })
}

// SetMarkdown replaces the document content with markdown parsed by reg.
func (e *Editor) SetMarkdown(reg *Registry, markdown string) {
	e.Update(func(doc *Document) {
		reg.Import(doc, doc.Root(), markdown)
	})
}

// Markdown exports the document with reg.
func (e *Editor) Markdown(reg *Registry) string {
	return reg.Export(e.doc, e.doc.Root())
}

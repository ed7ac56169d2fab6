package mdrich

// defaultHistoryLimit caps the undo stack when no limit is configured.
const defaultHistoryLimit = 100

// history keeps whole-document snapshots for undo and redo.
type history struct {
	undoStack []*Document
	redoStack []*Document
	limit     int
}

func newHistory(limit int) *history {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &history{limit: limit}
}

// push records the state before an update and clears the redo stack.
func (h *history) push(before *Document) {
	h.undoStack = append(h.undoStack, before)
	h.redoStack = nil
	if excess := len(h.undoStack) - h.limit; excess > 0 {
		h.undoStack = h.undoStack[excess:]
	}
}

// undo swaps current for the latest snapshot.
func (h *history) undo(current *Document) (*Document, error) {
	if len(h.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}
	snap := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return snap, nil
}

// redo swaps current for the latest undone snapshot.
func (h *history) redo(current *Document) (*Document, error) {
	if len(h.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}
	snap := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return snap, nil
}

func (h *history) canUndo() bool { return len(h.undoStack) > 0 }
func (h *history) canRedo() bool { return len(h.redoStack) > 0 }

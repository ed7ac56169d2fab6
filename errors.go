package mdrich

import "errors"

// Sentinel errors for library operations.
var (
	// Rule set validation errors.
	ErrNilTransformer     = errors.New("transformer cannot be nil")
	ErrInvalidTransformer = errors.New("invalid transformer")
	ErrEmptyTag           = errors.New("text format tag cannot be empty")
	ErrDuplicateTag       = errors.New("duplicate text format tag")
	ErrUnknownTransformer = errors.New("unknown transformer")
	ErrUnknownFormat      = errors.New("unknown format")

	// Host configuration errors.
	ErrMissingDependency = errors.New("missing node dependency for transformer")
	ErrNilEditor         = errors.New("editor cannot be nil")
	ErrNilRegistry       = errors.New("registry cannot be nil")

	// Editor history errors.
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")

	// Tag pattern compilation errors (lookbehind family only).
	ErrPatternCompile = errors.New("failed to compile tag pattern")
)

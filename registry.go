package mdrich

import (
	"fmt"
	"log/slog"
	"sync"
)

// Capabilities describes what the host's pattern engine supports.
type Capabilities struct {
	// Lookbehind selects the lookbehind pattern family for tag matching.
	// When false, an explicit scanner accepting the same inputs is used.
	Lookbehind bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithCapabilities sets the pattern engine capabilities.
func WithCapabilities(c Capabilities) Option {
	return func(r *Registry) {
		r.caps = c
	}
}

// WithLogger sets the logger used for debug output.
// Panics if l is nil (programmer error).
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("mdrich: WithLogger logger must not be nil")
	}
	return func(r *Registry) {
		r.logger = l
	}
}

// Registry is an immutable, indexed rule set. It is safe for concurrent use
// by independent import, export and shortcut calls.
type Registry struct {
	caps   Capabilities
	logger *slog.Logger

	elements    []*ElementTransformer
	textFormats []*TextFormatTransformer
	textMatches []*TextMatchTransformer

	// exportFormats holds the single-flag text formats; combination tags are
	// import-only.
	exportFormats []*TextFormatTransformer

	formatsByTag      map[string]*TextFormatTransformer
	formatsByLastChar map[byte][]*TextFormatTransformer
	matchesByTrigger  map[rune][]*TextMatchTransformer

	matcher tagMatcher
}

// NewRegistry validates and indexes rules, keeping their relative order
// within each kind.
func NewRegistry(rules []Transformer, opts ...Option) (*Registry, error) {
	r := &Registry{
		logger:            slog.New(slog.DiscardHandler),
		formatsByTag:      make(map[string]*TextFormatTransformer),
		formatsByLastChar: make(map[byte][]*TextFormatTransformer),
		matchesByTrigger:  make(map[rune][]*TextMatchTransformer),
	}
	for _, opt := range opts {
		opt(r)
	}

	for i, rule := range rules {
		if err := validateTransformer(rule); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		switch t := rule.(type) {
		case *ElementTransformer:
			r.elements = append(r.elements, t)
		case *TextFormatTransformer:
			if _, dup := r.formatsByTag[t.Tag]; dup {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateTag, t.Tag)
			}
			r.formatsByTag[t.Tag] = t
			r.textFormats = append(r.textFormats, t)
			last := t.Tag[len(t.Tag)-1]
			r.formatsByLastChar[last] = append(r.formatsByLastChar[last], t)
			if t.singleFormat() {
				r.exportFormats = append(r.exportFormats, t)
			}
		case *TextMatchTransformer:
			r.textMatches = append(r.textMatches, t)
			r.matchesByTrigger[t.Trigger] = append(r.matchesByTrigger[t.Trigger], t)
		}
	}

	if r.caps.Lookbehind {
		m, err := newLookbehindMatcher(r.textFormats)
		if err != nil {
			return nil, err
		}
		r.matcher = m
	} else {
		r.matcher = newScanMatcher(r.textFormats)
	}

	r.logger.Debug("registry built",
		slog.Int("elements", len(r.elements)),
		slog.Int("textFormats", len(r.textFormats)),
		slog.Int("textMatches", len(r.textMatches)),
		slog.Bool("lookbehind", r.caps.Lookbehind))
	return r, nil
}

// DefaultRegistry returns the shared registry built from DefaultTransformers.
var DefaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(DefaultTransformers())
	if err != nil {
		panic("mdrich: default rules are invalid: " + err.Error())
	}
	return r
})

// Capabilities returns the capabilities the registry was built with.
func (r *Registry) Capabilities() Capabilities { return r.caps }

// Elements returns the element rules in order.
func (r *Registry) Elements() []*ElementTransformer { return append([]*ElementTransformer(nil), r.elements...) }

// TextFormats returns the text format rules in order.
func (r *Registry) TextFormats() []*TextFormatTransformer {
	return append([]*TextFormatTransformer(nil), r.textFormats...)
}

// TextMatches returns the text match rules in order.
func (r *Registry) TextMatches() []*TextMatchTransformer {
	return append([]*TextMatchTransformer(nil), r.textMatches...)
}

// FormatByTag returns the text format rule using tag.
func (r *Registry) FormatByTag(tag string) (*TextFormatTransformer, bool) {
	t, ok := r.formatsByTag[tag]
	return t, ok
}

// NodeRegistry reports which node kinds a host has registered.
type NodeRegistry interface {
	HasNode(kind NodeKind) bool
}

// ValidateDependencies checks that host registers every node kind the element
// and text match rules depend on.
func (r *Registry) ValidateDependencies(host NodeRegistry) error {
	check := func(name string, deps []NodeKind) error {
		for _, k := range deps {
			if !host.HasNode(k) {
				return fmt.Errorf("%w: %s needs %s; register it with the editor", ErrMissingDependency, name, k)
			}
		}
		return nil
	}
	for _, t := range r.elements {
		if err := check(t.Name, t.Dependencies); err != nil {
			return err
		}
	}
	for _, t := range r.textMatches {
		if err := check(t.Name, t.Dependencies); err != nil {
			return err
		}
	}
	return nil
}

package mdrich

import (
	"fmt"
	"math/bits"
	"regexp"
)

// Transformer is a markdown rule. It is a closed union: the only
// implementations are *ElementTransformer, *TextFormatTransformer and
// *TextMatchTransformer.
type Transformer interface {
	transformer()
}

// ElementReplaceFunc builds the block node for a matched line prefix. parent is
// the paragraph being converted, children the inline nodes that follow the
// prefix. isImport is true during bulk import and false for live shortcuts.
type ElementReplaceFunc func(doc *Document, parent NodeID, children []NodeID, match []string, isImport bool)

// ElementExportFunc renders a block node, reporting false when the rule does
// not handle the node.
type ElementExportFunc func(doc *Document, n NodeID, exportChildren func(NodeID) string) (string, bool)

// ElementTransformer converts a line prefix (heading marks, list bullets) into
// a block node and back.
type ElementTransformer struct {
	Name         string
	Dependencies []NodeKind
	Pattern      *regexp.Regexp // anchored at line start
	Replace      ElementReplaceFunc
	Export       ElementExportFunc
}

// TextFormatTransformer toggles format flags through a symmetric delimiter.
// A tag carrying more than one flag (*** for bold+italic) is import-only.
type TextFormatTransformer struct {
	Name   string
	Tag    string
	Format Format

	// DisallowIntraword requires the delimiters to touch only whitespace,
	// punctuation or the run edges on their outer side.
	DisallowIntraword bool
}

// TextMatchReplaceFunc replaces a matched text run with new nodes.
type TextMatchReplaceFunc func(doc *Document, text NodeID, match []string)

// TextMatchExportFunc renders a node the rule handles, reporting false
// otherwise. exportFormat wraps content in the format tags of a text run.
type TextMatchExportFunc func(
	doc *Document,
	n NodeID,
	exportChildren func(NodeID) string,
	exportFormat func(text NodeID, content string) string,
) (string, bool)

// TextMatchTransformer recognizes a self-contained pattern inside one text run.
type TextMatchTransformer struct {
	Name         string
	Dependencies []NodeKind
	Trigger      rune
	// ImportPattern finds the pattern anywhere in a run during import.
	ImportPattern *regexp.Regexp
	// Pattern must match at the end of the text typed so far.
	Pattern *regexp.Regexp
	Replace TextMatchReplaceFunc
	Export  TextMatchExportFunc
}

func (*ElementTransformer) transformer()    {}
func (*TextFormatTransformer) transformer() {}
func (*TextMatchTransformer) transformer()  {}

// singleFormat reports whether the tag encodes exactly one flag.
func (t *TextFormatTransformer) singleFormat() bool {
	return bits.OnesCount8(uint8(t.Format)) == 1
}

// TransformerName returns the rule's name.
func TransformerName(t Transformer) string {
	switch t := t.(type) {
	case *ElementTransformer:
		return t.Name
	case *TextFormatTransformer:
		return t.Name
	case *TextMatchTransformer:
		return t.Name
	}
	return ""
}

// validateTransformer checks that a rule carries the fields its kind needs.
func validateTransformer(t Transformer) error {
	switch t := t.(type) {
	case *ElementTransformer:
		if t == nil {
			return ErrNilTransformer
		}
		if t.Pattern == nil || t.Replace == nil || t.Export == nil {
			return fmt.Errorf("%w: element %q needs pattern, replace and export", ErrInvalidTransformer, t.Name)
		}
	case *TextFormatTransformer:
		if t == nil {
			return ErrNilTransformer
		}
		if t.Tag == "" {
			return fmt.Errorf("%w: %q", ErrEmptyTag, t.Name)
		}
		for i := 0; i < len(t.Tag); i++ {
			if c := t.Tag[i]; c == '\\' || c == ' ' || c >= 0x80 {
				return fmt.Errorf("%w: text format %q tag %q must be ASCII without spaces or backslashes",
					ErrInvalidTransformer, t.Name, t.Tag)
			}
		}
		if t.Format == 0 {
			return fmt.Errorf("%w: text format %q has no format flags", ErrInvalidTransformer, t.Name)
		}
	case *TextMatchTransformer:
		if t == nil {
			return ErrNilTransformer
		}
		if t.Trigger == 0 || t.ImportPattern == nil || t.Pattern == nil || t.Replace == nil {
			return fmt.Errorf("%w: text match %q needs trigger, patterns and replace", ErrInvalidTransformer, t.Name)
		}
	case nil:
		return ErrNilTransformer
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTransformer, t)
	}
	return nil
}

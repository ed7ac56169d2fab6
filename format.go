package mdrich

import (
	"fmt"
	"strings"
)

// Format is a set of inline text format flags.
type Format uint8

// Format flags. A text run may carry any combination.
const (
	FormatBold Format = 1 << iota
	FormatItalic
	FormatUnderline
	FormatStrikethrough
	FormatCode
	FormatHighlight
)

// formatNames lists flags in a stable order for String and ParseFormat.
var formatNames = []struct {
	flag Format
	name string
}{
	{FormatBold, "bold"},
	{FormatItalic, "italic"},
	{FormatUnderline, "underline"},
	{FormatStrikethrough, "strikethrough"},
	{FormatCode, "code"},
	{FormatHighlight, "highlight"},
}

// Has reports whether every flag in f2 is set in f.
func (f Format) Has(f2 Format) bool {
	return f&f2 == f2
}

// Flags returns the individual flags set in f, in declaration order.
func (f Format) Flags() []Format {
	var out []Format
	for _, fn := range formatNames {
		if f&fn.flag != 0 {
			out = append(out, fn.flag)
		}
	}
	return out
}

// String returns a "bold|italic" style representation.
func (f Format) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, fn := range formatNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseFormat parses a single flag name (case-insensitive).
func ParseFormat(name string) (Format, error) {
	for _, fn := range formatNames {
		if strings.EqualFold(fn.name, name) {
			return fn.flag, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

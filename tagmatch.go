package mdrich

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// tagMatch is one "<tag>content<tag>" span inside a text run. Offsets are
// byte offsets; content excludes both tags.
type tagMatch struct {
	start   int
	end     int
	tag     string
	content string
}

// tagMatcher finds delimiter candidates and complete spans in a text run.
// Both implementations must accept the same inputs.
type tagMatcher interface {
	// openTags returns the unescaped tag occurrences in order, scanning left
	// to right without overlap and preferring earlier registered tags.
	openTags(text string) []string
	// fullMatch returns the leftmost complete span for tag.
	fullMatch(text, tag string) (tagMatch, bool)
}

// isPunctuationOrSpace reports whether r is ASCII punctuation or whitespace.
func isPunctuationOrSpace(r rune) bool {
	switch {
	case r >= '!' && r <= '/',
		r >= ':' && r <= '@',
		r >= '[' && r <= '`',
		r >= '{' && r <= '~':
		return true
	}
	return unicode.IsSpace(r)
}

// findOutermostMatch returns the first span that is not nested in another:
// candidates are tried in order of occurrence, and a boundary-sensitive tag
// must touch only whitespace, punctuation or the run edges.
func (r *Registry) findOutermostMatch(text string) (tagMatch, *TextFormatTransformer, bool) {
	tried := make(map[string]bool)
	for _, tag := range r.matcher.openTags(text) {
		if tried[tag] {
			continue
		}
		tried[tag] = true
		t, ok := r.formatsByTag[tag]
		if !ok {
			continue
		}
		m, ok := r.matcher.fullMatch(text, tag)
		if !ok {
			continue
		}
		if !t.DisallowIntraword {
			return m, t, true
		}
		before, bsize := runeBefore(text, m.start)
		after, asize := runeAt(text, m.end)
		if (bsize == 0 || isPunctuationOrSpace(before)) && (asize == 0 || isPunctuationOrSpace(after)) {
			return m, t, true
		}
	}
	return tagMatch{}, nil, false
}

// scanMatcher matches tags with a forward character scan. It accepts exactly
// the spans of the lookbehind pattern family without needing lookaround.
type scanMatcher struct {
	tags []string
	sets map[string]string // distinct characters of each tag
}

func newScanMatcher(formats []*TextFormatTransformer) *scanMatcher {
	m := &scanMatcher{sets: make(map[string]string, len(formats))}
	for _, f := range formats {
		m.tags = append(m.tags, f.Tag)
		m.sets[f.Tag] = tagCharSet(f.Tag)
	}
	return m
}

func tagCharSet(tag string) string {
	var sb strings.Builder
	for i := 0; i < len(tag); i++ {
		if !strings.ContainsRune(sb.String(), rune(tag[i])) {
			sb.WriteByte(tag[i])
		}
	}
	return sb.String()
}

func (m *scanMatcher) openTags(text string) []string {
	var out []string
	for p := 0; p < len(text); {
		if p > 0 && text[p-1] == '\\' {
			p++
			continue
		}
		hit := ""
		for _, tag := range m.tags {
			if strings.HasPrefix(text[p:], tag) {
				hit = tag
				break
			}
		}
		if hit == "" {
			p++
			continue
		}
		out = append(out, hit)
		p += len(hit)
	}
	return out
}

func (m *scanMatcher) fullMatch(text, tag string) (tagMatch, bool) {
	set, ok := m.sets[tag]
	if !ok {
		set = tagCharSet(tag)
	}
	n := len(tag)
	for i := 0; i+n <= len(text); i++ {
		if !strings.HasPrefix(text[i:], tag) {
			continue
		}
		if r, size := runeBefore(text, i); size > 0 && (r == '\\' || strings.ContainsRune(set, r)) {
			continue
		}
		if j, ok := scanClose(text, i+n, tag, set); ok {
			return tagMatch{start: i, end: j + n, tag: tag, content: text[i+n : j]}, true
		}
	}
	return tagMatch{}, false
}

// scanClose finds the close tag for content starting at from. Content may
// open with an escaped tag; that reading is preferred when it closes.
func scanClose(text string, from int, tag, set string) (int, bool) {
	esc := `\` + tag
	if strings.HasPrefix(text[from:], esc) {
		if j, ok := scanContent(text, from+len(esc), tag, set); ok {
			return j, true
		}
	}
	return scanContent(text, from, tag, set)
}

// scanContent walks the content lazily: the first non-space, non-tag
// character followed by a valid close tag ends it. Content never spans a
// newline.
func scanContent(text string, k int, tag, set string) (int, bool) {
	esc := `\` + tag
	for k < len(text) {
		r, size := utf8.DecodeRuneInString(text[k:])
		if r == '\n' {
			return 0, false
		}
		if !strings.ContainsRune(set, r) && !unicode.IsSpace(r) {
			after := k + size
			if strings.HasPrefix(text[after:], esc) && closesAt(text, after+len(esc), tag, set) {
				return after + len(esc), true
			}
			if closesAt(text, after, tag, set) {
				return after, true
			}
		}
		k += size
	}
	return 0, false
}

// closesAt reports whether a close tag starts at j: not escaped (unless the
// backslash is itself escaped) and not followed by a backslash or another
// tag character.
func closesAt(text string, j int, tag, set string) bool {
	if !strings.HasPrefix(text[j:], tag) {
		return false
	}
	if j > 0 && text[j-1] == '\\' && (j < 2 || text[j-2] != '\\') {
		return false
	}
	if r, size := runeAt(text, j+len(tag)); size > 0 && (r == '\\' || strings.ContainsRune(set, r)) {
		return false
	}
	return true
}

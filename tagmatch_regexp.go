package mdrich

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// patternTimeout bounds a single backtracking match. A timeout counts as no
// match.
const patternTimeout = time.Second

// fullTagPattern captures (open)(content)(close). The open tag must not follow
// a backslash or tag character; the close tag must not be escaped unless the
// backslash itself is, and must not precede a backslash or tag character.
const fullTagPattern = `(?<![\\%[2]s])(%[1]s)((\\%[1]s)?.*?[^%[2]s\s](\\%[1]s)?)((?<!\\)|(?<=\\\\))(%[1]s)(?![\\%[2]s])`

// lookbehindMatcher matches tags with regexp2, whose engine supports
// lookbehind.
type lookbehindMatcher struct {
	open *regexp2.Regexp
	full map[string]*regexp2.Regexp
}

func newLookbehindMatcher(formats []*TextFormatTransformer) (*lookbehindMatcher, error) {
	m := &lookbehindMatcher{full: make(map[string]*regexp2.Regexp, len(formats))}
	if len(formats) == 0 {
		return m, nil
	}

	quoted := make([]string, 0, len(formats))
	for _, f := range formats {
		q := quotePattern(f.Tag)
		quoted = append(quoted, q)
		re, err := compilePattern(fmt.Sprintf(fullTagPattern, q, quotePattern(tagCharSet(f.Tag))))
		if err != nil {
			return nil, fmt.Errorf("%w: tag %q: %v", ErrPatternCompile, f.Tag, err)
		}
		m.full[f.Tag] = re
	}
	open, err := compilePattern(`(?<![\\])(` + strings.Join(quoted, "|") + `)`)
	if err != nil {
		return nil, fmt.Errorf("%w: open tags: %v", ErrPatternCompile, err)
	}
	m.open = open
	return m, nil
}

func compilePattern(expr string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = patternTimeout
	return re, nil
}

// quotePattern escapes every non-word character. Word characters must stay
// bare: the engine rejects escapes such as \_.
func quotePattern(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r != '_' && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9') {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (m *lookbehindMatcher) openTags(text string) []string {
	if m.open == nil {
		return nil
	}
	var out []string
	match, err := m.open.FindStringMatch(text)
	for match != nil && err == nil {
		out = append(out, match.String())
		match, err = m.open.FindNextMatch(match)
	}
	return out
}

func (m *lookbehindMatcher) fullMatch(text, tag string) (tagMatch, bool) {
	re, ok := m.full[tag]
	if !ok {
		return tagMatch{}, false
	}
	match, err := re.FindStringMatch(text)
	if err != nil || match == nil {
		return tagMatch{}, false
	}
	// The engine reports rune indices.
	offsets := runeOffsets(text)
	start := offsets[match.Index]
	end := offsets[match.Index+match.Length]
	return tagMatch{
		start:   start,
		end:     end,
		tag:     tag,
		content: match.GroupByNumber(2).String(),
	}, true
}

// runeOffsets maps rune index to byte offset, with a final entry for the end
// of text.
func runeOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}

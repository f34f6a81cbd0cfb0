package strip

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/phyten/tinkerthis/internal/span"
)

const (
	// A quote, then anything (newlines included, lazily), then the same quote
	// unless it is escaped with a backslash.
	stringPattern  = `(['"])[\s\S]*?(?<!\\)\1`
	commentPattern = `//[^\r\n]*`
)

// Analysis describes the spans discovered in one buffer. Offsets count runes.
type Analysis struct {
	Strings  []span.Span `json:"strings,omitempty"`
	Comments []span.Span `json:"comments,omitempty"`
	Removed  []span.Span `json:"removed,omitempty"`
	Text     string      `json:"-"`
}

// Stripper removes // line comments that are not part of a quoted string.
// A Stripper is safe for concurrent use.
type Stripper struct {
	stringRe  *regexp2.Regexp
	commentRe *regexp2.Regexp
}

// NewStripper compiles the span patterns. A positive timeout bounds every
// individual match attempt; zero means no limit.
func NewStripper(timeout time.Duration) *Stripper {
	s := &Stripper{
		stringRe:  regexp2.MustCompile(stringPattern, regexp2.None),
		commentRe: regexp2.MustCompile(commentPattern, regexp2.None),
	}
	if timeout > 0 {
		s.stringRe.MatchTimeout = timeout
		s.commentRe.MatchTimeout = timeout
	}
	return s
}

var defaultStripper = NewStripper(0)

// Strip removes line comments from text using the default Stripper.
func Strip(text string) string {
	return defaultStripper.Strip(text)
}

// StringSpans returns the quoted-string spans of text, left to right.
func StringSpans(text string) []span.Span {
	spans, _ := defaultStripper.stringSpans([]rune(text))
	return spans
}

// CommentSpans returns the line-comment spans of text, left to right,
// skipping markers that sit inside one of strs.
func CommentSpans(text string, strs []span.Span) []span.Span {
	spans, _ := defaultStripper.commentSpans([]rune(text), strs)
	return spans
}

// Strip returns text without the comment spans that do not overlap a string.
// Everything else, line breaks included, is kept as is.
func (s *Stripper) Strip(text string) string {
	return s.Analyze(text).Text
}

// Analyze runs span discovery and removal and reports what it did.
// A matcher failure never surfaces: the buffer is passed through with only
// the removals that were decided before the failure.
func (s *Stripper) Analyze(text string) Analysis {
	res := Analysis{Text: text}
	if text == "" {
		return res
	}
	runes := []rune(text)
	strs, err := s.stringSpans(runes)
	if err != nil {
		return res
	}
	comments, _ := s.commentSpans(runes, strs)
	res.Strings = strs
	res.Comments = comments
	if len(comments) == 0 {
		return res
	}

	for _, c := range comments {
		if span.OverlapsAny(c, strs) {
			continue
		}
		res.Removed = append(res.Removed, c)
	}
	if len(res.Removed) == 0 {
		return res
	}

	// Cut the original bytes so anything outside a removed span, invalid
	// UTF-8 included, comes through untouched.
	offsets := byteOffsets(text, len(runes))
	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, c := range res.Removed {
		b.WriteString(text[prev:offsets[c.Start]])
		prev = offsets[c.End]
	}
	b.WriteString(text[prev:])
	res.Text = b.String()
	return res
}

// byteOffsets maps rune index i of text to its byte offset; the extra last
// entry is len(text). An invalid byte counts as one rune, as in []rune(text).
func byteOffsets(text string, n int) []int {
	offsets := make([]int, 0, n+1)
	for i := 0; i < len(text); {
		offsets = append(offsets, i)
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return append(offsets, len(text))
}

func (s *Stripper) stringSpans(runes []rune) ([]span.Span, error) {
	var out []span.Span
	m, err := s.stringRe.FindRunesMatch(runes)
	for m != nil && err == nil {
		out = append(out, span.Span{Start: m.Index, End: m.Index + m.Length})
		m, err = s.stringRe.FindNextMatch(m)
	}
	return out, err
}

func (s *Stripper) commentSpans(runes []rune, strs []span.Span) ([]span.Span, error) {
	var out []span.Span
	pos := 0
	for pos < len(runes) {
		m, err := s.commentRe.FindRunesMatchStartingAt(runes, pos)
		if err != nil {
			return out, err
		}
		if m == nil {
			break
		}
		start, end := m.Index, m.Index+m.Length
		if enc, ok := span.Enclosing(start, strs); ok {
			pos = enc.End
			continue
		}
		out = append(out, span.Span{Start: start, End: end})
		pos = end
	}
	return out, nil
}

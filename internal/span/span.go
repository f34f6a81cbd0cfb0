package span

// Span is a half-open interval [Start, End) of character offsets into a text buffer.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of characters covered by s (0 for malformed spans).
func (s Span) Len() int {
	if s.End <= s.Start {
		return 0
	}
	return s.End - s.Start
}

// Empty reports whether s covers no characters.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Contains reports whether offset falls inside s.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Overlaps reports whether a and b share at least one character.
// Empty or malformed spans never overlap anything.
func Overlaps(a, b Span) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	return !(a.End <= b.Start || a.Start >= b.End)
}

// OverlapsAny reports whether target overlaps at least one of candidates.
func OverlapsAny(target Span, candidates []Span) bool {
	if target.Empty() {
		return false
	}
	for _, c := range candidates {
		if Overlaps(target, c) {
			return true
		}
	}
	return false
}

// Enclosing returns the first candidate containing offset.
func Enclosing(offset int, candidates []Span) (Span, bool) {
	for _, c := range candidates {
		if c.Contains(offset) {
			return c, true
		}
	}
	return Span{}, false
}

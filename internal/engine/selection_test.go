package engine

import "testing"

func TestSelectText(t *testing.T) {
	doc := "line one\nline two\nline three"
	cases := []struct {
		name string
		sel  Selection
		want string
	}{
		{name: "empty selection", sel: Selection{}, want: doc},
		{name: "collapsed cursor", sel: Selection{Anchor: Position{2, 2}, Active: Position{2, 2}}, want: doc},
		{name: "within line", sel: Selection{Anchor: Position{2, 1}, Active: Position{2, 5}}, want: "line"},
		{name: "reversed across lines", sel: Selection{Anchor: Position{2, 5}, Active: Position{1, 6}}, want: "one\nline"},
		{name: "clamped to end", sel: Selection{Anchor: Position{1, 1}, Active: Position{99, 1}}, want: doc},
		{name: "column past line end", sel: Selection{Anchor: Position{1, 3}, Active: Position{1, 99}}, want: "ne one"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SelectText(doc, tc.sel); got != tc.want {
				t.Fatalf("SelectText(%+v)=%q want %q", tc.sel, got, tc.want)
			}
		})
	}
}

func TestSelectTextCountsRunes(t *testing.T) {
	got := SelectText("ñandú\nx", Selection{Anchor: Position{1, 2}, Active: Position{1, 4}})
	if got != "an" {
		t.Fatalf("SelectText=%q want %q", got, "an")
	}
}

func TestSelectTextCRLF(t *testing.T) {
	doc := "ab\r\ncd\r\n"
	cases := []struct {
		sel  Selection
		want string
	}{
		{sel: Selection{Anchor: Position{1, 1}, Active: Position{1, 99}}, want: "ab"},
		{sel: Selection{Anchor: Position{1, 2}, Active: Position{2, 99}}, want: "b\r\ncd"},
		{sel: Selection{Anchor: Position{1, 1}, Active: Position{2, 1}}, want: "ab\r\n"},
	}
	for _, tc := range cases {
		if got := SelectText(doc, tc.sel); got != tc.want {
			t.Fatalf("SelectText(%+v)=%q want %q", tc.sel, got, tc.want)
		}
	}
}

func TestParseSelection(t *testing.T) {
	sel, err := ParseSelection(" 1:2-3:4 ")
	if err != nil {
		t.Fatalf("ParseSelection error: %v", err)
	}
	want := Selection{Anchor: Position{1, 2}, Active: Position{3, 4}}
	if sel != want {
		t.Fatalf("ParseSelection=%+v want %+v", sel, want)
	}

	empty, err := ParseSelection("")
	if err != nil || !empty.Empty() {
		t.Fatalf("ParseSelection(\"\")=%+v, %v", empty, err)
	}

	for _, bad := range []string{"bad", "1-2", "0:1-1:1", "1:x-2:2", "1:1-"} {
		if _, err := ParseSelection(bad); err == nil {
			t.Fatalf("ParseSelection(%q) should fail", bad)
		}
	}
}

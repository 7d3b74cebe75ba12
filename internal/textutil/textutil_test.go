package textutil

import "testing"

func TestCollapseWhitespace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"hello", "hello"},
		{"hello   world", "hello world"},
		{"line one\nline two", "line one line two"},
		{"\t tabs\r\nand\nnewlines ", "tabs and newlines"},
	}
	for _, tc := range cases {
		if got := CollapseWhitespace(tc.in); got != tc.want {
			t.Fatalf("CollapseWhitespace(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("expected untouched string, got %q", got)
	}
	if got := Truncate("abcdefghij", 5); got != "abcd…" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := Truncate("anything", 0); got != "" {
		t.Fatalf("expected empty string for max 0, got %q", got)
	}
	if got := Truncate("héllo wörld", 6); got != "héllo…" {
		t.Fatalf("rune-aware truncation failed: %q", got)
	}
}

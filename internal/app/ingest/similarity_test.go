package ingest

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"Mia Chen", "mia chen", 1},
		{"", "", 1},
		{"abc", "", 0},
		{"abcd", "bcde", 0.75},
		// One-rune blocks only; the earliest in a wins and leaves nothing to
		// its right in b.
		{"tide", "diet", 0.25},
		{"abxcd", "abcd", 8.0 / 9.0},
		{"Liam Ward", "Liam Warde", 18.0 / 19.0},
		{"qabxcd", "abycdf", 2.0 / 3.0},
	}
	for _, tc := range cases {
		got := Similarity(tc.a, tc.b)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Similarity(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
		if back := Similarity(tc.b, tc.a); tc.a != "tide" && math.Abs(back-tc.want) > 1e-9 {
			t.Fatalf("Similarity(%q, %q) = %v, want %v", tc.b, tc.a, back, tc.want)
		}
	}
}

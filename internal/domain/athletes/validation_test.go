package athletes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		athlete Athlete
		valid   bool
		missing []string
	}{
		{"complete", Athlete{Name: "A", College: "B", Sport: "C", Year: "D", Hometown: "E"}, true, []string{}},
		{"only name and college", Athlete{Name: "A", College: "B"}, true, []string{"sport", "year", "hometown"}},
		{"blank college", Athlete{Name: "A", College: "  ", Sport: "C"}, false, []string{"college", "year", "hometown"}},
		{"empty", Athlete{}, false, []string{"name", "college", "sport", "year", "hometown"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(tc.athlete)
			if got.Valid != tc.valid {
				t.Fatalf("expected valid=%v, got %v", tc.valid, got.Valid)
			}
			if diff := cmp.Diff(tc.missing, got.MissingFields); diff != "" {
				t.Fatalf("missing fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

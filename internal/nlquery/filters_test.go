package nlquery

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
)

func TestDecodeFiltersSanitizes(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    Filters
	}{
		{
			name:    "juco becomes njcaa",
			content: `{"sport": "Soccer", "division": "JUCO"}`,
			want:    Filters{Sport: "Soccer", Division: "NJCAA"},
		},
		{
			name:    "unknown division dropped",
			content: `{"division": "D4", "nationality": "New Zealand"}`,
			want:    Filters{Nationality: "New Zealand"},
		},
		{
			name:    "non strings dropped",
			content: `{"class_year": 2026, "gender": "", "location": null, "sport": ["Golf"]}`,
			want:    Filters{},
		},
		{
			name:    "code fence",
			content: "```json\n{\"class_year\": \"2026\"}\n```",
			want:    Filters{ClassYear: "2026"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeFilters(tc.content)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("filters mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeFiltersRejectsNonObjects(t *testing.T) {
	for _, content := range []string{"[]", "nope", `"D1"`} {
		if _, err := decodeFilters(content); !errors.Is(err, ErrInvalidResponse) {
			t.Fatalf("%q: expected ErrInvalidResponse, got %v", content, err)
		}
	}
}

func TestFiltersToFilter(t *testing.T) {
	f := Filters{Sport: "Golf", Gender: "Female", Nationality: "Australian", Division: "D2", Location: "Sydney", ClassYear: "2026"}
	want := athletes.Filter{Sport: "Golf", Gender: "Female", Nationality: "Australian", Division: "D2", Location: "Sydney", Year: "2026"}
	if diff := cmp.Diff(want, f.ToFilter()); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}
}

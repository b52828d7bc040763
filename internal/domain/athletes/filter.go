package athletes

import (
	"sort"
	"strings"

	"github.com/gng-scout/athlete-directory-service/internal/divisions"
)

// DefaultNationality is assumed when a record omits nationality.
const DefaultNationality = "Australian"

// Filter narrows the directory. Empty fields match everything.
type Filter struct {
	Sport       string `json:"sport,omitempty"`
	Division    string `json:"division,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	College     string `json:"college,omitempty"`
	Year        string `json:"year,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Location    string `json:"location,omitempty"`
	Query       string `json:"query,omitempty"`
}

// IsZero reports whether the filter has no constraints.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Matches reports whether a classified athlete satisfies every set field.
func (f Filter) Matches(a Athlete, info divisions.Info) bool {
	if !equalFold(f.Sport, a.Sport) {
		return false
	}
	if f.Division != "" {
		want, ok := divisions.ParseDivision(f.Division)
		if !ok || want != info.Division {
			return false
		}
	}
	if !equalFold(f.Nationality, FallbackValue(a.Nationality, DefaultNationality)) {
		return false
	}
	if !equalFold(f.College, a.College) {
		return false
	}
	if !equalFold(f.Year, a.Year) {
		return false
	}
	if !equalFold(f.Gender, a.Gender) {
		return false
	}
	if !containsFold(a.Hometown, f.Location) {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		if !containsFold(a.Name, q) && !containsFold(a.College, q) && !containsFold(a.Sport, q) {
			return false
		}
	}
	return true
}

func equalFold(want, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(want, strings.TrimSpace(got))
}

func containsFold(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Field names accepted by UniqueValues.
const (
	FieldSport       = "sport"
	FieldYear        = "year"
	FieldCollege     = "college"
	FieldNationality = "nationality"
	FieldGender      = "gender"
)

// UniqueValues returns the sorted distinct non-blank values of field.
func UniqueValues(list []Athlete, field string) []string {
	seen := make(map[string]struct{})
	for _, a := range list {
		var v string
		switch field {
		case FieldSport:
			v = a.Sport
		case FieldYear:
			v = a.Year
		case FieldCollege:
			v = a.College
		case FieldNationality:
			v = FallbackValue(a.Nationality, DefaultNationality)
		case FieldGender:
			v = a.Gender
		}
		v = strings.TrimSpace(v)
		if v != "" {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

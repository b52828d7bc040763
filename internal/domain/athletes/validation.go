package athletes

import "strings"

// Validation reports which display fields an athlete record lacks.
type Validation struct {
	Valid         bool     `json:"valid"`
	MissingFields []string `json:"missingFields"`
}

// Validate checks name, college, sport, year and hometown. A record is
// valid as long as it has a name and a college.
func Validate(a Athlete) Validation {
	checks := []struct {
		field string
		value string
	}{
		{"name", a.Name},
		{"college", a.College},
		{"sport", a.Sport},
		{"year", a.Year},
		{"hometown", a.Hometown},
	}

	missing := []string{}
	for _, c := range checks {
		if isBlank(c.value) {
			missing = append(missing, c.field)
		}
	}
	return Validation{
		Valid:         !isBlank(a.Name) && !isBlank(a.College),
		MissingFields: missing,
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

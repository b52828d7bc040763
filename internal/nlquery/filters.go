package nlquery

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gng-scout/athlete-directory-service/internal/divisions"
	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
)

// Filters is the structured form of a natural-language athlete query.
type Filters struct {
	Sport       string `json:"sport,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Division    string `json:"division,omitempty"`
	Location    string `json:"location,omitempty"`
	ClassYear   string `json:"class_year,omitempty"`
}

// ToFilter converts parsed filters into a directory filter.
func (f Filters) ToFilter() athletes.Filter {
	return athletes.Filter{
		Sport:       f.Sport,
		Gender:      f.Gender,
		Nationality: f.Nationality,
		Division:    f.Division,
		Location:    f.Location,
		Year:        f.ClassYear,
	}
}

// decodeFilters keeps only non-empty string values from the model's JSON
// and canonicalizes the division. Unrecognized divisions are dropped.
func decodeFilters(content string) (Filters, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &raw); err != nil {
		return Filters{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	f := Filters{
		Sport:       stringField(raw, "sport"),
		Gender:      stringField(raw, "gender"),
		Nationality: stringField(raw, "nationality"),
		Location:    stringField(raw, "location"),
		ClassYear:   stringField(raw, "class_year"),
	}
	if d, ok := divisions.ParseDivision(stringField(raw, "division")); ok && d != divisions.Unknown {
		f.Division = string(d)
	}
	return f, nil
}

func stringField(raw map[string]any, key string) string {
	s, ok := raw[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// stripCodeFence unwraps ```json ... ``` blocks some models emit despite
// the prompt.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimPrefix(content, "json")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

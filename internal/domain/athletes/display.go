package athletes

import (
	"strconv"
	"strings"
	"unicode"
)

var lowResIndicators = []string{"thumb", "small", "150", "100", "50"}

// FallbackValue returns value unless it is blank.
func FallbackValue(value, fallback string) string {
	if isBlank(value) {
		return fallback
	}
	return value
}

func DisplayName(name string) string         { return FallbackValue(name, "Unnamed Athlete") }
func DisplayCollege(college string) string   { return FallbackValue(college, "College Unknown") }
func DisplayHometown(hometown string) string { return FallbackValue(hometown, "Hometown Unknown") }
func DisplaySport(sport string) string       { return FallbackValue(sport, "Sport Unknown") }
func DisplayYear(year string) string         { return FallbackValue(year, "Year Unknown") }

// IsLowResImage guesses from the URL whether an image is a thumbnail.
func IsLowResImage(url string) bool {
	if url == "" {
		return false
	}
	lower := strings.ToLower(url)
	for _, ind := range lowResIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// Initials returns up to three upper-cased leading letters, or "?" for a
// blank name.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "?"
	}
	var out []rune
	for _, w := range words {
		if len(out) == 3 {
			break
		}
		r := []rune(w)[0]
		out = append(out, unicode.ToUpper(r))
	}
	return string(out)
}

// FormatViewCount renders a scout view count for display.
func FormatViewCount(count int) string {
	switch count {
	case 0:
		return "No scouts yet"
	case 1:
		return "1 scout checking in"
	default:
		return strconv.Itoa(count) + " scouts checking in"
	}
}

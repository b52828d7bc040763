package ingest

import (
	"strings"
	"unicode"
)

// staffKeywords mark roster rows that belong to coaches and staff. They are
// matched as substrings of the lower-cased name.
var staffKeywords = []string{
	"coach", "staff", "director", "manager", "trainer", "assistant",
	"head coach", "associate", "coordinator", "administrator",
}

// IsValid reports whether r names an athlete: name, college and sport are
// present and the name carries no staff keyword.
func IsValid(r Record) bool {
	name := strings.TrimSpace(r.Name)
	if name == "" || strings.TrimSpace(r.College) == "" || strings.TrimSpace(r.Sport) == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, kw := range staffKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

// CleanName collapses whitespace and title-cases each word. Letters after an
// apostrophe or hyphen start a new capital ("o'neil" becomes "O'Neil"), and
// a standalone "mc", "mac" or "o" is capitalized like any other word, so
// "MCDONALD" becomes "Mcdonald".
func CleanName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	var b strings.Builder
	b.Grow(len(w))
	inWord := false
	for _, r := range w {
		switch {
		case !unicode.IsLetter(r):
			inWord = false
			b.WriteRune(r)
		case inWord:
			b.WriteRune(unicode.ToLower(r))
		default:
			inWord = true
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// Clean drops records that are not athletes and tidies the rest. It returns
// the kept records and how many were dropped.
func Clean(records []Record) ([]Record, int) {
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if !IsValid(r) {
			continue
		}
		r.Name = CleanName(r.Name)
		r.College = strings.TrimSpace(r.College)
		r.Sport = strings.TrimSpace(r.Sport)
		kept = append(kept, r)
	}
	return kept, len(records) - len(kept)
}

package divisions

import "strings"

// institutionWords are dropped wherever they appear, including inside
// longer words ("Colleges" keeps its trailing "s").
var institutionWords = strings.NewReplacer(
	"university", "",
	"college", "",
	"institute", "",
	"school", "",
)

var punctuation = strings.NewReplacer(
	".", "",
	",", "",
	"&", "",
)

// Normalize reduces a college name to the form used by the fuzzy pass.
func Normalize(name string) string {
	s := strings.ToLower(name)
	s = institutionWords.Replace(s)
	s = punctuation.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

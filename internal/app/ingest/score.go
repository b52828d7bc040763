package ingest

import (
	"strings"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
)

// Confidence thresholds, inclusive.
const (
	DuplicateThreshold     = 90.0
	PossibleMatchThreshold = 70.0
)

const (
	nameWeight     = 40.0
	collegeWeight  = 30.0
	sportWeight    = 20.0
	hometownWeight = 10.0
)

// unknownValue is what upstream records carry for fields nobody filled in.
const unknownValue = "Unknown"

// Match is the best existing athlete found for a candidate.
type Match struct {
	Outcome    Outcome
	Existing   athletes.Athlete
	Confidence float64
}

// Compare scores candidate against existing field by field.
func Compare(candidate, existing athletes.Athlete) Comparison {
	c := Comparison{
		NameSimilarity: Similarity(candidate.Name, existing.Name),
		CollegeMatch:   sameValue(candidate.College, existing.College),
		SportMatch:     sameValue(candidate.Sport, existing.Sport),
	}
	if known(candidate.Hometown) && known(existing.Hometown) {
		c.HometownSimilarity = Similarity(strings.TrimSpace(candidate.Hometown), strings.TrimSpace(existing.Hometown))
	}
	return c
}

// Score weights a comparison out of 100: name 40, college 30, sport 20 and
// hometown 10.
func (c Comparison) Score() float64 {
	score := c.NameSimilarity * nameWeight
	if c.CollegeMatch {
		score += collegeWeight
	}
	if c.SportMatch {
		score += sportWeight
	}
	score += c.HometownSimilarity * hometownWeight
	return min(score, 100)
}

// ConfidenceScore is Compare(candidate, existing).Score().
func ConfidenceScore(candidate, existing athletes.Athlete) float64 {
	return Compare(candidate, existing).Score()
}

// Classify finds the highest scoring athlete in pool for candidate. The
// first athlete reaching the top score wins. Candidates below
// PossibleMatchThreshold are new and carry no match.
func Classify(candidate athletes.Athlete, pool []athletes.Athlete) Match {
	var best athletes.Athlete
	bestScore := 0.0
	for _, existing := range pool {
		if score := ConfidenceScore(candidate, existing); score > bestScore {
			best, bestScore = existing, score
		}
	}
	switch {
	case bestScore >= DuplicateThreshold:
		return Match{Outcome: OutcomeDuplicate, Existing: best, Confidence: bestScore}
	case bestScore >= PossibleMatchThreshold:
		return Match{Outcome: OutcomePossibleMatch, Existing: best, Confidence: bestScore}
	default:
		return Match{Outcome: OutcomeNew}
	}
}

func sameValue(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func known(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, unknownValue)
}

package divisions

import "strings"

// Method records which pass produced a match.
type Method string

const (
	MethodExact Method = "exact"
	MethodFuzzy Method = "fuzzy"
	MethodNone  Method = "none"
)

// Match is a classification together with how it was reached.
type Match struct {
	Info      Info   `json:"info"`
	Method    Method `json:"method"`
	Candidate string `json:"candidate,omitempty"`
}

// Classifier maps college names to divisions using a reference Table.
type Classifier struct {
	table *Table
}

// New returns a Classifier backed by table. A nil table classifies
// everything as Unknown.
func New(table *Table) *Classifier {
	return &Classifier{table: table}
}

// Table exposes the reference table the classifier was built with.
func (c *Classifier) Table() *Table {
	if c == nil {
		return nil
	}
	return c.table
}

// Classify returns the division for collegeName. It never fails; names it
// cannot place return UnknownInfo.
func (c *Classifier) Classify(collegeName string) Info {
	return c.Lookup(collegeName).Info
}

// Lookup classifies collegeName and reports the pass and candidate that
// matched.
func (c *Classifier) Lookup(collegeName string) Match {
	none := Match{Info: UnknownInfo, Method: MethodNone}
	if c == nil || c.table == nil || collegeName == "" {
		return none
	}

	if d, ok := c.table.exact(collegeName); ok {
		return Match{Info: d.Info(), Method: MethodExact, Candidate: collegeName}
	}

	// An empty normalized input is a substring of every candidate.
	normalized := Normalize(collegeName)
	if normalized == "" {
		return none
	}

	for _, cand := range c.table.candidates {
		if strings.Contains(cand.normalized, normalized) || strings.Contains(normalized, cand.normalized) {
			return Match{Info: cand.division.Info(), Method: MethodFuzzy, Candidate: cand.name}
		}
	}
	return none
}

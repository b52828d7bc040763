package divisions

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrOverlap is returned when an institution is listed in more than one tier.
var ErrOverlap = errors.New("divisions: institution listed in more than one tier")

// OverlapError names the institutions that break tier disjointness.
type OverlapError struct {
	Conflicts map[string][]Division
}

func (e *OverlapError) Error() string {
	names := make([]string, 0, len(e.Conflicts))
	for name := range e.Conflicts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		tiers := make([]string, 0, len(e.Conflicts[name]))
		for _, d := range e.Conflicts[name] {
			tiers = append(tiers, string(d))
		}
		parts = append(parts, fmt.Sprintf("%q (%s)", name, strings.Join(tiers, ", ")))
	}
	return fmt.Sprintf("%s: %s", ErrOverlap.Error(), strings.Join(parts, "; "))
}

func (e *OverlapError) Unwrap() error { return ErrOverlap }

type candidate struct {
	name       string
	normalized string
	division   Division
}

// Table is an immutable reference of canonical institution names per tier.
type Table struct {
	tiers      map[Division]map[string]struct{}
	names      map[Division][]string
	candidates []candidate
}

// NewTable builds a Table from names per tier. Only D1, D2, D3, NAIA and
// NJCAA are accepted as keys. Duplicate names within a tier are collapsed;
// a name appearing in two tiers fails with an *OverlapError.
func NewTable(sets map[Division][]string) (*Table, error) {
	for d := range sets {
		if !isTier(d) {
			return nil, fmt.Errorf("divisions: unknown tier %q", d)
		}
	}

	t := &Table{
		tiers: make(map[Division]map[string]struct{}, len(priority)),
		names: make(map[Division][]string, len(priority)),
	}
	seenIn := make(map[string][]Division)

	for _, d := range priority {
		members := make(map[string]struct{}, len(sets[d]))
		ordered := make([]string, 0, len(sets[d]))
		for _, raw := range sets[d] {
			name := strings.TrimSpace(raw)
			if name == "" {
				continue
			}
			if _, dup := members[name]; dup {
				continue
			}
			members[name] = struct{}{}
			ordered = append(ordered, name)
			seenIn[name] = append(seenIn[name], d)

			if normalized := Normalize(name); normalized != "" {
				t.candidates = append(t.candidates, candidate{name: name, normalized: normalized, division: d})
			}
		}
		t.tiers[d] = members
		t.names[d] = ordered
	}

	conflicts := make(map[string][]Division)
	for name, tiers := range seenIn {
		if len(tiers) > 1 {
			conflicts[name] = tiers
		}
	}
	if len(conflicts) > 0 {
		return nil, &OverlapError{Conflicts: conflicts}
	}

	return t, nil
}

// Names returns the canonical names for a tier in table order.
func (t *Table) Names(d Division) []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.names[d]))
	copy(out, t.names[d])
	return out
}

// Len returns the number of institutions across all tiers.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	total := 0
	for _, members := range t.tiers {
		total += len(members)
	}
	return total
}

// Tiers returns the tier names in priority order.
func Tiers() []Division {
	out := make([]Division, len(priority))
	copy(out, priority)
	return out
}

func (t *Table) exact(name string) (Division, bool) {
	for _, d := range priority {
		if _, ok := t.tiers[d][name]; ok {
			return d, true
		}
	}
	return "", false
}

func isTier(d Division) bool {
	for _, p := range priority {
		if p == d {
			return true
		}
	}
	return false
}

package divisions

import "strings"

// Division is the competition tier an institution belongs to.
type Division string

const (
	D1      Division = "D1"
	D2      Division = "D2"
	D3      Division = "D3"
	NAIA    Division = "NAIA"
	NJCAA   Division = "NJCAA"
	Unknown Division = "Unknown"
)

// Association is the governing body for a division.
type Association string

const (
	AssociationNCAA    Association = "NCAA"
	AssociationNAIA    Association = "NAIA"
	AssociationNJCAA   Association = "NJCAA"
	AssociationUnknown Association = "Unknown"
)

// Info is the classification attached to an athlete's college.
type Info struct {
	Division    Division    `json:"division"`
	Association Association `json:"association"`
	FullName    string      `json:"fullName"`
}

// UnknownInfo is returned when a college cannot be classified.
var UnknownInfo = Unknown.Info()

// priority is the order tiers are consulted in; it also breaks ties.
var priority = []Division{D1, D2, D3, NAIA, NJCAA}

// Association returns the governing body for the division.
func (d Division) Association() Association {
	switch d {
	case D1, D2, D3:
		return AssociationNCAA
	case NAIA:
		return AssociationNAIA
	case NJCAA:
		return AssociationNJCAA
	default:
		return AssociationUnknown
	}
}

// FullName returns the human-readable label, e.g. "NCAA Division I".
func (d Division) FullName() string {
	switch d {
	case D1:
		return "NCAA Division I"
	case D2:
		return "NCAA Division II"
	case D3:
		return "NCAA Division III"
	case NAIA:
		return "NAIA"
	case NJCAA:
		return "NJCAA"
	default:
		return "Unknown Division"
	}
}

// Info builds the full classification record for the division.
// Divisions outside the enumeration collapse to UnknownInfo.
func (d Division) Info() Info {
	if !d.valid() {
		d = Unknown
	}
	return Info{
		Division:    d,
		Association: d.Association(),
		FullName:    d.FullName(),
	}
}

// IsKnown reports whether the info carries a real classification.
func (i Info) IsKnown() bool {
	return i.Division != Unknown && i.Division != ""
}

func (d Division) valid() bool {
	switch d {
	case D1, D2, D3, NAIA, NJCAA, Unknown:
		return true
	}
	return false
}

// AllDivisions lists every value Classify can produce, in filter order.
func AllDivisions() []Division {
	return []Division{D1, D2, D3, NAIA, NJCAA, Unknown}
}

// AllAssociations lists every association Classify can produce.
func AllAssociations() []Association {
	return []Association{AssociationNCAA, AssociationNAIA, AssociationNJCAA, AssociationUnknown}
}

// ParseDivision parses a filter value case-insensitively.
// "JUCO" is accepted as an alias for NJCAA.
func ParseDivision(raw string) (Division, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "D1":
		return D1, true
	case "D2":
		return D2, true
	case "D3":
		return D3, true
	case "NAIA":
		return NAIA, true
	case "NJCAA", "JUCO":
		return NJCAA, true
	case "UNKNOWN":
		return Unknown, true
	}
	return "", false
}

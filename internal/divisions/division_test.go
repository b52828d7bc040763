package divisions

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDivisionInfo(t *testing.T) {
	cases := []struct {
		division    Division
		association Association
		fullName    string
	}{
		{D1, AssociationNCAA, "NCAA Division I"},
		{D2, AssociationNCAA, "NCAA Division II"},
		{D3, AssociationNCAA, "NCAA Division III"},
		{NAIA, AssociationNAIA, "NAIA"},
		{NJCAA, AssociationNJCAA, "NJCAA"},
		{Unknown, AssociationUnknown, "Unknown Division"},
	}
	for _, tc := range cases {
		info := tc.division.Info()
		if info.Division != tc.division || info.Association != tc.association || info.FullName != tc.fullName {
			t.Fatalf("%s: unexpected info %+v", tc.division, info)
		}
	}

	if got := Division("D7").Info(); got != UnknownInfo {
		t.Fatalf("expected unknown for out-of-range division, got %+v", got)
	}
}

func TestAllDivisionsMatchesClassifierOutputs(t *testing.T) {
	want := []Division{D1, D2, D3, NAIA, NJCAA, Unknown}
	if diff := cmp.Diff(want, AllDivisions()); diff != "" {
		t.Fatalf("divisions mismatch (-want +got):\n%s", diff)
	}

	// Every tier plus the sentinel must be listed.
	listed := make(map[Division]bool)
	for _, d := range AllDivisions() {
		listed[d] = true
	}
	for _, d := range Tiers() {
		if !listed[d] {
			t.Fatalf("tier %s missing from AllDivisions", d)
		}
	}
	if !listed[UnknownInfo.Division] {
		t.Fatal("unknown sentinel missing from AllDivisions")
	}
}

func TestAllAssociations(t *testing.T) {
	want := []Association{AssociationNCAA, AssociationNAIA, AssociationNJCAA, AssociationUnknown}
	if diff := cmp.Diff(want, AllAssociations()); diff != "" {
		t.Fatalf("associations mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDivision(t *testing.T) {
	cases := []struct {
		in   string
		want Division
		ok   bool
	}{
		{"d1", D1, true},
		{" D2 ", D2, true},
		{"D3", D3, true},
		{"naia", NAIA, true},
		{"NJCAA", NJCAA, true},
		{"juco", NJCAA, true},
		{"unknown", Unknown, true},
		{"D4", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseDivision(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseDivision(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestInfoIsKnown(t *testing.T) {
	if UnknownInfo.IsKnown() {
		t.Fatal("unknown sentinel should not be known")
	}
	if !D1.Info().IsKnown() {
		t.Fatal("D1 should be known")
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Duke University":                    "duke",
		"  University of   Findlay ":         "of findlay",
		"Texas A&M University-Commerce":      "texas am -commerce",
		"St. Lawrence University":            "st lawrence",
		"Hobart and William Smith Colleges":  "hobart and william smith s",
		"Colorado School of Mines":           "colorado of mines",
		"California State University, Chico": "california state chico",
		"College":                            "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

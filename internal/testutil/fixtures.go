package testutil

import (
	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
)

// SampleAthlete returns a complete athlete fixture with the provided id,
// name and college.
func SampleAthlete(id, name, college string) athletes.Athlete {
	return athletes.Athlete{
		ID:          id,
		Name:        name,
		Sport:       "Tennis",
		Year:        "2026",
		Hometown:    "Melbourne",
		College:     college,
		Nationality: "Australian",
		Gender:      "Female",
	}
}

// SampleAthletes returns one athlete per division tier plus an
// unclassifiable college.
func SampleAthletes() []athletes.Athlete {
	list := []athletes.Athlete{
		SampleAthlete("rec-d1", "Mia Chen", "Duke University"),
		SampleAthlete("rec-d2", "Ava Brooks", "University of Findlay"),
		SampleAthlete("rec-d3", "Noah Reid", "Williams College"),
		SampleAthlete("rec-naia", "Liam Ward", "Taylor University"),
		SampleAthlete("rec-njcaa", "Zoe Hart", "Blinn College"),
		SampleAthlete("rec-unknown", "Sam Ray", "Perth"),
	}
	list[2].Sport = "Rowing"
	list[2].Gender = "Male"
	list[3].Nationality = "New Zealander"
	list[4].Year = "2025"
	return list
}

package airtable

import (
	"strings"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
)

const unknownValue = "Unknown"

func mapAthlete(r recordResponse) athletes.Athlete {
	f := r.Fields
	return athletes.Athlete{
		ID:            r.ID,
		Name:          athletes.FallbackValue(f.Name, unknownValue),
		Sport:         athletes.FallbackValue(f.Sport, unknownValue),
		Year:          athletes.FallbackValue(f.Year, unknownValue),
		Hometown:      athletes.FallbackValue(f.Hometown, unknownValue),
		College:       athletes.FallbackValue(f.College, unknownValue),
		Image:         firstAttachmentURL(f.Image),
		HighSchool:    strings.TrimSpace(f.HighSchool),
		Nationality:   athletes.FallbackValue(f.Nationality, athletes.DefaultNationality),
		Gender:        strings.TrimSpace(f.Gender),
		Verified:      f.IsVerified,
		ClaimedStatus: strings.TrimSpace(f.ClaimedStatus),
	}
}

func mapCreateFields(a athletes.Athlete) createFields {
	f := createFields{
		Name:        strings.TrimSpace(a.Name),
		Sport:       strings.TrimSpace(a.Sport),
		Year:        strings.TrimSpace(a.Year),
		Hometown:    strings.TrimSpace(a.Hometown),
		College:     strings.TrimSpace(a.College),
		HighSchool:  strings.TrimSpace(a.HighSchool),
		Nationality: strings.TrimSpace(a.Nationality),
		Gender:      strings.TrimSpace(a.Gender),
	}
	if img := strings.TrimSpace(a.Image); img != "" {
		f.Image = []attachment{{URL: img}}
	}
	return f
}

func firstAttachmentURL(images []attachment) string {
	for _, img := range images {
		if img.URL != "" {
			return img.URL
		}
	}
	return ""
}

package ingest

import (
	"strings"
	"time"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
)

// MaxRecords caps a single import request.
const MaxRecords = 10000

// Outcome is what an import decided for one submitted record.
type Outcome string

const (
	OutcomeNew           Outcome = "new"
	OutcomeDuplicate     Outcome = "duplicate"
	OutcomePossibleMatch Outcome = "possible_match"
	OutcomeFiltered      Outcome = "filtered"
)

// Record is one scraped roster entry submitted for import.
type Record struct {
	Name        string `json:"name"`
	College     string `json:"college"`
	Sport       string `json:"sport"`
	Year        string `json:"year,omitempty"`
	Hometown    string `json:"hometown,omitempty"`
	HighSchool  string `json:"highSchool,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Athlete converts the record into a directory athlete without an ID.
func (r Record) Athlete() athletes.Athlete {
	return athletes.Athlete{
		Name:        strings.TrimSpace(r.Name),
		College:     strings.TrimSpace(r.College),
		Sport:       strings.TrimSpace(r.Sport),
		Year:        strings.TrimSpace(r.Year),
		Hometown:    strings.TrimSpace(r.Hometown),
		HighSchool:  strings.TrimSpace(r.HighSchool),
		Nationality: strings.TrimSpace(r.Nationality),
		Gender:      strings.TrimSpace(r.Gender),
		Image:       strings.TrimSpace(r.Image),
	}
}

// Request is an import batch. DryRun classifies without creating anything
// upstream.
type Request struct {
	Athletes []Record `json:"athletes" validate:"min=1,max=10000"`
	DryRun   bool     `json:"dryRun"`
}

// Comparison breaks a confidence score into its parts.
type Comparison struct {
	NameSimilarity     float64 `json:"nameSimilarity"`
	CollegeMatch       bool    `json:"collegeMatch"`
	SportMatch         bool    `json:"sportMatch"`
	HometownSimilarity float64 `json:"hometownSimilarity"`
}

// Review is a possible match held back for a person to decide.
type Review struct {
	Record       Record     `json:"record"`
	ExistingID   string     `json:"existingId,omitempty"`
	ExistingName string     `json:"existingName"`
	Confidence   float64    `json:"confidence"`
	Comparison   Comparison `json:"comparison"`
}

// Result summarizes an import. Uploaded counts are the records classified
// as new; UploadedIDs stays empty on a dry run.
type Result struct {
	Success            bool      `json:"success"`
	DryRun             bool      `json:"dryRun"`
	Timestamp          time.Time `json:"timestamp"`
	ProcessingTimeMS   int64     `json:"processingTimeMs"`
	TotalInput         int       `json:"totalInput"`
	UploadedCount      int       `json:"uploadedCount"`
	DuplicateCount     int       `json:"duplicateCount"`
	PossibleMatchCount int       `json:"possibleMatchCount"`
	FilteredCount      int       `json:"filteredCount"`
	UploadedNames      []string  `json:"uploadedNames"`
	DuplicateNames     []string  `json:"duplicateNames"`
	PossibleMatchNames []string  `json:"possibleMatchNames"`
	UploadedIDs        []string  `json:"uploadedIds"`
	PossibleMatches    []Review  `json:"possibleMatches"`
}

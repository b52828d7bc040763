package athletes

import "github.com/gng-scout/athlete-directory-service/internal/divisions"

// Athlete is the canonical athlete record exposed by the service.
type Athlete struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Sport         string `json:"sport"`
	Year          string `json:"year"`
	Hometown      string `json:"hometown"`
	College       string `json:"college"`
	Image         string `json:"image,omitempty"`
	HighSchool    string `json:"highSchool,omitempty"`
	Nationality   string `json:"nationality,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Verified      bool   `json:"verified"`
	ClaimedStatus string `json:"claimedStatus,omitempty"`
}

// Profile is an athlete enriched with its division and display values.
type Profile struct {
	Athlete
	Division        divisions.Info `json:"division"`
	DisplayName     string         `json:"displayName"`
	DisplayCollege  string         `json:"displayCollege"`
	DisplayHometown string         `json:"displayHometown"`
	DisplaySport    string         `json:"displaySport"`
	DisplayYear     string         `json:"displayYear"`
	Initials        string         `json:"initials"`
	LowResImage     bool           `json:"lowResImage"`
	Views           int            `json:"views"`
	ViewsLabel      string         `json:"viewsLabel"`
	Validation      Validation     `json:"validation"`
}

// Summary is the compact shape returned by name search.
type Summary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	College string `json:"college"`
	Sport   string `json:"sport"`
	Image   string `json:"image,omitempty"`
}

// NewProfile builds the display view for a classified athlete.
func NewProfile(a Athlete, info divisions.Info, views int) Profile {
	return Profile{
		Athlete:         a,
		Division:        info,
		DisplayName:     DisplayName(a.Name),
		DisplayCollege:  DisplayCollege(a.College),
		DisplayHometown: DisplayHometown(a.Hometown),
		DisplaySport:    DisplaySport(a.Sport),
		DisplayYear:     DisplayYear(a.Year),
		Initials:        Initials(a.Name),
		LowResImage:     IsLowResImage(a.Image),
		Views:           views,
		ViewsLabel:      FormatViewCount(views),
		Validation:      Validate(a),
	}
}

// Summarize trims an athlete down to its search result shape.
func Summarize(a Athlete) Summary {
	return Summary{ID: a.ID, Name: a.Name, College: a.College, Sport: a.Sport, Image: a.Image}
}

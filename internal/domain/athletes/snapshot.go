package athletes

import "time"

// DirectorySnapshot is a dated copy of the full directory as fetched upstream.
type DirectorySnapshot struct {
	Date        string    `json:"date"`
	GeneratedAt time.Time `json:"generatedAt"`
	Count       int       `json:"count"`
	Athletes    []Athlete `json:"athletes"`
}

// NewDirectorySnapshot builds a snapshot for date from list.
func NewDirectorySnapshot(date string, generatedAt time.Time, list []Athlete) DirectorySnapshot {
	return DirectorySnapshot{
		Date:        date,
		GeneratedAt: generatedAt.UTC(),
		Count:       len(list),
		Athletes:    list,
	}
}

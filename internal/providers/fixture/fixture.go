package fixture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/providers"
)

// Provider serves a static directory useful for local development and
// bootstrapping. Verifications and created athletes are kept in memory.
type Provider struct {
	now func() time.Time

	mu       sync.Mutex
	verified map[string]bool
	created  []athletes.Athlete
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now:      time.Now,
		verified: make(map[string]bool),
	}
}

var sample = []athletes.Athlete{
	{ID: "fixture-1", Name: "Mia Thompson", Sport: "Tennis", Year: "2026", Hometown: "Perth, WA", College: "Duke University", HighSchool: "Perth Modern School", Nationality: "Australian", Gender: "Female"},
	{ID: "fixture-2", Name: "Liam O'Connor", Sport: "Golf", Year: "2025", Hometown: "Auckland", College: "University of Findlay", Nationality: "New Zealand", Gender: "Male"},
	{ID: "fixture-3", Name: "Chloe Nguyen", Sport: "Swimming", Year: "2027", Hometown: "Brisbane, QLD", College: "Williams College", Nationality: "Australian", Gender: "Female"},
	{ID: "fixture-4", Name: "Jack Wilson", Sport: "Basketball", Year: "2026", Hometown: "Melbourne, VIC", College: "Taylor University", Gender: "Male"},
	{ID: "fixture-5", Name: "Ruby Harris", Sport: "Softball", Year: "2028", Hometown: "Adelaide, SA", College: "Blinn College", Nationality: "Australian", Gender: "Female"},
	{ID: "fixture-6", Name: "Noah Patel", Sport: "Cricket", Year: "2025", Hometown: "Sydney, NSW", College: "Some Random Trade School", Nationality: "Other", Gender: "Male"},
}

// FetchAthletes returns the example athletes followed by any created ones.
func (p *Provider) FetchAthletes(ctx context.Context) ([]athletes.Athlete, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]athletes.Athlete, 0, len(sample)+len(p.created))
	out = append(out, sample...)
	out = append(out, p.created...)
	for i := range out {
		if p.verified[out[i].ID] {
			out[i].Verified = true
			out[i].ClaimedStatus = "claimed"
		}
	}
	return out, nil
}

// VerifyAthlete marks a sample or created athlete verified.
func (p *Provider) VerifyAthlete(ctx context.Context, id string, v athletes.Verification) (time.Time, error) {
	_ = ctx
	_ = v
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.knownLocked(id) {
		return time.Time{}, providers.ErrNotFound
	}
	p.verified[id] = true
	return p.now().UTC(), nil
}

// CreateAthletes appends the athletes to the in-memory directory with
// fixture-new-N IDs.
func (p *Provider) CreateAthletes(ctx context.Context, list []athletes.Athlete) ([]athletes.Athlete, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]athletes.Athlete, len(list))
	for i, a := range list {
		a.ID = fmt.Sprintf("fixture-new-%d", len(p.created)+1)
		a.Verified = false
		a.ClaimedStatus = ""
		p.created = append(p.created, a)
		out[i] = a
	}
	return out, nil
}

func (p *Provider) knownLocked(id string) bool {
	for _, a := range sample {
		if a.ID == id {
			return true
		}
	}
	for _, a := range p.created {
		if a.ID == id {
			return true
		}
	}
	return false
}

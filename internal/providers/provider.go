package providers

import (
	"context"
	"time"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
)

// AthleteProvider fetches the full athlete directory from an upstream source.
type AthleteProvider interface {
	FetchAthletes(ctx context.Context) ([]athletes.Athlete, error)
}

// AthleteVerifier records a verification upstream and returns the time it
// was stamped with.
type AthleteVerifier interface {
	VerifyAthlete(ctx context.Context, id string, v athletes.Verification) (time.Time, error)
}

// MaxCreateBatch is the most records one upstream create call accepts.
const MaxCreateBatch = 10

// AthleteWriter adds new athlete records upstream and returns them with the
// IDs the upstream assigned.
type AthleteWriter interface {
	CreateAthletes(ctx context.Context, list []athletes.Athlete) ([]athletes.Athlete, error)
}

// DirectoryProvider combines all provider capabilities.
type DirectoryProvider interface {
	AthleteProvider
	AthleteVerifier
	AthleteWriter
}

package testutil

import (
	"github.com/gng-scout/athlete-directory-service/internal/app/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/divisions"
	domainathletes "github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/store"
)

// NewAthleteService builds a directory service over an in-memory store
// preloaded with list and the embedded division table.
func NewAthleteService(list []domainathletes.Athlete, opts ...athletes.Option) *athletes.Service {
	ms := store.NewMemoryStore()
	if len(list) > 0 {
		ms.SetAthletes(list)
	}
	return athletes.NewService(ms, divisions.MustDefault(), opts...)
}

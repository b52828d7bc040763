package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
)

// MemoryStore keeps a thread-safe snapshot of the athlete directory in memory.
type MemoryStore struct {
	mu       sync.RWMutex
	athletes map[string]athletes.Athlete
	ordered  []athletes.Athlete
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		athletes: make(map[string]athletes.Athlete),
	}
}

// ListAthletes returns a copy of the directory sorted by name then ID.
func (s *MemoryStore) ListAthletes() []athletes.Athlete {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]athletes.Athlete, len(s.ordered))
	copy(result, s.ordered)
	return result
}

// GetAthlete retrieves an athlete by ID.
func (s *MemoryStore) GetAthlete(id string) (athletes.Athlete, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.athletes[id]
	return a, ok
}

// UpdateAthlete applies fn to a stored athlete. It reports false when the
// ID is unknown.
func (s *MemoryStore) UpdateAthlete(id string, fn func(*athletes.Athlete)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.athletes[id]
	if !ok {
		return false
	}
	fn(&a)
	a.ID = id
	s.athletes[id] = a
	s.rebuildLocked()
	return true
}

// SetAthletes replaces the existing directory with a new snapshot. Records
// without an ID are dropped; later duplicates win.
func (s *MemoryStore) SetAthletes(list []athletes.Athlete) {
	next := make(map[string]athletes.Athlete, len(list))
	for _, a := range list {
		if a.ID == "" {
			continue
		}
		next[a.ID] = a
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.athletes = next
	s.rebuildLocked()
}

// Len returns the number of stored athletes.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.athletes)
}

func (s *MemoryStore) rebuildLocked() {
	ordered := make([]athletes.Athlete, 0, len(s.athletes))
	for _, a := range s.athletes {
		ordered = append(ordered, a)
	}
	sort.Slice(ordered, func(i, j int) bool {
		ni, nj := strings.ToLower(ordered[i].Name), strings.ToLower(ordered[j].Name)
		if ni != nj {
			return ni < nj
		}
		return ordered[i].ID < ordered[j].ID
	})
	s.ordered = ordered
}

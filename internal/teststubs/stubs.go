package teststubs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
)

// StubProvider is a test double for providers.DirectoryProvider.
type StubProvider struct {
	Athletes   []athletes.Athlete
	Err        error
	VerifyErr  error
	CreateErr  error
	VerifiedAt time.Time
	Calls      atomic.Int32
	Notify     chan struct{}

	mu       sync.Mutex
	verified []string
	created  [][]athletes.Athlete
}

// FetchAthletes returns configured athletes and error while tracking calls.
func (s *StubProvider) FetchAthletes(ctx context.Context) ([]athletes.Athlete, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Athletes, s.Err
}

// VerifyAthlete records the ID and returns VerifiedAt or VerifyErr.
func (s *StubProvider) VerifyAthlete(ctx context.Context, id string, v athletes.Verification) (time.Time, error) {
	_ = ctx
	_ = v
	if s.VerifyErr != nil {
		return time.Time{}, s.VerifyErr
	}
	s.mu.Lock()
	s.verified = append(s.verified, id)
	s.mu.Unlock()
	return s.VerifiedAt, nil
}

// CreateAthletes records the batch and returns it with IDs created-1,
// created-2, ... numbered across calls.
func (s *StubProvider) CreateAthletes(ctx context.Context, list []athletes.Athlete) ([]athletes.Athlete, error) {
	_ = ctx
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := 0
	for _, batch := range s.created {
		seen += len(batch)
	}
	out := append([]athletes.Athlete(nil), list...)
	for i := range out {
		out[i].ID = fmt.Sprintf("created-%d", seen+i+1)
	}
	s.created = append(s.created, out)
	return out, nil
}

// Created returns each batch passed to CreateAthletes.
func (s *StubProvider) Created() [][]athletes.Athlete {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]athletes.Athlete(nil), s.created...)
}

// Verified returns the IDs passed to VerifyAthlete.
func (s *StubProvider) Verified() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.verified...)
}

// StubSnapshotStore is a test double for snapshots.Store.
type StubSnapshotStore struct {
	Snapshots map[string]athletes.DirectorySnapshot // keyed by date
	LoadErr   error
}

// LoadDirectory returns the snapshot for date if present.
func (s *StubSnapshotStore) LoadDirectory(date string) (athletes.DirectorySnapshot, error) {
	if s.LoadErr != nil {
		return athletes.DirectorySnapshot{}, s.LoadErr
	}
	snap, ok := s.Snapshots[date]
	if !ok {
		return athletes.DirectorySnapshot{}, errors.New("snapshot not found")
	}
	return snap, nil
}

// LoadLatest returns the snapshot with the greatest date key.
func (s *StubSnapshotStore) LoadLatest() (athletes.DirectorySnapshot, error) {
	if s.LoadErr != nil {
		return athletes.DirectorySnapshot{}, s.LoadErr
	}
	latest := ""
	for date := range s.Snapshots {
		if date > latest {
			latest = date
		}
	}
	if latest == "" {
		return athletes.DirectorySnapshot{}, errors.New("snapshot not found")
	}
	return s.Snapshots[latest], nil
}

// StubSnapshotWriter is a test double for refresher.SnapshotWriter.
type StubSnapshotWriter struct {
	Err error

	mu      sync.Mutex
	written map[string]athletes.DirectorySnapshot
}

// WriteDirectorySnapshot records the snapshot for verification in tests.
func (w *StubSnapshotWriter) WriteDirectorySnapshot(date string, snapshot athletes.DirectorySnapshot) error {
	if w.Err != nil {
		return w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written == nil {
		w.written = make(map[string]athletes.DirectorySnapshot)
	}
	w.written[date] = snapshot
	return nil
}

// Written returns a copy of the recorded snapshots keyed by date.
func (w *StubSnapshotWriter) Written() map[string]athletes.DirectorySnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]athletes.DirectorySnapshot, len(w.written))
	for k, v := range w.written {
		out[k] = v
	}
	return out
}

package snapshots

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/timeutil"
)

// ErrNoSnapshot is returned when no usable snapshot exists.
var ErrNoSnapshot = errors.New("no snapshot available")

// Store defines how snapshots are loaded.
type Store interface {
	LoadDirectory(date string) (athletes.DirectorySnapshot, error)
	LoadLatest() (athletes.DirectorySnapshot, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadDirectory reads the snapshot for date (YYYY-MM-DD) from
// {basePath}/athletes/{date}.json.
func (s *FSStore) LoadDirectory(date string) (athletes.DirectorySnapshot, error) {
	if s == nil {
		return athletes.DirectorySnapshot{}, errors.New("snapshot store not configured")
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return athletes.DirectorySnapshot{}, errors.New("snapshot date must be YYYY-MM-DD")
	}
	var payload athletes.DirectorySnapshot
	if err := decodeFile(DirectorySnapshotPath(s.basePath, date), &payload); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return athletes.DirectorySnapshot{}, ErrNoSnapshot
		}
		return athletes.DirectorySnapshot{}, err
	}
	if payload.Date == "" {
		payload.Date = date
	}
	if payload.Count == 0 {
		payload.Count = len(payload.Athletes)
	}
	return payload, nil
}

// LoadLatest reads the most recent snapshot on disk, skipping unreadable
// files.
func (s *FSStore) LoadLatest() (athletes.DirectorySnapshot, error) {
	if s == nil {
		return athletes.DirectorySnapshot{}, errors.New("snapshot store not configured")
	}
	dates, err := listDates(s.basePath, kindDirectory)
	if err != nil {
		return athletes.DirectorySnapshot{}, err
	}
	for i := len(dates) - 1; i >= 0; i-- {
		snap, err := s.LoadDirectory(dates[i])
		if err == nil {
			return snap, nil
		}
	}
	return athletes.DirectorySnapshot{}, ErrNoSnapshot
}

// HasSnapshot reports whether a snapshot file exists for date.
func (s *FSStore) HasSnapshot(date string) bool {
	if s == nil || s.basePath == "" || date == "" {
		return false
	}
	_, err := os.Stat(DirectorySnapshotPath(s.basePath, date))
	return err == nil
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}

package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/timeutil"
)

type snapshotKind string

const (
	kindDirectory snapshotKind = "athletes"
)

const defaultRetentionDays = 14

// Writer persists snapshots and manifest with pruning.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteDirectorySnapshot writes the directory snapshot for date (YYYY-MM-DD)
// and prunes snapshots older than the retention window.
func (w *Writer) WriteDirectorySnapshot(date string, snapshot athletes.DirectorySnapshot) error {
	if snapshot.Date == "" {
		snapshot.Date = date
	}
	list := make([]athletes.Athlete, len(snapshot.Athletes))
	copy(list, snapshot.Athletes)
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	snapshot.Athletes = list
	snapshot.Count = len(list)
	return w.writeSnapshot(kindDirectory, date, snapshot, snapshot.Count)
}

func (w *Writer) writeSnapshot(kind snapshotKind, date string, payload any, count int) error {
	if w == nil {
		return errors.New("snapshot writer not configured")
	}
	if date == "" {
		return errors.New("date required")
	}

	target := DirectorySnapshotPath(w.basePath, date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return w.updateManifest(kind, date, count)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}

	return w.updateManifest(kind, date, count)
}

func (w *Writer) updateManifest(kind snapshotKind, date string, count int) error {
	m, _ := readManifest(manifestPath(w.basePath), w.retentionDays)

	dates, err := listDates(w.basePath, kind)
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}
	pruned := w.pruneOldSnapshots(dates)

	m.Directory.Dates = pruned
	m.Directory.LastRefreshed = w.now().UTC()
	m.Directory.LastCount = count
	m.Retention.DirectoryDays = w.retentionDays

	return writeManifest(w.basePath, m)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func listDates(basePath string, kind snapshotKind) ([]string, error) {
	dir := filepath.Join(basePath, string(kind))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var (
		dates []string
		seen  = make(map[string]struct{})
	)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".json" {
			continue
		}
		base := name[:len(name)-len(".json")]
		if _, ok := seen[base]; ok {
			continue
		}
		seen[base] = struct{}{}
		dates = append(dates, base)
	}
	sort.Strings(dates)
	return dates, nil
}

func (w *Writer) pruneOldSnapshots(dates []string) []string {
	now := w.now().UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -w.retentionDays)
	keep := []string{}
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err != nil {
			keep = append(keep, d)
			continue
		}
		if parsed.Before(cutoff) {
			_ = os.Remove(DirectorySnapshotPath(w.basePath, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}

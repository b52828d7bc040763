package testutil

import (
	"errors"
	"testing"
	"time"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/snapshots"
)

// NewTempWriter returns a snapshot writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention)
}

// WriteSnapshot writes a directory snapshot holding the sample athletes.
func WriteSnapshot(t *testing.T, w *snapshots.Writer, date string) {
	t.Helper()
	if err := writeSnapshotPayload(w, date); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", date, err)
	}
}

// SnapshotPath returns the file a writer uses for date.
func SnapshotPath(w *snapshots.Writer, date string) string {
	return snapshots.DirectorySnapshotPath(w.BasePath(), date)
}

func writeSnapshotPayload(w *snapshots.Writer, date string) error {
	if w == nil {
		return errors.New("nil snapshot writer")
	}
	list := SampleAthletes()
	return w.WriteDirectorySnapshot(date, athletes.NewDirectorySnapshot(date, time.Now(), list))
}

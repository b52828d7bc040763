package snapshots

import (
	"os"
	"testing"
	"time"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
)

func simpleSnapshot(date string) athletes.DirectorySnapshot {
	return athletes.NewDirectorySnapshot(date, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), []athletes.Athlete{
		{ID: date, Name: "Athlete " + date},
	})
}

func writeSnapshot(t *testing.T, w *Writer, date string, snap athletes.DirectorySnapshot) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil for date %s", date)
	}
	if err := w.WriteDirectorySnapshot(date, snap); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", date, err)
	}
}

func writeSimpleSnapshot(t *testing.T, w *Writer, date string) {
	t.Helper()
	writeSnapshot(t, w, date, simpleSnapshot(date))
}

func requireSnapshotExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	if _, err := os.Stat(DirectorySnapshotPath(w.BasePath(), date)); err != nil {
		t.Fatalf("expected snapshot for %s to be written: %v", date, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

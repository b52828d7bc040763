package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
)

func TestWriterWritesSnapshotAndManifest(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)

	today := time.Now().UTC().Format("2006-01-02")
	snap := athletes.DirectorySnapshot{
		Athletes: []athletes.Athlete{{ID: "b"}, {ID: "a"}},
	}
	writeSnapshot(t, w, today, snap)

	data, err := os.ReadFile(filepath.Join(dir, "athletes", today+".json"))
	if err != nil {
		t.Fatalf("expected snapshot file, got err %v", err)
	}
	var got athletes.DirectorySnapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if got.Date != today || got.Count != 2 || got.Athletes[0].ID != "a" {
		t.Fatalf("expected dated, counted, sorted snapshot, got %+v", got)
	}
	if snap.Athletes[0].ID != "b" {
		t.Fatalf("expected caller slice to be left unsorted")
	}

	m, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("expected manifest, got err %v", err)
	}
	assertDatesEqual(t, m.Directory.Dates, []string{today})
	if m.Directory.LastCount != 2 || m.Retention.DirectoryDays != 10 || m.Directory.LastRefreshed.IsZero() {
		t.Fatalf("unexpected manifest %+v", m)
	}
}

func TestWriterPrunesOldSnapshots(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 1)

	oldDate := time.Now().UTC().AddDate(0, 0, -5).Format("2006-01-02")
	newDate := time.Now().UTC().Format("2006-01-02")

	for _, d := range []string{oldDate, newDate} {
		writeSimpleSnapshot(t, w, d)
	}

	if _, err := os.Stat(DirectorySnapshotPath(dir, oldDate)); err == nil {
		t.Fatalf("expected old snapshot to be pruned")
	}
	requireSnapshotExists(t, w, newDate)

	m, _ := ReadManifest(dir)
	assertDatesEqual(t, m.Directory.Dates, []string{newDate})
}

func TestWriterRewriteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 5)
	date := time.Now().UTC().Format("2006-01-02")

	writeSimpleSnapshot(t, w, date)
	first, _ := os.ReadFile(DirectorySnapshotPath(dir, date))
	writeSimpleSnapshot(t, w, date)
	second, _ := os.ReadFile(DirectorySnapshotPath(dir, date))

	if string(first) != string(second) {
		t.Fatalf("expected identical snapshot content on rewrite")
	}
	if _, err := os.Stat(DirectorySnapshotPath(dir, date) + ".tmp"); err == nil {
		t.Fatalf("expected no leftover tmp file")
	}
}

func TestWriterHandlesNilAndEmptyDate(t *testing.T) {
	var w *Writer
	if err := w.WriteDirectorySnapshot("2024-01-01", athletes.DirectorySnapshot{}); err == nil {
		t.Fatalf("expected error for nil writer")
	}

	w = NewWriter(t.TempDir(), 1)
	if err := w.WriteDirectorySnapshot("", athletes.DirectorySnapshot{}); err == nil {
		t.Fatalf("expected error for empty date")
	}
}

func TestNewWriterDefaultsRetention(t *testing.T) {
	w := NewWriter(t.TempDir(), 0)
	if w.retentionDays != defaultRetentionDays {
		t.Fatalf("expected retention to default when non-positive provided")
	}
}

func TestListDatesIgnoresNonJSONAndDirs(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "athletes", "nested"), 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "athletes", "2024-01-01.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "athletes", "ignore.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write extra file: %v", err)
	}

	dates, err := listDates(dir, kindDirectory)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	assertDatesEqual(t, dates, []string{"2024-01-01"})

	empty, err := listDates(t.TempDir(), kindDirectory)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected no dates for missing dir, got %v err %v", empty, err)
	}
}

func TestBasePathExposesRoot(t *testing.T) {
	base := t.TempDir()
	w := NewWriter(base, 1)
	if w.BasePath() != base {
		t.Fatalf("expected base path %s, got %s", base, w.BasePath())
	}
	var nilWriter *Writer
	if nilWriter.BasePath() != "" {
		t.Fatalf("expected empty base path for nil writer")
	}
}

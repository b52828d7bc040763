package server

import (
	"github.com/gng-scout/athlete-directory-service/internal/config"
	"github.com/gng-scout/athlete-directory-service/internal/refresher"
	"github.com/gng-scout/athlete-directory-service/internal/snapshots"
)

type snapshotComponents struct {
	store  refresher.SnapshotLoader
	writer refresher.SnapshotWriter
}

// buildSnapshots returns empty components when no snapshot folder is
// configured; the refresher then skips warming and writing.
func buildSnapshots(cfg config.Config) snapshotComponents {
	basePath := cfg.Snapshots.Dir
	if basePath == "" {
		return snapshotComponents{}
	}
	return snapshotComponents{
		store:  snapshots.NewFSStore(basePath),
		writer: snapshots.NewWriter(basePath, cfg.Snapshots.RetentionDays),
	}
}

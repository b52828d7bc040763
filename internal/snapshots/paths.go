package snapshots

import (
	"fmt"
	"path/filepath"
)

const manifestFile = "manifest.json"

// DirectorySnapshotPath builds the path to a directory snapshot for a given date.
func DirectorySnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, string(kindDirectory), fmt.Sprintf("%s.json", date))
}

func manifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}

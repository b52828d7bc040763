package config

// SnapshotConfig controls on-disk directory snapshots.
type SnapshotConfig struct {
	Dir           string
	RetentionDays int
}

func loadSnapshots() SnapshotConfig {
	return SnapshotConfig{
		Dir:           envOrDefault(envSnapshotDir, defaultSnapshotDir),
		RetentionDays: intEnvOrDefault(envSnapshotDays, defaultSnapshotDays),
	}
}

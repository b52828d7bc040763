package config

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	RefreshInterval Duration
	Provider        string
	AdminToken      string
	DatabasePath    string
	DivisionsFile   string
	Airtable        AirtableConfig
	OpenAI          OpenAIConfig
	Snapshots       SnapshotConfig
	Metrics         MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		Provider:        envOrDefault(envProvider, defaultProvider),
		AdminToken:      envOrDefault(envAdminToken, ""),
		DatabasePath:    envOrDefault(envDatabasePath, defaultDatabasePath),
		DivisionsFile:   envOrDefault(envDivisionsFile, ""),
		Airtable:        loadAirtable(),
		OpenAI:          loadOpenAI(),
		Snapshots:       loadSnapshots(),
		Metrics:         loadMetrics(),
	}
}

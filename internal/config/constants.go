package config

import "time"

const (
	envPort            = "PORT"
	envRefreshInterval = "REFRESH_INTERVAL"
	envProvider        = "PROVIDER"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken      = "ADMIN_TOKEN"
	envDatabasePath    = "DATABASE_PATH"
	envDivisionsFile   = "DIVISIONS_FILE"
	envSnapshotDir     = "SNAPSHOT_DIR"
	envSnapshotDays    = "SNAPSHOT_RETENTION_DAYS"
	envOpenAIKey       = "OPENAI_API_KEY"
	envOpenAIModel     = "OPENAI_MODEL"
	envOpenAIBaseURL   = "OPENAI_BASE_URL"
	envAirtableURL     = "AIRTABLE_BASE_URL"
	envAirtableTable   = "AIRTABLE_TABLE"
	envAirtableRate    = "AIRTABLE_MIN_INTERVAL"

	defaultPort = "4000"
	// Airtable data changes rarely; five minutes keeps the directory fresh
	// without spending the base's request quota.
	defaultRefreshInterval = 5 * Duration(time.Minute)
	defaultProvider        = "fixture"
	defaultMetricsPort     = "9090"
	defaultServiceName     = "athlete-directory-service"
	defaultDatabasePath    = "data/directory.db"
	defaultSnapshotDir     = "data/snapshots"
	defaultSnapshotDays    = 14
	defaultOpenAIModel     = "gpt-3.5-turbo"
	defaultAirtableURL     = "https://api.airtable.com/v0"
	defaultAirtableTable   = "Athletes"
	// Airtable allows 5 requests per second per base.
	defaultAirtableInterval = 200 * Duration(time.Millisecond)
)

// Multi-name keys accepted for Airtable credentials, first non-empty wins.
var (
	envAirtableKeys  = []string{"AIRTABLE_API_KEY", "AIRTABLE_PAT", "AIRTABLE_TOKEN"}
	envAirtableBases = []string{"AIRTABLE_BASE_ID", "AIRTABLE_BASE"}
)

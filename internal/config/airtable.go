package config

// AirtableConfig controls how we talk to the Airtable REST API.
type AirtableConfig struct {
	BaseURL     string
	APIKey      string
	BaseID      string
	Table       string
	MinInterval Duration
}

// Configured reports whether credentials and a base are present.
func (c AirtableConfig) Configured() bool {
	return c.APIKey != "" && c.BaseID != ""
}

func loadAirtable() AirtableConfig {
	return AirtableConfig{
		BaseURL:     envOrDefault(envAirtableURL, defaultAirtableURL),
		APIKey:      envFirst(envAirtableKeys...),
		BaseID:      envFirst(envAirtableBases...),
		Table:       envOrDefault(envAirtableTable, defaultAirtableTable),
		MinInterval: durationEnvOrDefault(envAirtableRate, defaultAirtableInterval),
	}
}

package config

// OpenAIConfig controls the natural-language query parser.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

func loadOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:  envOrDefault(envOpenAIKey, ""),
		Model:   envOrDefault(envOpenAIModel, defaultOpenAIModel),
		BaseURL: envOrDefault(envOpenAIBaseURL, ""),
	}
}

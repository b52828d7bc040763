package server

import (
	"log/slog"
	"strings"

	"github.com/gng-scout/athlete-directory-service/internal/config"
	"github.com/gng-scout/athlete-directory-service/internal/logging"
	"github.com/gng-scout/athlete-directory-service/internal/metrics"
	"github.com/gng-scout/athlete-directory-service/internal/providers"
	"github.com/gng-scout/athlete-directory-service/internal/providers/airtable"
	"github.com/gng-scout/athlete-directory-service/internal/providers/fixture"
)

const (
	providerFixture  = "fixture"
	providerAirtable = "airtable"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.DirectoryProvider {
	base, name := selectProvider(cfg, f.logger)
	// Airtable allows a handful of requests per second per base; verifies and
	// refreshes share the same budget.
	limited := providers.NewRateLimitedProvider(base, cfg.Airtable.MinInterval, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, name, 0, 0)
}

// selectProvider picks the upstream named by cfg.Provider. Airtable without
// credentials falls back to the fixture so local runs still serve data.
func selectProvider(cfg config.Config, logger *slog.Logger) (providers.DirectoryProvider, string) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case providerFixture, "":
		return fixture.New(), providerFixture
	case providerAirtable:
		if !cfg.Airtable.Configured() {
			logging.Warn(logger, "airtable credentials missing, falling back to fixture")
			return fixture.New(), providerFixture
		}
		return airtable.NewClient(airtable.Config{
			BaseURL: cfg.Airtable.BaseURL,
			APIKey:  cfg.Airtable.APIKey,
			BaseID:  cfg.Airtable.BaseID,
			Table:   cfg.Airtable.Table,
		}), providerAirtable
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", logging.FieldProvider, cfg.Provider)
		return fixture.New(), providerFixture
	}
}

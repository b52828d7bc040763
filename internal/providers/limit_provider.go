package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
)

const rateLimitedName = "rate-limited"

// rateLimitedProvider wraps a DirectoryProvider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     DirectoryProvider
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a DirectoryProvider that limits calls to the given interval.
// Calls block until the interval elapses to avoid exceeding upstream quotas.
func NewRateLimitedProvider(next DirectoryProvider, interval time.Duration, logger *slog.Logger) DirectoryProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchAthletes(ctx context.Context) ([]athletes.Athlete, error) {
	if err := p.wait(ctx, "fetch athletes"); err != nil {
		return nil, err
	}
	return p.next.FetchAthletes(ctx)
}

func (p *rateLimitedProvider) VerifyAthlete(ctx context.Context, id string, v athletes.Verification) (time.Time, error) {
	if err := p.wait(ctx, "verify athlete"); err != nil {
		return time.Time{}, err
	}
	return p.next.VerifyAthlete(ctx, id, v)
}

func (p *rateLimitedProvider) CreateAthletes(ctx context.Context, list []athletes.Athlete) ([]athletes.Athlete, error) {
	if err := p.wait(ctx, "create athletes"); err != nil {
		return nil, err
	}
	return p.next.CreateAthletes(ctx, list)
}

// Close stops the underlying ticker.
func (p *rateLimitedProvider) Close() {
	if p != nil && p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *rateLimitedProvider) wait(ctx context.Context, op string) error {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "provider unavailable")
		return ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "rate-limited call canceled", "op", op)
		return ctx.Err()
	case <-p.ticker.C:
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, rateLimitedName, "rate-limited provider call", "op", op)
	return nil
}

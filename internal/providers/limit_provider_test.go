package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/teststubs"
)

func TestRateLimitedProviderBlocksUntilTick(t *testing.T) {
	inner := &teststubs.StubProvider{}
	rl := NewRateLimitedProvider(inner, 5*time.Millisecond, nil).(*rateLimitedProvider)
	defer rl.Close()

	start := time.Now()
	if _, err := rl.FetchAthletes(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Fatalf("expected call to wait for ticker, elapsed %s", elapsed)
	}
	if inner.Calls.Load() != 1 {
		t.Fatalf("expected inner provider called once, got %d", inner.Calls.Load())
	}
}

func TestRateLimitedProviderPacesVerify(t *testing.T) {
	inner := &teststubs.StubProvider{VerifiedAt: time.Unix(5, 0)}
	rl := NewRateLimitedProvider(inner, time.Millisecond, nil).(*rateLimitedProvider)
	defer rl.Close()

	at, err := rl.VerifyAthlete(context.Background(), "a1", athletes.Verification{})
	if err != nil || !at.Equal(time.Unix(5, 0)) {
		t.Fatalf("unexpected verify result %s %v", at, err)
	}
	if ids := inner.Verified(); len(ids) != 1 || ids[0] != "a1" {
		t.Fatalf("expected verify passthrough, got %v", ids)
	}
}

func TestRateLimitedProviderRespectsCanceledContext(t *testing.T) {
	inner := &teststubs.StubProvider{}
	rl := NewRateLimitedProvider(inner, time.Minute, nil).(*rateLimitedProvider)
	defer rl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rl.FetchAthletes(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
	if inner.Calls.Load() != 0 {
		t.Fatalf("expected inner provider not called on canceled context")
	}
}

func TestRateLimitedProviderHandlesNilInner(t *testing.T) {
	rl := NewRateLimitedProvider(nil, time.Millisecond, nil).(*rateLimitedProvider)
	defer rl.Close()

	if _, err := rl.FetchAthletes(context.Background()); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestRateLimitedProviderDefaultsInterval(t *testing.T) {
	rl := NewRateLimitedProvider(&teststubs.StubProvider{}, 0, nil).(*rateLimitedProvider)
	if rl.interval != time.Minute {
		t.Fatalf("expected default interval 1m, got %s", rl.interval)
	}
	rl.Close()
}

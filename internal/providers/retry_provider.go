package providers

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a DirectoryProvider with retry/backoff behavior.
type retryingProvider struct {
	inner        DirectoryProvider
	logger       *slog.Logger
	recorder     *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner DirectoryProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) DirectoryProvider {
	return NewRetryingProviderWithRNG(inner, logger, recorder, name, nil, maxAttempts, backoff)
}

// NewRetryingProviderWithRNG is NewRetryingProvider with a caller-supplied
// jitter source.
func NewRetryingProviderWithRNG(inner DirectoryProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, rng *rand.Rand, maxAttempts int, backoff time.Duration) DirectoryProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if name == "" {
		name = "provider"
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		recorder:     recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		rng:          rng,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) FetchAthletes(ctx context.Context) ([]athletes.Athlete, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}
	var out []athletes.Athlete
	err := r.do(ctx, "fetch athletes", func() error {
		list, err := r.inner.FetchAthletes(ctx)
		out = list
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *retryingProvider) VerifyAthlete(ctx context.Context, id string, v athletes.Verification) (time.Time, error) {
	if r.inner == nil {
		return time.Time{}, ErrProviderUnavailable
	}
	var at time.Time
	err := r.do(ctx, "verify athlete", func() error {
		t, err := r.inner.VerifyAthlete(ctx, id, v)
		at = t
		return err
	})
	return at, err
}

func (r *retryingProvider) CreateAthletes(ctx context.Context, list []athletes.Athlete) ([]athletes.Athlete, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}
	var out []athletes.Athlete
	err := r.do(ctx, "create athletes", func() error {
		created, err := r.inner.CreateAthletes(ctx, list)
		out = created
		if _, limited := AsRateLimitError(err); err != nil && !limited {
			// A failed create may still have landed upstream; only a 429 is
			// known not to have.
			return &finalError{err: err}
		}
		return err
	})
	var fe *finalError
	if errors.As(err, &fe) {
		err = fe.err
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close releases the wrapped provider when it holds resources.
func (r *retryingProvider) Close() {
	if c, ok := r.inner.(interface{ Close() }); ok {
		c.Close()
	}
}

func (r *retryingProvider) do(ctx context.Context, op string, call func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		err := call()
		r.recorder.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.recorder.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		if !retryable(err) || attempt == r.maxAttempts {
			break
		}

		delay := r.computeDelay(err, attempt)
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider call retry",
			"op", op, "attempt", attempt, "max_attempts", r.maxAttempts, "delay_ms", delay.Milliseconds(), "err", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider call failed", "op", op, "err", lastErr)
	return lastErr
}

// computeDelay honors Retry-After on rate limits; other errors back off with
// jitter in [base/2, base].
func (r *retryingProvider) computeDelay(err error, attempt int) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := int64(base / 2)
	r.rngMu.Lock()
	jitter := r.rng.Int63n(half + 1)
	r.rngMu.Unlock()
	return time.Duration(half + jitter)
}

// finalError stops the retry loop at the first failure.
type finalError struct {
	err error
}

func (e *finalError) Error() string { return e.err.Error() }
func (e *finalError) Unwrap() error { return e.err }

func retryable(err error) bool {
	var fe *finalError
	if errors.As(err, &fe) {
		return false
	}
	return !errors.Is(err, ErrNotFound) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

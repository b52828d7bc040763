package refresher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/logging"
	"github.com/gng-scout/athlete-directory-service/internal/metrics"
	"github.com/gng-scout/athlete-directory-service/internal/providers"
	"github.com/gng-scout/athlete-directory-service/internal/timeutil"
)

const (
	defaultInterval = 5 * time.Minute
	maxFailures     = 3
)

// Directory receives each freshly fetched athlete list.
type Directory interface {
	Replace(list []athletes.Athlete)
}

// SnapshotWriter persists directory snapshots to disk.
type SnapshotWriter interface {
	WriteDirectorySnapshot(date string, snapshot athletes.DirectorySnapshot) error
}

// SnapshotLoader reads the most recent persisted snapshot.
type SnapshotLoader interface {
	LoadLatest() (athletes.DirectorySnapshot, error)
}

// Refresher fetches the directory on an interval, swaps it into the store
// and writes the day's snapshot.
type Refresher struct {
	provider  providers.AthleteProvider
	directory Directory
	writer    SnapshotWriter
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	now       func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	// refreshMu keeps cycles in order so a slow fetch cannot land after a
	// newer one.
	refreshMu sync.Mutex

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
	LastCount           int       `json:"lastCount"`
	WarmedFrom          string    `json:"warmedFrom,omitempty"`
}

// IsReady reports whether a refresh has succeeded and the loop is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < maxFailures
}

// New constructs a Refresher. A non-positive interval uses the default.
func New(provider providers.AthleteProvider, directory Directory, writer SnapshotWriter, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Refresher{
		provider:  provider,
		directory: directory,
		writer:    writer,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		now:       time.Now,
		done:      make(chan struct{}),
		exited:    make(chan struct{}),
	}
}

// Warm seeds the directory from the latest snapshot so the service can
// answer before the first upstream fetch lands. It returns the number of
// athletes loaded.
func (r *Refresher) Warm(loader SnapshotLoader) (int, error) {
	if loader == nil || r.directory == nil {
		return 0, nil
	}
	snap, err := loader.LoadLatest()
	if err != nil {
		return 0, err
	}
	r.directory.Replace(snap.Athletes)

	r.statusMu.Lock()
	r.status.WarmedFrom = snap.Date
	r.status.LastCount = len(snap.Athletes)
	r.statusMu.Unlock()

	logging.Info(r.logger, "directory warmed from snapshot",
		logging.FieldDate, snap.Date,
		logging.FieldCount, len(snap.Athletes),
	)
	return len(snap.Athletes), nil
}

// Start begins refreshing until the context is cancelled or Stop is called.
func (r *Refresher) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	r.ticker = time.NewTicker(r.interval)

	go func() {
		defer close(r.exited)
		logging.Info(r.logger, "refresher started", logging.FieldDurationMS, r.interval.Milliseconds())
		_ = r.Refresh(ctx)

		for {
			select {
			case <-ctx.Done():
				r.stopTicker()
				logging.Info(r.logger, "refresher stopped")
				return
			case <-r.done:
				r.stopTicker()
				logging.Info(r.logger, "refresher stopped")
				return
			case <-r.ticker.C:
				_ = r.Refresh(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for it to exit or ctx to expire.
func (r *Refresher) Stop(ctx context.Context) error {
	r.stopOnce.Do(func() {
		close(r.done)
		r.stopTicker()
	})

	r.startMu.Lock()
	started := r.started
	r.startMu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-r.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh runs a single fetch cycle. It is safe to call outside the loop;
// concurrent calls run one after another.
func (r *Refresher) Refresh(ctx context.Context) error {
	if r.provider == nil {
		return providers.ErrProviderUnavailable
	}
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	start := time.Now()
	r.recordAttempt(start)

	list, err := r.provider.FetchAthletes(ctx)
	r.metrics.RecordRefreshCycle(time.Since(start), err)
	if err != nil {
		logging.Error(r.logger, "directory refresh failed", err, logging.FieldDurationMS, time.Since(start).Milliseconds())
		r.recordFailure(err, start)
		return err
	}
	if len(list) == 0 && r.currentCount() > 0 {
		// An empty upstream answer would blank a working directory.
		err := errors.New("refresher: upstream returned no athletes")
		logging.Warn(r.logger, "ignoring empty directory refresh", logging.FieldCount, r.currentCount())
		r.recordFailure(err, start)
		return err
	}

	if r.directory != nil {
		r.directory.Replace(list)
	}

	if r.writer != nil {
		now := r.now()
		date := timeutil.FormatDate(now.UTC())
		snap := athletes.NewDirectorySnapshot(date, now, list)
		if writeErr := r.writer.WriteDirectorySnapshot(date, snap); writeErr != nil {
			logging.Error(r.logger, "directory snapshot write failed", writeErr, logging.FieldDate, date)
		}
	}

	r.recordSuccess(start, len(list))
	logging.Info(r.logger, "directory refreshed",
		logging.FieldCount, len(list),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

func (r *Refresher) stopTicker() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
}

func (r *Refresher) currentCount() int {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status.LastCount
}

func (r *Refresher) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Refresher) recordSuccess(at time.Time, count int) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
	r.status.LastCount = count
}

func (r *Refresher) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}

// Status returns a snapshot of the refresher's recent health.
func (r *Refresher) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}

// Provider exposes the underlying provider so callers can release it.
func (r *Refresher) Provider() providers.AthleteProvider {
	return r.provider
}

package athletes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gng-scout/athlete-directory-service/internal/divisions"
	domainathletes "github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/logging"
	"github.com/gng-scout/athlete-directory-service/internal/metrics"
)

// DefaultSearchLimit caps name search results.
const DefaultSearchLimit = 10

var (
	ErrNotFound            = errors.New("athlete not found")
	ErrQueryRequired       = errors.New("query parameter is required")
	ErrViewsUnavailable    = errors.New("view counter not configured")
	ErrVerifierUnavailable = errors.New("verification not configured")
	ErrSessionRequired     = errors.New("session id is required")
)

// Store defines the contract for persisting and retrieving athletes.
type Store interface {
	ListAthletes() []domainathletes.Athlete
	GetAthlete(id string) (domainathletes.Athlete, bool)
	SetAthletes(list []domainathletes.Athlete)
	UpdateAthlete(id string, fn func(*domainathletes.Athlete)) bool
	Len() int
}

// ViewStore persists per-athlete scout view counts.
type ViewStore interface {
	RecordView(ctx context.Context, athleteID, sessionID string) (int, error)
	ViewCount(ctx context.Context, athleteID string) (int, error)
	ViewCounts(ctx context.Context) (map[string]int, error)
}

// Verifier marks an athlete verified in the upstream source.
type Verifier interface {
	VerifyAthlete(ctx context.Context, id string, v domainathletes.Verification) (time.Time, error)
}

// Facets lists the filter values present in the directory.
type Facets struct {
	Divisions     []divisions.Info `json:"divisions"`
	Sports        []string         `json:"sports"`
	Years         []string         `json:"years"`
	Nationalities []string         `json:"nationalities"`
	Genders       []string         `json:"genders"`
}

// Option customizes a Service.
type Option func(*Service)

// WithViews attaches a view counter.
func WithViews(v ViewStore) Option {
	return func(s *Service) { s.views = v }
}

// WithVerifier attaches the upstream verifier.
func WithVerifier(v Verifier) Option {
	return func(s *Service) { s.verifier = v }
}

// WithRecorder counts classifications in metrics.
func WithRecorder(r *metrics.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithLogger sets the logger used for non-fatal failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// Service coordinates directory operations over a Store.
type Service struct {
	store      Store
	classifier *divisions.Classifier
	views      ViewStore
	verifier   Verifier
	recorder   *metrics.Recorder
	logger     *slog.Logger
}

// NewService constructs a Service. A nil classifier classifies every
// college as Unknown.
func NewService(store Store, classifier *divisions.Classifier, opts ...Option) *Service {
	s := &Service{store: store, classifier: classifier}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classify resolves a college name and counts the outcome.
func (s *Service) Classify(college string) divisions.Match {
	m := s.classifier.Lookup(college)
	s.recorder.RecordClassification(string(m.Info.Division), string(m.Method))
	return m
}

// Directory returns classified profiles that satisfy filter, in store order.
func (s *Service) Directory(ctx context.Context, filter domainathletes.Filter) []domainathletes.Profile {
	counts := s.viewCounts(ctx)
	list := s.store.ListAthletes()
	out := make([]domainathletes.Profile, 0, len(list))
	for _, a := range list {
		info := s.Classify(a.College).Info
		if !filter.Matches(a, info) {
			continue
		}
		out = append(out, domainathletes.NewProfile(a, info, counts[a.ID]))
	}
	return out
}

// Profile returns a single classified profile.
func (s *Service) Profile(ctx context.Context, id string) (domainathletes.Profile, error) {
	a, ok := s.store.GetAthlete(id)
	if !ok {
		return domainathletes.Profile{}, ErrNotFound
	}
	views := 0
	if s.views != nil {
		n, err := s.views.ViewCount(ctx, id)
		if err != nil {
			logging.Warn(s.logger, "view count lookup failed", logging.FieldAthleteID, id, logging.FieldError, err)
		} else {
			views = n
		}
	}
	return domainathletes.NewProfile(a, s.Classify(a.College).Info, views), nil
}

// Search matches query against name, college and sport and returns at most
// limit summaries. A non-positive limit means DefaultSearchLimit.
func (s *Service) Search(query string, limit int) ([]domainathletes.Summary, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, ErrQueryRequired
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	filter := domainathletes.Filter{Query: q}
	out := []domainathletes.Summary{}
	for _, a := range s.store.ListAthletes() {
		if len(out) == limit {
			break
		}
		if filter.Matches(a, divisions.UnknownInfo) {
			out = append(out, domainathletes.Summarize(a))
		}
	}
	return out, nil
}

// Facets lists the distinct values present across the directory. Divisions
// appear in tier priority order.
func (s *Service) Facets() Facets {
	list := s.store.ListAthletes()
	present := make(map[divisions.Division]bool)
	for _, a := range list {
		present[s.classifier.Classify(a.College).Division] = true
	}
	var divs []divisions.Info
	for _, d := range divisions.AllDivisions() {
		if present[d] {
			divs = append(divs, d.Info())
		}
	}
	return Facets{
		Divisions:     divs,
		Sports:        domainathletes.UniqueValues(list, domainathletes.FieldSport),
		Years:         domainathletes.UniqueValues(list, domainathletes.FieldYear),
		Nationalities: domainathletes.UniqueValues(list, domainathletes.FieldNationality),
		Genders:       domainathletes.UniqueValues(list, domainathletes.FieldGender),
	}
}

// RecordView counts a scout view once per session and returns the new total.
func (s *Service) RecordView(ctx context.Context, id, sessionID string) (int, error) {
	if s.views == nil {
		return 0, ErrViewsUnavailable
	}
	if strings.TrimSpace(sessionID) == "" {
		return 0, ErrSessionRequired
	}
	if _, ok := s.store.GetAthlete(id); !ok {
		return 0, ErrNotFound
	}
	return s.views.RecordView(ctx, id, sessionID)
}

// Verify marks an athlete verified upstream and mirrors the flag locally.
func (s *Service) Verify(ctx context.Context, id string, v domainathletes.Verification) (domainathletes.VerificationResult, error) {
	if s.verifier == nil {
		return domainathletes.VerificationResult{}, ErrVerifierUnavailable
	}
	if _, ok := s.store.GetAthlete(id); !ok {
		return domainathletes.VerificationResult{}, ErrNotFound
	}
	at, err := s.verifier.VerifyAthlete(ctx, id, v.WithDefaults())
	if err != nil {
		return domainathletes.VerificationResult{}, fmt.Errorf("verify athlete %s: %w", id, err)
	}
	s.store.UpdateAthlete(id, func(a *domainathletes.Athlete) { a.Verified = true })
	logging.Info(s.logger, "athlete verified", logging.FieldAthleteID, id)
	return domainathletes.VerificationResult{AthleteID: id, VerifiedAt: at}, nil
}

// Replace swaps the directory with a new snapshot.
func (s *Service) Replace(list []domainathletes.Athlete) {
	s.store.SetAthletes(list)
}

// Athletes returns the raw directory records.
func (s *Service) Athletes() []domainathletes.Athlete {
	return s.store.ListAthletes()
}

// Count returns the number of athletes in the directory.
func (s *Service) Count() int {
	return s.store.Len()
}

func (s *Service) viewCounts(ctx context.Context) map[string]int {
	if s.views == nil {
		return nil
	}
	counts, err := s.views.ViewCounts(ctx)
	if err != nil {
		logging.Warn(s.logger, "view counts lookup failed", logging.FieldError, err)
		return nil
	}
	return counts
}

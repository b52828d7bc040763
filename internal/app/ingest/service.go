// Package ingest imports scraped roster records into the athlete directory.
// Staff rows and incomplete records are dropped, names are tidied, and each
// remaining record is scored against the upstream directory to decide
// whether it is new, a duplicate, or a possible match for manual review.
// Only new records are created upstream.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/logging"
	"github.com/gng-scout/athlete-directory-service/internal/metrics"
	"github.com/gng-scout/athlete-directory-service/internal/providers"
)

// Service runs imports against an upstream directory.
type Service struct {
	source   providers.AthleteProvider
	writer   providers.AthleteWriter
	logger   *slog.Logger
	recorder *metrics.Recorder
	validate *validator.Validate
	now      func() time.Time
}

// NewService constructs a Service. source supplies the athletes new records
// are compared against and writer creates the new ones.
func NewService(source providers.AthleteProvider, writer providers.AthleteWriter, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Service{
		source:   source,
		writer:   writer,
		logger:   logger,
		recorder: recorder,
		validate: v,
		now:      time.Now,
	}
}

// Import cleans, deduplicates and uploads req.Athletes. New records are also
// compared against each other so a batch cannot create the same athlete
// twice. When an upload fails partway the returned Result lists the IDs
// already created; running the import again skips them as duplicates.
func (s *Service) Import(ctx context.Context, req Request) (Result, error) {
	start := s.now()
	if err := s.validateRequest(ctx, req); err != nil {
		return Result{}, err
	}
	if s.source == nil || (s.writer == nil && !req.DryRun) {
		return Result{}, ErrUnavailable
	}
	logger := logging.FromContext(ctx, s.logger)

	kept, filtered := Clean(req.Athletes)
	existing, err := s.source.FetchAthletes(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("ingest: load existing athletes: %w", err)
	}

	res := Result{
		DryRun:             req.DryRun,
		TotalInput:         len(req.Athletes),
		FilteredCount:      filtered,
		UploadedNames:      []string{},
		DuplicateNames:     []string{},
		PossibleMatchNames: []string{},
		UploadedIDs:        []string{},
		PossibleMatches:    []Review{},
	}

	pool := append(make([]athletes.Athlete, 0, len(existing)+len(kept)), existing...)
	fresh := make([]athletes.Athlete, 0, len(kept))
	for _, rec := range kept {
		candidate := rec.Athlete()
		m := Classify(candidate, pool)
		switch m.Outcome {
		case OutcomeDuplicate:
			res.DuplicateNames = append(res.DuplicateNames, candidate.Name)
		case OutcomePossibleMatch:
			res.PossibleMatchNames = append(res.PossibleMatchNames, candidate.Name)
			res.PossibleMatches = append(res.PossibleMatches, Review{
				Record:       rec,
				ExistingID:   m.Existing.ID,
				ExistingName: m.Existing.Name,
				Confidence:   m.Confidence,
				Comparison:   Compare(candidate, m.Existing),
			})
			logging.Info(logger, "possible duplicate athlete held for review",
				"name", candidate.Name,
				"college", candidate.College,
				"existing_name", m.Existing.Name,
				logging.FieldAthleteID, m.Existing.ID,
				"confidence", m.Confidence,
			)
		default:
			res.UploadedNames = append(res.UploadedNames, candidate.Name)
			fresh = append(fresh, candidate)
			pool = append(pool, candidate)
		}
	}
	res.UploadedCount = len(fresh)
	res.DuplicateCount = len(res.DuplicateNames)
	res.PossibleMatchCount = len(res.PossibleMatches)
	s.record(res)

	if !req.DryRun && len(fresh) > 0 {
		ids, err := s.upload(ctx, fresh)
		res.UploadedIDs = ids
		if err != nil {
			logging.Error(logger, "athlete import upload failed", err,
				logging.FieldCount, len(ids),
				"pending", len(fresh)-len(ids),
			)
			return res, fmt.Errorf("ingest: upload stopped after %d of %d athletes: %w", len(ids), len(fresh), err)
		}
	}

	res.Success = true
	res.Timestamp = s.now().UTC()
	res.ProcessingTimeMS = s.now().Sub(start).Milliseconds()
	logging.Info(logger, "athlete import complete",
		"total", res.TotalInput,
		"new", res.UploadedCount,
		"duplicates", res.DuplicateCount,
		"possible_matches", res.PossibleMatchCount,
		"filtered", res.FilteredCount,
		"dry_run", res.DryRun,
		logging.FieldDurationMS, res.ProcessingTimeMS,
	)
	return res, nil
}

// upload creates fresh in batches the upstream accepts in one call and
// returns the IDs created so far.
func (s *Service) upload(ctx context.Context, fresh []athletes.Athlete) ([]string, error) {
	ids := make([]string, 0, len(fresh))
	for start := 0; start < len(fresh); start += providers.MaxCreateBatch {
		end := min(start+providers.MaxCreateBatch, len(fresh))
		created, err := s.writer.CreateAthletes(ctx, fresh[start:end])
		for _, a := range created {
			ids = append(ids, a.ID)
		}
		if err != nil {
			return ids, err
		}
	}
	return ids, nil
}

func (s *Service) record(res Result) {
	s.recorder.RecordImportOutcome(string(OutcomeNew), res.UploadedCount)
	s.recorder.RecordImportOutcome(string(OutcomeDuplicate), res.DuplicateCount)
	s.recorder.RecordImportOutcome(string(OutcomePossibleMatch), res.PossibleMatchCount)
	s.recorder.RecordImportOutcome(string(OutcomeFiltered), res.FilteredCount)
}

func (s *Service) validateRequest(ctx context.Context, req Request) error {
	err := s.validate.StructCtx(ctx, req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return &ValidationError{Fields: fields}
	}
	return fmt.Errorf("validate import: %w", err)
}

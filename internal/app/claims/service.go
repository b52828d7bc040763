package claims

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/gng-scout/athlete-directory-service/internal/logging"
)

const idPrefix = "claim_"

// Store persists claims for later review.
type Store interface {
	SaveClaim(ctx context.Context, c Claim) error
	ListClaims(ctx context.Context) ([]Claim, error)
}

// Service validates and records claim requests.
type Service struct {
	store    Store
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// NewService constructs a Service over store.
func NewService(store Store, logger *slog.Logger) *Service {
	v := validator.New()
	// Report JSON names so clients can map errors back to form fields.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Service{
		store:    store,
		logger:   logger,
		validate: v,
		now:      time.Now,
		newID:    func() string { return idPrefix + uuid.NewString() },
	}
}

// Submit validates req, assigns an ID and persists it.
func (s *Service) Submit(ctx context.Context, req Request) (Claim, error) {
	req = trimRequest(req)
	if err := s.validate.StructCtx(ctx, req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return Claim{}, &ValidationError{Fields: fields}
		}
		return Claim{}, fmt.Errorf("validate claim: %w", err)
	}

	c := Claim{
		ID:          s.newID(),
		Request:     req,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.store.SaveClaim(ctx, c); err != nil {
		return Claim{}, fmt.Errorf("save claim: %w", err)
	}
	logging.Info(logging.FromContext(ctx, s.logger), "profile claim submitted",
		logging.FieldClaimID, c.ID,
		logging.FieldAthleteID, c.AthleteID,
	)
	return c, nil
}

// List returns stored claims, newest first.
func (s *Service) List(ctx context.Context) ([]Claim, error) {
	list, err := s.store.ListClaims(ctx)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	return list, nil
}

func trimRequest(r Request) Request {
	r.AthleteID = strings.TrimSpace(r.AthleteID)
	r.AthleteName = strings.TrimSpace(r.AthleteName)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.SocialMedia = strings.TrimSpace(r.SocialMedia)
	r.Explanation = strings.TrimSpace(r.Explanation)
	return r
}

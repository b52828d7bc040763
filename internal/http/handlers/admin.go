package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gng-scout/athlete-directory-service/internal/app/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/app/claims"
	"github.com/gng-scout/athlete-directory-service/internal/app/ingest"
	domainathletes "github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/http/requestutil"
	"github.com/gng-scout/athlete-directory-service/internal/logging"
	"github.com/gng-scout/athlete-directory-service/internal/providers"
)

// AdminHandler exposes operator endpoints guarded by a bearer token.
type AdminHandler struct {
	athletes *athletes.Service
	claims   *claims.Service
	importer *ingest.Service
	refresh  func(ctx context.Context) error
	token    string
	logger   *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. It returns nil when token is
// empty so callers can skip mounting the routes.
func NewAdminHandler(svc *athletes.Service, claimsSvc *claims.Service, importer *ingest.Service, refresh func(ctx context.Context) error, token string, logger *slog.Logger) *AdminHandler {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return &AdminHandler{
		athletes: svc,
		claims:   claimsSvc,
		importer: importer,
		refresh:  refresh,
		token:    token,
		logger:   logger,
	}
}

type claimsResponse struct {
	Claims []claims.Claim `json:"claims"`
	Count  int            `json:"count"`
}

type verifyResponse struct {
	Success bool `json:"success"`
	domainathletes.VerificationResult
}

// Require wraps next with bearer token authorization.
func (h *AdminHandler) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(r) {
			logging.Warn(h.logger, "admin unauthorized",
				slog.String(logging.FieldPath, r.URL.Path),
				slog.String("client_ip", requestutil.ClientIP(r)),
			)
			writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
			return
		}
		next(w, r)
	}
}

// VerifyAthlete marks an athlete verified upstream. The body is optional.
func (h *AdminHandler) VerifyAthlete(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	id := strings.TrimSpace(r.PathValue("id"))

	var v domainathletes.Verification
	if r.ContentLength != 0 {
		if err := decodeBody(r, &v); err != nil && !errors.Is(err, errEmptyBody) {
			writeError(w, r, http.StatusBadRequest, err.Error(), logger)
			return
		}
	}

	result, err := h.athletes.Verify(r.Context(), id, v)
	if err == nil {
		writeJSON(w, http.StatusOK, verifyResponse{Success: true, VerificationResult: result}, logger)
		return
	}

	if rl, ok := providers.AsRateLimitError(err); ok {
		if rl.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(rl.RetryAfter.Seconds()))))
		}
		writeError(w, r, http.StatusTooManyRequests, "upstream rate limited", logger)
		return
	}
	switch {
	case errors.Is(err, athletes.ErrNotFound), errors.Is(err, providers.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "athlete not found", logger)
	case errors.Is(err, athletes.ErrVerifierUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "verification not configured", logger)
	default:
		logging.Error(logger, "admin verify failed", err, logging.FieldAthleteID, id)
		writeError(w, r, http.StatusBadGateway, "failed to verify athlete", logger)
	}
}

// ImportAthletes cleans, deduplicates and uploads a batch of scraped roster
// records. A partial upload answers 502 with the result so far.
func (h *AdminHandler) ImportAthletes(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if h.importer == nil {
		writeError(w, r, http.StatusServiceUnavailable, "athlete import not configured", logger)
		return
	}

	var req ingest.Request
	if err := decodeBodyLimit(r, &req, maxImportBodyBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}

	res, err := h.importer.Import(r.Context(), req)
	if err == nil {
		writeJSON(w, http.StatusOK, res, logger)
		return
	}
	if len(res.UploadedIDs) > 0 {
		logging.Warn(logger, "admin import partially uploaded",
			logging.FieldError, err,
			logging.FieldCount, len(res.UploadedIDs),
		)
		writeJSON(w, http.StatusBadGateway, res, logger)
		return
	}

	if rl, ok := providers.AsRateLimitError(err); ok {
		if rl.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(rl.RetryAfter.Seconds()))))
		}
		writeError(w, r, http.StatusTooManyRequests, "upstream rate limited", logger)
		return
	}
	switch {
	case errors.Is(err, ingest.ErrInvalidRequest):
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, ingest.ErrUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "athlete import not configured", logger)
	default:
		logging.Error(logger, "admin import failed", err)
		writeError(w, r, http.StatusBadGateway, "failed to import athletes", logger)
	}
}

// ListClaims returns stored claim requests, newest first.
func (h *AdminHandler) ListClaims(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if h.claims == nil {
		writeError(w, r, http.StatusServiceUnavailable, "claims not configured", logger)
		return
	}
	list, err := h.claims.List(r.Context())
	if err != nil {
		logging.Error(logger, "admin list claims failed", err)
		writeError(w, r, http.StatusInternalServerError, "failed to list claims", logger)
		return
	}
	writeJSON(w, http.StatusOK, claimsResponse{Claims: list, Count: len(list)}, logger)
}

// RefreshDirectory runs a directory refresh immediately.
func (h *AdminHandler) RefreshDirectory(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if h.refresh == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresher not configured", logger)
		return
	}
	if err := h.refresh(r.Context()); err != nil {
		logging.Warn(logger, "admin refresh failed", logging.FieldError, err)
		writeError(w, r, http.StatusBadGateway, "failed to refresh directory", logger)
		return
	}
	count := h.athletes.Count()
	logging.Info(logger, "admin refresh complete", logging.FieldCount, count)
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "athletes": count}, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h == nil || h.token == "" {
		return false
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + h.token
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

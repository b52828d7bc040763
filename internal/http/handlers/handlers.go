package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gng-scout/athlete-directory-service/internal/app/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/app/claims"
	"github.com/gng-scout/athlete-directory-service/internal/divisions"
	domainathletes "github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/http/requestutil"
	"github.com/gng-scout/athlete-directory-service/internal/logging"
	"github.com/gng-scout/athlete-directory-service/internal/nlquery"
	"github.com/gng-scout/athlete-directory-service/internal/refresher"
)

// QueryParser turns free text into directory filters.
type QueryParser interface {
	Parse(ctx context.Context, query string) (nlquery.Filters, error)
}

// Handler wires HTTP routes to the directory services.
type Handler struct {
	athletes *athletes.Service
	claims   *claims.Service
	parser   QueryParser
	logger   *slog.Logger
	statusFn func() refresher.Status
}

// NewHandler constructs a Handler. claimsSvc and parser may be nil; their
// routes then answer 503.
func NewHandler(svc *athletes.Service, claimsSvc *claims.Service, parser QueryParser, logger *slog.Logger, statusFn func() refresher.Status) *Handler {
	return &Handler{
		athletes: svc,
		claims:   claimsSvc,
		parser:   parser,
		logger:   logger,
		statusFn: statusFn,
	}
}

type directoryResponse struct {
	Athletes []domainathletes.Profile `json:"athletes"`
	Count    int                      `json:"count"`
	Facets   athletes.Facets          `json:"facets"`
}

type viewResponse struct {
	Views int    `json:"views"`
	Label string `json:"label"`
}

type divisionsResponse struct {
	Divisions    []divisions.Info        `json:"divisions"`
	Associations []divisions.Association `json:"associations"`
}

type claimResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ClaimID string `json:"claimId"`
}

type parseQueryRequest struct {
	Query string `json:"query"`
}

type parseQueryResponse struct {
	Filters nlquery.Filters `json:"filters"`
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "athletes": status.LastCount}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Athletes lists classified profiles matching the query filters together
// with the facet values for the whole directory.
func (h *Handler) Athletes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domainathletes.Filter{
		Sport:       strings.TrimSpace(q.Get("sport")),
		Division:    strings.TrimSpace(q.Get("division")),
		Nationality: strings.TrimSpace(q.Get("nationality")),
		College:     strings.TrimSpace(q.Get("college")),
		Year:        strings.TrimSpace(q.Get("year")),
		Gender:      strings.TrimSpace(q.Get("gender")),
		Location:    strings.TrimSpace(q.Get("location")),
		Query:       strings.TrimSpace(q.Get("q")),
	}
	if filter.Division != "" {
		if _, ok := divisions.ParseDivision(filter.Division); !ok {
			writeError(w, r, http.StatusBadRequest, "invalid division (expected D1, D2, D3, NAIA, NJCAA or Unknown)", h.logger)
			return
		}
	}

	profiles := h.athletes.Directory(r.Context(), filter)
	logging.Info(loggerFromContext(r, h.logger), "served directory", logging.FieldCount, len(profiles))
	writeJSON(w, http.StatusOK, directoryResponse{
		Athletes: profiles,
		Count:    len(profiles),
		Facets:   h.athletes.Facets(),
	}, h.logger)
}

// SearchAthletes matches q against name, college and sport.
func (h *Handler) SearchAthletes(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > athletes.DefaultSearchLimit {
			writeError(w, r, http.StatusBadRequest, "invalid limit", h.logger)
			return
		}
		limit = n
	}

	results, err := h.athletes.Search(r.URL.Query().Get("q"), limit)
	if errors.Is(err, athletes.ErrQueryRequired) {
		writeError(w, r, http.StatusBadRequest, "Query parameter is required", h.logger)
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "search failed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, results, h.logger)
}

// AthleteByID returns a single classified profile.
func (h *Handler) AthleteByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, http.StatusBadRequest, "invalid athlete id", h.logger)
		return
	}

	profile, err := h.athletes.Profile(r.Context(), id)
	if errors.Is(err, athletes.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "athlete not found", h.logger)
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "profile lookup failed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, profile, h.logger)
}

// RecordView counts a profile view once per viewer session.
func (h *Handler) RecordView(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	logger := loggerFromContext(r, h.logger)

	views, err := h.athletes.RecordView(r.Context(), id, requestutil.SessionID(r))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, viewResponse{Views: views, Label: domainathletes.FormatViewCount(views)}, h.logger)
	case errors.Is(err, athletes.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "athlete not found", h.logger)
	case errors.Is(err, athletes.ErrSessionRequired):
		writeError(w, r, http.StatusBadRequest, "session id is required", h.logger)
	case errors.Is(err, athletes.ErrViewsUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "view counter not configured", h.logger)
	default:
		logging.Error(logger, "record view failed", err, logging.FieldAthleteID, id)
		writeError(w, r, http.StatusInternalServerError, "failed to record view", h.logger)
	}
}

// Divisions lists every division the classifier can return.
func (h *Handler) Divisions(w http.ResponseWriter, r *http.Request) {
	all := divisions.AllDivisions()
	infos := make([]divisions.Info, 0, len(all))
	for _, d := range all {
		infos = append(infos, d.Info())
	}
	writeJSON(w, http.StatusOK, divisionsResponse{
		Divisions:    infos,
		Associations: divisions.AllAssociations(),
	}, h.logger)
}

// ClassifyDivision classifies the college query parameter.
func (h *Handler) ClassifyDivision(w http.ResponseWriter, r *http.Request) {
	college := r.URL.Query().Get("college")
	if strings.TrimSpace(college) == "" {
		writeError(w, r, http.StatusBadRequest, "college parameter is required", h.logger)
		return
	}
	m := h.athletes.Classify(college)
	logging.Info(loggerFromContext(r, h.logger), "classified college",
		logging.FieldDivision, string(m.Info.Division),
		"method", string(m.Method),
	)
	writeJSON(w, http.StatusOK, m.Info, h.logger)
}

// SubmitClaim stores a request from someone claiming an athlete profile.
func (h *Handler) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	if h.claims == nil {
		writeError(w, r, http.StatusServiceUnavailable, "claims not configured", h.logger)
		return
	}
	var req claims.Request
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	claim, err := h.claims.Submit(r.Context(), req)
	var verr *claims.ValidationError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, claimResponse{
			Success: true,
			Message: "Claim request submitted successfully",
			ClaimID: claim.ID,
		}, h.logger)
	case errors.As(err, &verr):
		writeError(w, r, http.StatusBadRequest, verr.Error(), h.logger)
	default:
		logging.Error(loggerFromContext(r, h.logger), "claim submit failed", err, logging.FieldAthleteID, req.AthleteID)
		writeError(w, r, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}

// ParseQuery converts a natural-language search into structured filters.
func (h *Handler) ParseQuery(w http.ResponseWriter, r *http.Request) {
	if h.parser == nil {
		writeError(w, r, http.StatusServiceUnavailable, "query parser not configured", h.logger)
		return
	}
	var req parseQueryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	filters, err := h.parser.Parse(r.Context(), req.Query)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, parseQueryResponse{Filters: filters}, h.logger)
	case errors.Is(err, nlquery.ErrQueryRequired):
		writeError(w, r, http.StatusBadRequest, "Query is required", h.logger)
	case errors.Is(err, nlquery.ErrNotConfigured):
		writeError(w, r, http.StatusServiceUnavailable, "query parser not configured", h.logger)
	case errors.Is(err, nlquery.ErrEmptyResponse), errors.Is(err, nlquery.ErrInvalidResponse):
		writeError(w, r, http.StatusBadGateway, err.Error(), h.logger)
	default:
		logging.Error(loggerFromContext(r, h.logger), "parse query failed", err)
		writeError(w, r, http.StatusBadGateway, "Failed to parse query", h.logger)
	}
}

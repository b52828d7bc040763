package http

import (
	nethttp "net/http"

	"github.com/gng-scout/athlete-directory-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. Admin routes are mounted
// only when admin is non-nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /ready", handler.Ready)
	mux.HandleFunc("GET /athletes", handler.Athletes)
	mux.HandleFunc("GET /athletes/search", handler.SearchAthletes)
	mux.HandleFunc("GET /athletes/{id}", handler.AthleteByID)
	mux.HandleFunc("POST /athletes/{id}/views", handler.RecordView)
	mux.HandleFunc("GET /divisions", handler.Divisions)
	mux.HandleFunc("GET /divisions/classify", handler.ClassifyDivision)
	mux.HandleFunc("POST /claims", handler.SubmitClaim)
	mux.HandleFunc("POST /query/parse", handler.ParseQuery)

	if admin != nil {
		mux.HandleFunc("POST /admin/athletes/import", admin.Require(admin.ImportAthletes))
		mux.HandleFunc("POST /admin/athletes/{id}/verify", admin.Require(admin.VerifyAthlete))
		mux.HandleFunc("GET /admin/claims", admin.Require(admin.ListClaims))
		mux.HandleFunc("POST /admin/refresh", admin.Require(admin.RefreshDirectory))
	}
	return mux
}

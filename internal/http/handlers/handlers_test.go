package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/gng-scout/athlete-directory-service/internal/app/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/app/claims"
	"github.com/gng-scout/athlete-directory-service/internal/divisions"
	domainathletes "github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/nlquery"
	"github.com/gng-scout/athlete-directory-service/internal/refresher"
	"github.com/gng-scout/athlete-directory-service/internal/storage/sqlite"
	"github.com/gng-scout/athlete-directory-service/internal/testutil"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "directory.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestHandler(t *testing.T) (*Handler, *sqlite.Store) {
	t.Helper()
	db := openStore(t)
	svc := testutil.NewAthleteService(testutil.SampleAthletes(), athletes.WithViews(db))
	return NewHandler(svc, claims.NewService(db, nil), &stubParser{}, nil, nil), db
}

type stubParser struct {
	filters nlquery.Filters
	err     error
	query   string
}

func (p *stubParser) Parse(ctx context.Context, query string) (nlquery.Filters, error) {
	p.query = query
	if strings.TrimSpace(query) == "" {
		return nlquery.Filters{}, nlquery.ErrQueryRequired
	}
	return p.filters, p.err
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)
	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/health", nil).WithContext(ctx)
	rr = testutil.ServeRequest(http.HandlerFunc(h.Health), req)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestReadyReflectsRefresherStatus(t *testing.T) {
	h, _ := newTestHandler(t)

	h.statusFn = func() refresher.Status { return refresher.Status{LastError: "upstream down", ConsecutiveFailures: 3} }
	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	if !strings.Contains(rr.Body.String(), "upstream down") {
		t.Fatalf("expected last error in body, got %s", rr.Body.String())
	}

	h.statusFn = func() refresher.Status { return refresher.Status{} }
	rr = testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	if !strings.Contains(rr.Body.String(), "not ready") {
		t.Fatalf("expected not ready message, got %s", rr.Body.String())
	}

	h.statusFn = func() refresher.Status { return refresher.Status{LastSuccess: time.Now(), LastCount: 6} }
	rr = testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestAthletesFiltersAndReturnsFacets(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Athletes), http.MethodGet, "/athletes?division=d3", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var body directoryResponse
	testutil.DecodeJSON(t, rr, &body)
	if body.Count != 1 || len(body.Athletes) != 1 {
		t.Fatalf("expected one D3 athlete, got %d", body.Count)
	}
	p := body.Athletes[0]
	if p.ID != "rec-d3" || p.Division.Division != divisions.D3 || p.Initials != "NR" {
		t.Fatalf("unexpected profile %+v", p)
	}
	if len(body.Facets.Divisions) != len(divisions.AllDivisions()) {
		t.Fatalf("expected every division in facets, got %+v", body.Facets.Divisions)
	}
	if diff := cmp.Diff([]string{"Rowing", "Tennis"}, body.Facets.Sports); diff != "" {
		t.Fatalf("sports facet mismatch (-want +got):\n%s", diff)
	}
}

func TestAthletesCombinesFilters(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Athletes), http.MethodGet, "/athletes?sport=tennis&nationality=Australian&year=2026&q=a", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var body directoryResponse
	testutil.DecodeJSON(t, rr, &body)
	for _, p := range body.Athletes {
		if p.Sport != "Tennis" || p.Nationality != "Australian" || p.Year != "2026" {
			t.Fatalf("filter leaked %+v", p.Athlete)
		}
	}
	if body.Count == 0 {
		t.Fatal("expected at least one match")
	}
}

func TestAthletesRejectsUnknownDivision(t *testing.T) {
	h, _ := newTestHandler(t)
	rr := testutil.Serve(http.HandlerFunc(h.Athletes), http.MethodGet, "/athletes?division=D9", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestSearchAthletes(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.SearchAthletes), http.MethodGet, "/athletes/search?q=rowing", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var results []domainathletes.Summary
	testutil.DecodeJSON(t, rr, &results)
	if len(results) != 1 || results[0].ID != "rec-d3" {
		t.Fatalf("unexpected search results %+v", results)
	}

	rr = testutil.Serve(http.HandlerFunc(h.SearchAthletes), http.MethodGet, "/athletes/search?q=a&limit=2", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	results = nil
	testutil.DecodeJSON(t, rr, &results)
	if len(results) != 2 {
		t.Fatalf("expected limit to cap results, got %d", len(results))
	}

	for _, path := range []string{"/athletes/search", "/athletes/search?q=%20", "/athletes/search?q=a&limit=0", "/athletes/search?q=a&limit=50"} {
		rr = testutil.Serve(http.HandlerFunc(h.SearchAthletes), http.MethodGet, path, nil)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	}
}

func TestAthleteByIDIncludesViews(t *testing.T) {
	h, db := newTestHandler(t)
	if _, err := db.RecordView(context.Background(), "rec-naia", "s1"); err != nil {
		t.Fatalf("seed view: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/athletes/rec-naia", nil)
	req.SetPathValue("id", "rec-naia")
	rr := testutil.ServeRequest(http.HandlerFunc(h.AthleteByID), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var p domainathletes.Profile
	testutil.DecodeJSON(t, rr, &p)
	if p.Division.Division != divisions.NAIA || p.Views != 1 || p.ViewsLabel != "1 scout checking in" {
		t.Fatalf("unexpected profile %+v", p)
	}

	req = httptest.NewRequest(http.MethodGet, "/athletes/nope", nil)
	req.SetPathValue("id", "nope")
	rr = testutil.ServeRequest(http.HandlerFunc(h.AthleteByID), req)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	req = httptest.NewRequest(http.MethodGet, "/athletes/", nil)
	rr = testutil.ServeRequest(http.HandlerFunc(h.AthleteByID), req)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestRecordViewCountsOncePerSession(t *testing.T) {
	h, _ := newTestHandler(t)

	post := func(session string) viewResponse {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/athletes/rec-d1/views", nil)
		req.SetPathValue("id", "rec-d1")
		req.Header.Set("X-Session-ID", session)
		rr := testutil.ServeRequest(http.HandlerFunc(h.RecordView), req)
		testutil.AssertStatus(t, rr, http.StatusOK)
		var body viewResponse
		testutil.DecodeJSON(t, rr, &body)
		return body
	}

	if got := post("alpha"); got.Views != 1 {
		t.Fatalf("expected 1 view, got %+v", got)
	}
	if got := post("alpha"); got.Views != 1 {
		t.Fatalf("expected repeat session ignored, got %+v", got)
	}
	if got := post("beta"); got.Views != 2 || got.Label != "2 scouts checking in" {
		t.Fatalf("expected 2 views, got %+v", got)
	}

	req := httptest.NewRequest(http.MethodPost, "/athletes/ghost/views", nil)
	req.SetPathValue("id", "ghost")
	rr := testutil.ServeRequest(http.HandlerFunc(h.RecordView), req)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestDivisions(t *testing.T) {
	h, _ := newTestHandler(t)
	rr := testutil.Serve(http.HandlerFunc(h.Divisions), http.MethodGet, "/divisions", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var body divisionsResponse
	testutil.DecodeJSON(t, rr, &body)
	if len(body.Divisions) != 6 || body.Divisions[0] != divisions.D1.Info() {
		t.Fatalf("unexpected divisions %+v", body.Divisions)
	}
	if diff := cmp.Diff(divisions.AllAssociations(), body.Associations); diff != "" {
		t.Fatalf("associations mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyDivision(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.ClassifyDivision), http.MethodGet, "/divisions/classify?college=Blinn+College", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var info divisions.Info
	testutil.DecodeJSON(t, rr, &info)
	if info != divisions.NJCAA.Info() {
		t.Fatalf("unexpected info %+v", info)
	}

	rr = testutil.Serve(http.HandlerFunc(h.ClassifyDivision), http.MethodGet, "/divisions/classify?college=Oxford", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	info = divisions.Info{}
	testutil.DecodeJSON(t, rr, &info)
	if info != divisions.UnknownInfo {
		t.Fatalf("expected unknown sentinel, got %+v", info)
	}

	rr = testutil.Serve(http.HandlerFunc(h.ClassifyDivision), http.MethodGet, "/divisions/classify", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestSubmitClaim(t *testing.T) {
	h, db := newTestHandler(t)

	body := testutil.JSONBody(t, claims.Request{
		AthleteID:   "rec-d1",
		FullName:    "Mia Chen",
		Email:       "mia@example.com",
		Explanation: "This is my profile.",
	})
	rr := testutil.Serve(http.HandlerFunc(h.SubmitClaim), http.MethodPost, "/claims", body)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp claimResponse
	testutil.DecodeJSON(t, rr, &resp)
	if !resp.Success || !strings.HasPrefix(resp.ClaimID, "claim_") {
		t.Fatalf("unexpected claim response %+v", resp)
	}

	stored, err := db.ListClaims(context.Background())
	if err != nil || len(stored) != 1 || stored[0].ID != resp.ClaimID {
		t.Fatalf("expected stored claim, got %+v err %v", stored, err)
	}
}

func TestSubmitClaimValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.SubmitClaim), http.MethodPost, "/claims",
		testutil.JSONBody(t, claims.Request{AthleteID: "rec-d1", Email: "not-an-email"}))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	if !strings.Contains(rr.Body.String(), "email") || !strings.Contains(rr.Body.String(), "fullName") {
		t.Fatalf("expected field names in error, got %s", rr.Body.String())
	}

	rr = testutil.Serve(http.HandlerFunc(h.SubmitClaim), http.MethodPost, "/claims", strings.NewReader("{bad"))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestParseQuery(t *testing.T) {
	h, _ := newTestHandler(t)
	parser := &stubParser{filters: nlquery.Filters{Sport: "Golf", Division: "D2"}}
	h.parser = parser

	rr := testutil.Serve(http.HandlerFunc(h.ParseQuery), http.MethodPost, "/query/parse",
		testutil.JSONBody(t, map[string]string{"query": "D2 golfers"}))
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp parseQueryResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Filters != parser.filters || parser.query != "D2 golfers" {
		t.Fatalf("unexpected parse response %+v (query %q)", resp, parser.query)
	}

	rr = testutil.Serve(http.HandlerFunc(h.ParseQuery), http.MethodPost, "/query/parse",
		testutil.JSONBody(t, map[string]string{"query": ""}))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	cases := map[error]int{
		nlquery.ErrNotConfigured:   http.StatusServiceUnavailable,
		nlquery.ErrInvalidResponse: http.StatusBadGateway,
		errors.New("network"):      http.StatusBadGateway,
	}
	for err, want := range cases {
		parser.err = err
		rr = testutil.Serve(http.HandlerFunc(h.ParseQuery), http.MethodPost, "/query/parse",
			testutil.JSONBody(t, map[string]string{"query": "golf"}))
		testutil.AssertStatus(t, rr, want)
	}
}

func TestNilDependenciesAnswerUnavailable(t *testing.T) {
	h := NewHandler(testutil.NewAthleteService(nil), nil, nil, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.SubmitClaim), http.MethodPost, "/claims", strings.NewReader("{}"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	rr = testutil.Serve(http.HandlerFunc(h.ParseQuery), http.MethodPost, "/query/parse", strings.NewReader("{}"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestAthleteByIDFallsBackForSparseRecords(t *testing.T) {
	sparse := testutil.SampleAthlete("rec-sparse", "", "")
	h := NewHandler(testutil.NewAthleteService([]domainathletes.Athlete{sparse}), nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/athletes/rec-sparse", nil)
	req.SetPathValue("id", "rec-sparse")
	rr := testutil.ServeRequest(http.HandlerFunc(h.AthleteByID), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var p domainathletes.Profile
	testutil.DecodeJSON(t, rr, &p)
	if p.DisplayName != "Unnamed Athlete" || p.DisplayCollege != "College Unknown" {
		t.Fatalf("expected display fallbacks, got %q / %q", p.DisplayName, p.DisplayCollege)
	}
	if p.Division.Division != divisions.Unknown || p.Validation.Valid {
		t.Fatalf("expected unknown division and invalid record, got %+v %+v", p.Division, p.Validation)
	}
	if p.ViewsLabel != "No scouts yet" {
		t.Fatalf("expected zero-view label, got %q", p.ViewsLabel)
	}
}

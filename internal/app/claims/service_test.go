package claims

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/gng-scout/athlete-directory-service/internal/testutil"
)

type memStore struct {
	saved   []Claim
	saveErr error
}

func (m *memStore) SaveClaim(_ context.Context, c Claim) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, c)
	return nil
}

func (m *memStore) ListClaims(context.Context) ([]Claim, error) {
	out := make([]Claim, 0, len(m.saved))
	for i := len(m.saved) - 1; i >= 0; i-- {
		out = append(out, m.saved[i])
	}
	return out, nil
}

func validRequest() Request {
	return Request{
		AthleteID:   "rec123",
		AthleteName: "Ava Reid",
		FullName:    " Ava Reid ",
		Email:       "ava@example.com",
		Explanation: "This is me.",
	}
}

func TestSubmitAssignsIDAndPersists(t *testing.T) {
	st := &memStore{}
	logger, buf := testutil.NewBufferLogger()
	svc := NewService(st, logger)
	fixed := testutil.MustParseRFC3339("2026-05-01T09:30:00+10:00")
	svc.now = testutil.NowAt(fixed)

	c, err := svc.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.HasPrefix(c.ID, "claim_") || len(c.ID) != len("claim_")+36 {
		t.Fatalf("unexpected claim id %q", c.ID)
	}
	if c.FullName != "Ava Reid" {
		t.Fatalf("expected trimmed name, got %q", c.FullName)
	}
	if !c.SubmittedAt.Equal(fixed) || c.SubmittedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %s", c.SubmittedAt)
	}
	if len(st.saved) != 1 || st.saved[0].ID != c.ID {
		t.Fatalf("expected claim to be stored, got %+v", st.saved)
	}
	if !strings.Contains(buf.String(), c.ID) {
		t.Fatalf("expected claim id in log output")
	}
}

func TestSubmitReportsMissingFields(t *testing.T) {
	svc := NewService(&memStore{}, nil)

	req := validRequest()
	req.FullName = "  "
	req.Email = "not-an-email"
	req.Explanation = ""

	_, err := svc.Submit(context.Background(), req)
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if diff := cmp.Diff([]string{"fullName", "email", "explanation"}, verr.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitWrapsStoreErrors(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewService(&memStore{saveErr: boom}, nil)

	if _, err := svc.Submit(context.Background(), validRequest()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	st := &memStore{}
	svc := NewService(st, nil)
	n := 0
	svc.newID = func() string { n++; return "claim_" + string(rune('0'+n)) }

	for i := 0; i < 2; i++ {
		if _, err := svc.Submit(context.Background(), validRequest()); err != nil {
			t.Fatal(err)
		}
	}
	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != "claim_2" {
		t.Fatalf("unexpected order %+v", list)
	}
}

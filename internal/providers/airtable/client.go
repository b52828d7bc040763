package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gng-scout/athlete-directory-service/internal/domain/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/providers"
)

// ErrNotConfigured is returned when the client lacks credentials or a base.
var ErrNotConfigured = errors.New("airtable: api key and base id are required")

// Config controls how the Airtable client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	BaseID     string
	Table      string
	HTTPClient *http.Client
	MaxPages   int
}

// Client lists, creates and verifies athlete records stored in an Airtable
// table.
type Client struct {
	baseURL    string
	apiKey     string
	baseID     string
	table      string
	httpClient httpDoer
	now        func() time.Time
	maxPages   int
}

// NewClient constructs an Airtable client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseID:     strings.TrimSpace(cfg.BaseID),
		table:      resolveTable(cfg.Table),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
		maxPages:   resolveMaxPages(cfg.MaxPages),
	}
}

// FetchAthletes pages through the table and maps every record.
func (c *Client) FetchAthletes(ctx context.Context) ([]athletes.Athlete, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	all := make([]athletes.Athlete, 0)
	offset := ""
	for page := 1; ; page++ {
		req, err := c.buildListRequest(ctx, offset)
		if err != nil {
			return nil, err
		}

		var payload listResponse
		if err := c.do(req, &payload); err != nil {
			return nil, err
		}

		for _, r := range payload.Records {
			if r.ID == "" {
				continue
			}
			all = append(all, mapAthlete(r))
		}

		if payload.Offset == "" || page >= c.maxPages {
			break
		}
		offset = payload.Offset
	}

	return all, nil
}

// VerifyAthlete marks the record verified and returns the stamp it wrote.
func (c *Client) VerifyAthlete(ctx context.Context, id string, v athletes.Verification) (time.Time, error) {
	if err := c.ready(); err != nil {
		return time.Time{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return time.Time{}, providers.ErrNotFound
	}

	v = v.WithDefaults()
	verifiedAt := c.now().UTC().Truncate(time.Millisecond)
	body, err := json.Marshal(verifyRequest{Fields: verifyFields{
		IsVerified:         true,
		VerifiedAt:         verifiedAt.Format(time.RFC3339Nano),
		VerifiedBy:         v.VerifiedBy,
		VerificationMethod: v.Method,
		VerificationNotes:  v.Notes,
	}})
	if err != nil {
		return time.Time{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.recordURL(id), bytes.NewReader(body))
	if err != nil {
		return time.Time{}, err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	if err := c.do(req, nil); err != nil {
		return time.Time{}, err
	}
	return verifiedAt, nil
}

// CreateAthletes adds records to the table, at most providers.MaxCreateBatch
// per request, and returns them as stored upstream.
func (c *Client) CreateAthletes(ctx context.Context, list []athletes.Athlete) ([]athletes.Athlete, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	created := make([]athletes.Athlete, 0, len(list))
	for start := 0; start < len(list); start += providers.MaxCreateBatch {
		end := min(start+providers.MaxCreateBatch, len(list))
		batch, err := c.createBatch(ctx, list[start:end])
		if err != nil {
			return created, err
		}
		created = append(created, batch...)
	}
	return created, nil
}

func (c *Client) createBatch(ctx context.Context, list []athletes.Athlete) ([]athletes.Athlete, error) {
	payload := createRequest{Records: make([]createRecord, len(list)), Typecast: true}
	for i, a := range list {
		payload.Records[i] = createRecord{Fields: mapCreateFields(a)}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tableURL(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	var resp listResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	out := make([]athletes.Athlete, 0, len(resp.Records))
	for _, r := range resp.Records {
		out = append(out, mapAthlete(r))
	}
	return out, nil
}

func (c *Client) ready() error {
	if c.apiKey == "" || c.baseID == "" {
		return ErrNotConfigured
	}
	return nil
}

func (c *Client) tableURL() string {
	return c.baseURL + "/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(c.table)
}

func (c *Client) recordURL(id string) string {
	return c.tableURL() + "/" + url.PathEscape(id)
}

func (c *Client) buildListRequest(ctx context.Context, offset string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tableURL(), nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("pageSize", strconv.Itoa(defaultPageSize))
	if offset != "" {
		q.Set("offset", offset)
	}
	req.URL.RawQuery = q.Encode()
	c.authorize(req)

	return req, nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

// do sends req, maps failure statuses to provider errors, and decodes the
// body into out when out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return c.statusError(resp, body)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("airtable: decode response: %w", err)
	}
	return nil
}

func (c *Client) statusError(resp *http.Response, body []byte) error {
	msg := upstreamMessage(body)
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    msg,
		}
	case http.StatusNotFound:
		return fmt.Errorf("airtable: %s: %w", msg, providers.ErrNotFound)
	default:
		return fmt.Errorf("airtable: unexpected status %d: %s", resp.StatusCode, msg)
	}
}

func upstreamMessage(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return "no response body"
}

package repositories

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type airtableRepository struct {
	baseURL    string
	baseID     string
	table      string
	apiKey     string
	httpClient *http.Client
}

// NewAirtableRepository returns the REST-table entitlement store. Writes are
// a blind append: the table API offers no conditional insert, so a duplicate
// webhook delivery produces a duplicate row. The Postgres backend is the one
// that deduplicates.
func NewAirtableRepository(baseURL, baseID, table, apiKey string) EntitlementRepository {
	if baseURL == "" {
		baseURL = "https://api.airtable.com/v0"
	}
	return &airtableRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		baseID:     baseID,
		table:      table,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type airtableRecord struct {
	ID     string         `json:"id,omitempty"`
	Fields map[string]any `json:"fields"`
}

type airtableListResponse struct {
	Records []airtableRecord `json:"records"`
}

func (r *airtableRepository) Upsert(ctx context.Context, email string) error {
	payload, err := json.Marshal(airtableRecord{Fields: map[string]any{"email": email}})
	if err != nil {
		return fmt.Errorf("marshal entitlement record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.recordsURL(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build entitlement write: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	if _, err := r.send(req); err != nil {
		return fmt.Errorf("airtable error: %w", err)
	}
	return nil
}

func (r *airtableRepository) IsPremium(ctx context.Context, email string) (bool, error) {
	// The filter lower-cases the stored side; the caller already normalized
	// the query side.
	formula := fmt.Sprintf("LOWER({email})='%s'", email)
	lookupURL := r.recordsURL() + "?filterByFormula=" + url.QueryEscape(formula)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return false, fmt.Errorf("build entitlement lookup: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	body, err := r.send(req)
	if err != nil {
		return false, fmt.Errorf("airtable error: %w", err)
	}

	var list airtableListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return false, fmt.Errorf("decode airtable response: %w", err)
	}
	return len(list.Records) > 0, nil
}

// send executes the request and surfaces the upstream body text on any
// non-success status.
func (r *airtableRepository) send(req *http.Request) ([]byte, error) {
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (r *airtableRepository) recordsURL() string {
	return fmt.Sprintf("%s/%s/%s", r.baseURL, r.baseID, r.table)
}

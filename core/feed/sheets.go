package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"ck-services/core/utils"
)

const sheetsBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// SheetSource fetches the feed from the Google Sheets values API using API
// key authentication.
type SheetSource struct {
	cfg     Config
	client  *http.Client
	baseURL string
}

// NewSheetSource creates a Sheets-backed feed source.
func NewSheetSource(cfg Config) *SheetSource {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}

	return &SheetSource{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		baseURL: sheetsBaseURL,
	}
}

// valuesResponse mirrors the Sheets API values payload. Cells arrive as any
// because the API renders numbers and booleans natively.
type valuesResponse struct {
	Values [][]any `json:"values"`
}

// Fetch downloads the sheet grid and converts it into feed rows.
func (s *SheetSource) Fetch(ctx context.Context) ([]Row, error) {
	if s.cfg.SheetID == "" || s.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: sheet_id and api_key must be configured", ErrSourceUnavailable)
	}

	endpoint := fmt.Sprintf("%s/%s/values/%s", s.baseURL, url.PathEscape(s.cfg.SheetID), url.PathEscape(s.cfg.Range))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	q := req.URL.Query()
	q.Set("key", s.cfg.APIKey)
	q.Set("valueRenderOption", "FORMATTED_VALUE")
	q.Set("dateTimeRenderOption", "FORMATTED_STRING")
	req.URL.RawQuery = q.Encode()

	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrSourceTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrSourceUnavailable, resp.StatusCode, string(body))
	}

	var payload valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceFormat, err)
	}

	if len(payload.Values) == 0 {
		return nil, fmt.Errorf("%w: no values in sheet response", ErrSourceFormat)
	}

	header := make([]string, len(payload.Values[0]))
	for i, cell := range payload.Values[0] {
		header[i] = utils.ToString(cell)
	}

	grid := make([][]string, 0, len(payload.Values)-1)
	for _, raw := range payload.Values[1:] {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = utils.ToString(cell)
		}
		grid = append(grid, row)
	}

	return buildRows(header, grid)
}

// isTimeout reports whether the transport error was a deadline expiry.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ck-services/core/utils"
)

// Feed error taxonomy. Any of these aborts a sync run before writes happen.
var (
	// ErrSourceUnavailable indicates the feed endpoint could not be reached
	// or refused the request.
	ErrSourceUnavailable = errors.New("feed source unavailable")
	// ErrSourceFormat indicates the feed payload is structurally invalid
	// (not a grid, or required columns missing).
	ErrSourceFormat = errors.New("feed source format invalid")
	// ErrSourceTimeout indicates the fetch exceeded the configured timeout.
	ErrSourceTimeout = errors.New("feed source timeout")
)

// Feed column names. The feed is order-insensitive; columns are located by
// normalized header name, never by position.
const (
	ColStateOffice     = "state_office_token"
	ColAreaServed      = "area_served_token"
	ColService         = "service_token"
	ColMetaTitle       = "meta_title"
	ColMetaDescription = "meta_description"
	ColPageTitle       = "page_title"
	ColPageContent     = "page_content"
)

// requiredColumns lists every column the feed header must carry.
var requiredColumns = []string{
	ColStateOffice,
	ColAreaServed,
	ColService,
	ColMetaTitle,
	ColMetaDescription,
	ColPageTitle,
	ColPageContent,
}

// Row is one feed row with named-field extraction already applied.
// Index is the zero-based data row position in the feed (header excluded).
type Row struct {
	Index            int
	StateOfficeToken string
	AreaServedToken  string
	ServiceToken     string
	MetaTitle        string
	MetaDescription  string
	PageTitle        string
	PageContent      string
}

// Source fetches one feed snapshot. A fetch either yields the full row set
// or fails as a whole; partial grids never reach the engine.
type Source interface {
	Fetch(ctx context.Context) ([]Row, error)
}

// buildHeaderIndex maps normalized column names to their position.
// It fails with ErrSourceFormat if any required column is absent.
func buildHeaderIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[utils.NormalizeHeader(h)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns: %s", ErrSourceFormat, strings.Join(missing, ", "))
	}

	return index, nil
}

// buildRows converts a raw grid into feed rows using the header index.
// Short rows are padded with empty cells; presence checks on the key fields
// are left to the reconciliation engine so one bad row never fails the fetch.
func buildRows(header []string, grid [][]string) ([]Row, error) {
	index, err := buildHeaderIndex(header)
	if err != nil {
		return nil, err
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rows := make([]Row, 0, len(grid))
	for i, raw := range grid {
		rows = append(rows, Row{
			Index:            i,
			StateOfficeToken: cell(raw, ColStateOffice),
			AreaServedToken:  cell(raw, ColAreaServed),
			ServiceToken:     cell(raw, ColService),
			MetaTitle:        cell(raw, ColMetaTitle),
			MetaDescription:  cell(raw, ColMetaDescription),
			PageTitle:        cell(raw, ColPageTitle),
			PageContent:      cell(raw, ColPageContent),
		})
	}

	return rows, nil
}

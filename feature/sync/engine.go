package sync

import (
	"context"
	"time"

	"ck-services/core/feed"
	"ck-services/feature/catalog"
	"ck-services/feature/catalog/models"

	"go.uber.org/zap"
)

// Engine reconciles one feed snapshot against the catalog. Validation and
// dedup are pure in-memory computation; the only blocking operations are the
// per-record upserts.
type Engine struct {
	store         catalog.Store
	logger        *zap.Logger
	upsertTimeout time.Duration
}

// NewEngine creates a reconciliation engine.
func NewEngine(store catalog.Store, logger *zap.Logger) *Engine {
	return &Engine{
		store:         store,
		logger:        logger,
		upsertTimeout: 30 * time.Second,
	}
}

// Run applies one feed snapshot. The caller must hold the run token; rows
// that fail validation or persistence are recorded in the report and the
// batch continues (best-effort complete). Rows absent from the feed are left
// untouched.
func (e *Engine) Run(ctx context.Context, token *RunToken, rows []feed.Row) (*Report, error) {
	if !token.Held() {
		return nil, ErrNoRunToken
	}

	started := time.Now()
	report := &Report{
		RowErrors:  []RowError{},
		Superseded: []SupersededRow{},
		TotalRows:  len(rows),
	}

	// Pass 1: validate rows into records.
	type candidate struct {
		index  int
		record models.PageRecord
	}
	candidates := make([]candidate, 0, len(rows))
	for _, row := range rows {
		record := recordFromRow(row)
		if err := record.Validate(); err != nil {
			report.RowErrors = append(report.RowErrors, RowError{
				RowIndex: row.Index,
				Reason:   err.Error(),
			})
			continue
		}
		candidates = append(candidates, candidate{index: row.Index, record: record})
	}

	// Pass 2: intra-batch dedup. The feed is authoritative top to bottom, so
	// the later row wins and the earlier one is reported as superseded.
	position := make(map[models.Key]int, len(candidates))
	survivors := make([]candidate, 0, len(candidates))
	for _, cand := range candidates {
		key := cand.record.Key()
		if prev, seen := position[key]; seen {
			report.Superseded = append(report.Superseded, SupersededRow{
				RowIndex: survivors[prev].index,
				Key:      key.String(),
			})
			survivors[prev] = cand
			continue
		}
		position[key] = len(survivors)
		survivors = append(survivors, cand)
	}

	// Pass 3: apply. An individual upsert failure becomes a RowError; the
	// remaining batch still applies.
	for _, cand := range survivors {
		outcome, err := e.upsertOne(ctx, cand.record)
		if err != nil {
			report.RowErrors = append(report.RowErrors, RowError{
				RowIndex: cand.index,
				Reason:   "upsert failed: " + err.Error(),
			})
			continue
		}

		switch outcome {
		case catalog.UpsertCreated:
			report.Created++
		case catalog.UpsertUpdated:
			report.Updated++
		case catalog.UpsertUnchanged:
			report.Unchanged++
		}
	}

	report.DurationMs = time.Since(started).Milliseconds()

	e.logger.Info("Reconciliation run complete",
		zap.Int("total_rows", report.TotalRows),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("unchanged", report.Unchanged),
		zap.Int("row_errors", len(report.RowErrors)),
		zap.Int("superseded", len(report.Superseded)),
		zap.Int64("duration_ms", report.DurationMs),
	)

	return report, nil
}

func (e *Engine) upsertOne(ctx context.Context, record models.PageRecord) (catalog.UpsertOutcome, error) {
	opCtx, cancel := context.WithTimeout(ctx, e.upsertTimeout)
	defer cancel()
	return e.store.Upsert(opCtx, &record)
}

// recordFromRow converts a feed row into a page record, normalizing the key
// segments the way every other write path does.
func recordFromRow(row feed.Row) models.PageRecord {
	return models.PageRecord{
		StateOfficeToken: models.NormalizeToken(row.StateOfficeToken),
		AreaServedToken:  models.NormalizeToken(row.AreaServedToken),
		ServiceToken:     models.NormalizeToken(row.ServiceToken),
		MetaTitle:        row.MetaTitle,
		MetaDescription:  row.MetaDescription,
		PageTitle:        row.PageTitle,
		PageContent:      row.PageContent,
	}
}

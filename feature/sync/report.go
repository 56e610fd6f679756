package sync

// RowError records a single row that failed validation or persistence.
// Row-level failures never abort the batch.
type RowError struct {
	// RowIndex is the zero-based data row position in the feed.
	RowIndex int `json:"rowIndex"`
	// Reason describes why the row was rejected.
	Reason string `json:"reason"`
}

// SupersededRow records a row whose composite key reappeared later in the
// same feed. The later row wins; this is reportable, not an error.
type SupersededRow struct {
	RowIndex int    `json:"rowIndex"`
	Key      string `json:"key"`
}

// Report is the structured result of one reconciliation run.
type Report struct {
	Created    int             `json:"created"`
	Updated    int             `json:"updated"`
	Unchanged  int             `json:"unchanged"`
	RowErrors  []RowError      `json:"rowErrors"`
	Superseded []SupersededRow `json:"superseded"`
	TotalRows  int             `json:"totalRows"`
	DurationMs int64           `json:"durationMs"`
}

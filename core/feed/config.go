package feed

// Config holds configuration for the external feed source.
type Config struct {
	// Source selects the feed implementation (sheets, bucket).
	Source string `mapstructure:"source" default:"sheets"`
	// SheetID is the Google Sheet document ID.
	SheetID string `mapstructure:"sheet_id" default:""`
	// APIKey is the Google Sheets API key.
	APIKey string `mapstructure:"api_key" default:""`
	// Range is the sheet range to fetch.
	Range string `mapstructure:"range" default:"Sheet1"`
	// ObjectName is the CSV snapshot object name for the bucket source.
	ObjectName string `mapstructure:"object_name" default:"office-pages.csv"`
	// TimeoutSeconds bounds a single feed fetch.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
}

const (
	SourceSheets = "sheets"
	SourceBucket = "bucket"
)

// IsValidSource checks if the configured feed source is valid.
func (c Config) IsValidSource() bool {
	switch c.Source {
	case SourceSheets, SourceBucket:
		return true
	default:
		return false
	}
}

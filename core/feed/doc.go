// Package feed provides access to the external office page feed.
//
// The feed is a fixed-schema tabular source: the composite key columns
// (state_office_token, area_served_token, service_token) plus the four page
// content columns. Columns are located by normalized header name, which makes
// the feed order-insensitive.
//
// # Sources
//
//   - SheetSource: fetches the live Google Sheet through the values API
//     (API key authentication).
//   - BucketSource: reads a CSV snapshot object from S3/MinIO, for setups
//     where the sheet is exported on a schedule instead of queried directly.
//
// # Failure semantics
//
// A fetch is all-or-nothing. Connectivity problems surface as
// ErrSourceUnavailable, deadline expiry as ErrSourceTimeout, and a payload
// that is not a valid grid (or lacks required columns) as ErrSourceFormat.
// A row with an empty key cell is NOT a fetch error; it flows through so the
// reconciliation engine can record it row-level and keep the batch going.
package feed

// Package sync implements the catalog reconciliation engine.
//
// One run ingests a feed snapshot, validates and deduplicates the rows in
// memory, and applies the surviving write-set through the catalog store as
// per-record upserts. The run produces a structured Report with created,
// updated, unchanged, row-error and superseded counts.
//
// # Semantics
//
//   - Best-effort complete: a row failing validation or a single failed
//     upsert is recorded as a RowError and the batch continues.
//   - Intra-batch precedence: when two rows share a composite key the later
//     feed row wins; the earlier one is reported as superseded.
//   - Additive only: records absent from the feed are never deleted.
//   - Fail fast on the source: an unreachable or structurally invalid feed
//     aborts the run before any write, with no report produced.
//   - Idempotent: re-running an identical feed yields created=0 updated=0
//     because identical-content upserts are classified unchanged and skip
//     the write.
//
// # Run lock
//
// At most one run may be active. The RunLock issues an explicit RunToken
// that the engine requires; the scheduler (the sync command or the HTTP
// trigger) owns acquisition and release.
//
// # HTTP Endpoints
//
//   - POST /sync/run : Trigger a run and return its report.
package sync

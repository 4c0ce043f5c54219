// Package store provides a SQLite-backed log of executed SPARQL queries.
//
// The log is append-only: every terminal query run of a recorded kind adds
// one row with the query text, the endpoint, the row count or error, and
// timing. Rows are never read back to answer queries; the log exists for
// auditing and the CLI history command.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Schema changes are tracked with PRAGMA user_version.
package store

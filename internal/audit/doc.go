// Package audit records store-changing operations in a local audit log.
//
// Inserts and re-encryption runs are appended as JSON Lines (one JSON
// object per line) to:
//
//	$XDG_DATA_HOME/passkeep/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Local user name
//   - Operation name and store location
//   - Operation-specific details (files, run id, counts)
//
// # Usage
//
//	trail := audit.DefaultTrail()
//	trail.Log(audit.Entry{Operation: "insert", Store: root, Files: []string{"mail/alice"}})
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails the operation continues
// without error.
//
// The log never contains plaintext, only store-relative paths.
package audit

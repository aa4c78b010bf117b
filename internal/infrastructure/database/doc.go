// Package database manages the SQLite connection for StaffSphere Core.
//
// It provides the shared process-wide handle (opened once at startup, closed
// on shutdown), embedded SQL migrations, and health checks. SQLite's
// single-writer model suits the workload: every endpoint performs at most one
// store write per request.
package database

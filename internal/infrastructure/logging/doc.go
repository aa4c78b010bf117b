// Package logging provides structured logging for StaffSphere Core.
//
// It wraps log/slog with service-wide defaults, level filtering from
// configuration, and JSON or text output.
package logging

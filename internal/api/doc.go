// Package api provides the HTTP REST API server for StaffSphere Core.
//
// It exposes token issuance, staff account management, employee
// verification, salary updates, and task logging to the HR dashboard.
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Authorization is enforced per route: a bearer token middleware verifies
// the caller's identity, and role middleware re-reads the caller's role
// from the store on every request so that a stale token never grants
// privileges the account no longer holds.
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

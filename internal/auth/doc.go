// Package auth provides the token service for StaffSphere Core.
//
// It issues and verifies HS256-signed, time-limited identity assertions.
// Verification is stateless: signature and expiry only, no revocation list.
// The verified email claim is the only identity the rest of the system
// trusts; role checks always re-read the role from the staff store by that
// email rather than trusting anything the client asserts.
package auth

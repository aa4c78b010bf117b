// Package staff provides persistence for user accounts and task logs.
//
// It owns the role model: role is a closed enumeration (unset, employee, hr,
// admin) validated at the repository boundary, never a free-form string.
// "unset" grants no privileged access. Registration is idempotent by email:
// a second insert for an existing email is a no-op, never an error surfaced
// to clients.
package staff

// Package config loads and validates StaffSphere Core configuration.
//
// Configuration comes from a YAML file with environment variable overrides
// (STAFFSPHERE_* pattern). Validation refuses to start without a strong JWT
// secret, since every authorization decision in the system hangs off it.
package config

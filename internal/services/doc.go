// Package services provides shared error classification and context
// propagation helpers used across reshelf subsystems.
package services

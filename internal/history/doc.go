// Package history persists rename outcomes in a SQLite journal so past runs
// can be inspected. It is an audit log, not an undo mechanism.
package history

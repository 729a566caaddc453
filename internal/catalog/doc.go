// Package catalog models the scene, file, and studio records served by a
// Stash-compatible catalog and implements the GraphQL client used to read
// them and to commit file moves.
package catalog

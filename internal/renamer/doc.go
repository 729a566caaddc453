// Package renamer builds target paths from naming templates, resolves
// collisions with an incrementing duplicate suffix, and executes renames
// through the catalog together with related-file handling.
package renamer

// Package template resolves $variable$ placeholders against catalog scene
// and file records and expands naming templates with optional-section
// elision.
package template

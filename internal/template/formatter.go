package template

import (
	"context"
	"regexp"
	"strings"

	"reshelf/internal/catalog"
)

// placeholderPattern matches $name$ tokens in a single left-to-right scan, so
// a resolved value can never be mistaken for a later placeholder.
var placeholderPattern = regexp.MustCompile(`\$([A-Za-z_]+)\$`)

// optionalPattern matches one {...} span. Non-greedy and single-level; nested
// optional sections are not supported.
var optionalPattern = regexp.MustCompile(`\{[^{}]*\}`)

// Expand applies a format template against the scene and file records.
//
// Known placeholders with non-empty values are substituted in one pass.
// Placeholders that resolved empty (and unknown ones) stay in place, then any
// {...} span still holding a placeholder token is elided whole, and leftover
// braces are stripped. Expansion never fails; absent data only affects the
// resulting text.
func (r *Resolver) Expand(ctx context.Context, format string, scene *catalog.Scene, file *catalog.File, index int) string {
	expanded := placeholderPattern.ReplaceAllStringFunc(format, func(token string) string {
		name := token[1 : len(token)-1]
		variable, known := variablesByName[name]
		if !known {
			return token
		}
		value := r.Resolve(ctx, variable, scene, file, index)
		if value == "" {
			return token
		}
		return value
	})

	expanded = optionalPattern.ReplaceAllStringFunc(expanded, func(span string) string {
		if placeholderPattern.MatchString(span) {
			return ""
		}
		return span
	})

	expanded = strings.ReplaceAll(expanded, "{", "")
	return strings.ReplaceAll(expanded, "}", "")
}

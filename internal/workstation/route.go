// Package workstation derives the workstation context from a navigation
// path. Timers are scoped to the document being edited at
// /dashboard/workstation/edit/<slug>.
package workstation

import "strings"

const editPrefix = "/dashboard/workstation/edit/"

// SlugFromPath returns the workstation slug for an edit path, or "" when the
// path is outside any workstation context.
func SlugFromPath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, editPrefix) {
		return ""
	}
	slug := strings.Trim(strings.TrimPrefix(path, editPrefix), "/")
	if slug == "" || strings.Contains(slug, "/") {
		return ""
	}
	return slug
}

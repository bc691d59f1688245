// Package mount resolves the deployment mount prefix of the application.
// IrisMapper is served either from the web root or from a known project
// folder (for example GitHub Pages style "/irismapper-main/..."), and every
// redirect target must be built relative to that prefix.
package mount

import "strings"

// Prefix derives the mount prefix from a request path by checking the first
// path segment, case-insensitively, against the folder allow-list. Unmatched
// input resolves to the root prefix "/". The function is pure and idempotent:
// feeding a returned prefix back in yields the same prefix.
func Prefix(path string, folders []string) string {
	first := firstSegment(path)
	if first == "" {
		return "/"
	}

	for _, folder := range folders {
		if strings.EqualFold(first, folder) {
			return "/" + folder + "/"
		}
	}

	return "/"
}

// firstSegment returns the first non-empty path segment, or "".
func firstSegment(path string) string {
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			return segment
		}
	}

	return ""
}

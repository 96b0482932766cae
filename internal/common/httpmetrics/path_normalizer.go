package httpmetrics

import (
	"regexp"
	"strings"
)

const unmatchedPath = "{unmatched}"

var (
	uuidRegex = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

	knownRoutes = map[string]struct{}{
		"/":          {},
		"/api/state": {},
		"/api/users": {},
		"/ws":        {},
		"/health":    {},
		"/metrics":   {},
	}
)

// NormalizePath maps a request path to a metrics label. Served routes keep
// their path; anything else is folded so scanners cannot grow label sets.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if _, ok := knownRoutes[path]; ok {
		return path
	}

	parts := strings.Split(uuidRegex.ReplaceAllString(path, "{id}"), "/")
	for i, part := range parts {
		if part != "" && (strings.HasPrefix(part, "{") || isNumeric(part)) {
			parts[i] = "{param}"
		}
	}
	if _, ok := knownRoutes[strings.Join(parts[:len(parts)-1], "/")]; ok && parts[len(parts)-1] == "{param}" {
		return strings.Join(parts, "/")
	}

	return "/" + unmatchedPath
}

func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

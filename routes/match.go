package routes

import "strings"

// PlaceholderMarker delimits a named parameter in a URI pattern segment,
// as in /examples/qwe/:id:.
const PlaceholderMarker = ":"

// minSegments is the shape every matchable path must have:
// ["", controller, action, ...].
const minSegments = 3

// splitPath splits p on "/" and reports whether the result carries a
// non-empty action segment.
func splitPath(p string) ([]string, bool) {
	segments := strings.Split(p, "/")
	if len(segments) < minSegments || segments[2] == "" {
		return nil, false
	}

	return segments, true
}

// matchRoute tests r against the request segments and returns the
// parameters it binds. Bindings are built per candidate so a rejected
// route never leaks values.
func matchRoute(r Route, segments []string) (Params, bool) {
	controller, action := segments[1], segments[2]

	// Cheap containment pre-filter; the exact check below decides.
	if !strings.Contains(r.URI, controller) || !strings.Contains(r.URI, action) {
		return nil, false
	}

	pattern := strings.Split(r.URI, "/")
	if len(pattern) < minSegments {
		return nil, false
	}

	if pattern[1] != controller || pattern[2] != action {
		return nil, false
	}

	return bindParams(pattern, segments), true
}

// bindParams extracts every placeholder in pattern from the segment at the
// same position. Placeholders past the end of the path are left unbound.
func bindParams(pattern, segments []string) Params {
	var params Params

	for i, seg := range pattern {
		if !isPlaceholder(seg) || i >= len(segments) {
			continue
		}

		if params == nil {
			params = make(Params)
		}
		params[strings.ReplaceAll(seg, PlaceholderMarker, "")] = segments[i]
	}

	return params
}

// isPlaceholder reports whether seg contains the marker exactly twice.
func isPlaceholder(seg string) bool {
	return strings.Count(seg, PlaceholderMarker) == 2
}

package routes

import (
	"sort"
	"unicode"
	"unicode/utf8"
)

// ConventionRoutes pre-expands convention routing into table entries: each
// action of each controller becomes a route "/controller/action" for method,
// resolving to Controller->action with the controller name capitalized.
//
// Controllers are emitted in sorted order and actions in the given order,
// so the result is deterministic. Identifiers have the form
// "controller/action".
func ConventionRoutes(method string, controllers map[string][]string) []Route {
	names := make([]string, 0, len(controllers))
	for name := range controllers {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Route
	for _, name := range names {
		for _, action := range controllers[name] {
			out = append(out, Route{
				ID:     name + "/" + action,
				Method: method,
				URI:    "/" + name + "/" + action,
				Action: Action{Controller: capitalize(name), Method: action},
			})
		}
	}

	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

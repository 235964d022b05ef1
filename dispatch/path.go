package dispatch

import "path"

// cleanPath normalizes the request path before route lookup: a leading
// slash is added, dot segments and repeated slashes are collapsed, and a
// trailing slash survives.
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}

	if p[0] != '/' {
		p = "/" + p
	}

	cleaned := path.Clean(p)
	if cleaned != "/" && p[len(p)-1] == '/' {
		return cleaned + "/"
	}

	return cleaned
}

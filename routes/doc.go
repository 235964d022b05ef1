// Package routes resolves an HTTP method and request path to an application
// action, binding named path parameters along the way.
//
// # Route table
//
// Routes are declared in a document with a top-level routes mapping:
//
//	routes:
//	  opcache:
//	    method: GET
//	    uri: /settings/opcache
//	    action: Settings->opcache
//	  example:
//	    method: GET
//	    uri: /examples/qwe/:id:
//	    action: Examples->qwe
//
// Declaration order is kept and decides between overlapping routes.
//
// # Loading
//
// A Loader consults a Cache under a fixed key first and returns a cached
// table verbatim. On a miss it reads the Source, appends convention routes
// (see ConventionRoutes) and saves the result:
//
//	m, err := routes.New(ctx, routes.Document(data), cache)
//
// # Matching
//
// A path is split on "/" and must carry controller and action segments.
// Routes are filtered by method, then scanned in order; the first route
// whose controller and action segments equal the path's wins. Pattern
// segments of the form :name: bind the path segment at the same position:
//
//	action, params, ok := m.Match("GET", "/examples/qwe/3")
//	// action.String() == "Examples->qwe", params["id"] == "3"
//
// GetRoute does the same for a Request collaborator and writes the bound
// parameters into it.
package routes

// Package dispatch serves HTTP requests by resolving them to actions with a
// routes.Manager and invoking the handler registered for each action.
//
// # Dispatcher
//
// Register a handler per action and serve:
//
//	d := dispatch.New(manager)
//	d.HandleFunc("Settings->opcache", func(w http.ResponseWriter, r *http.Request) {
//	    dispatch.ResponseJSON(w, http.StatusOK, dispatch.Params(r))
//	})
//	http.ListenAndServe(":8080", d)
//
// Requests without a matching route, or whose action has no handler, get
// 404 Not Found.
//
// # Parameters
//
// Placeholder values bound by the match are stored in the request context:
//
//	id, ok := dispatch.Param(r, "id")
//	action := dispatch.CurrentAction(r)
//
// # Request IDs
//
// Every response carries a request ID header (X-Request-ID by default),
// a UUID v4 unless configured otherwise. The ID is available to handlers
// through RequestIDFromContext.
//
// # Panics
//
// A panicking handler is recovered, logged and answered with 500.
package dispatch

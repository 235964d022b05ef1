package dispatch

import (
	"context"
	"net/http"

	"github.com/vitalvas/actionroute/routes"
)

type routeContextKey struct{}

// routeContext holds the resolved action and its bound parameters.
type routeContext struct {
	action routes.Action
	params routes.Params
}

// Params returns the parameters bound for the current request, if any.
func Params(r *http.Request) routes.Params {
	if rc, ok := r.Context().Value(routeContextKey{}).(*routeContext); ok {
		return rc.params
	}
	return nil
}

// Param returns a single bound parameter and whether it was bound.
func Param(r *http.Request, name string) (string, bool) {
	if rc, ok := r.Context().Value(routeContextKey{}).(*routeContext); ok && rc.params != nil {
		v, exists := rc.params[name]
		return v, exists
	}
	return "", false
}

// CurrentAction returns the action the current request was resolved to.
// It is only set inside a handler invoked by a Dispatcher.
func CurrentAction(r *http.Request) routes.Action {
	if rc, ok := r.Context().Value(routeContextKey{}).(*routeContext); ok {
		return rc.action
	}
	return routes.Action{}
}

// WithRoute returns a copy of r carrying action and params. This is
// intended for testing handlers outside a Dispatcher.
func WithRoute(r *http.Request, action routes.Action, params routes.Params) *http.Request {
	ctx := context.WithValue(r.Context(), routeContextKey{}, &routeContext{action: action, params: params})
	return r.WithContext(ctx)
}

// requestSink adapts an *http.Request to routes.Request, collecting the
// parameters written by a successful match.
type requestSink struct {
	method string
	params routes.Params
}

func (s *requestSink) RequestType() string {
	return s.method
}

func (s *requestSink) SetParameter(name, value string) {
	if s.params == nil {
		s.params = make(routes.Params)
	}
	s.params[name] = value
}

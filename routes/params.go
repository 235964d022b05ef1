package routes

import "sort"

// Params holds the placeholder values extracted by a successful match.
type Params map[string]string

// Get returns the value bound to name and whether it was bound.
func (p Params) Get(name string) (string, bool) {
	v, ok := p[name]
	return v, ok
}

// Names returns the bound parameter names in sorted order.
func (p Params) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// ParameterSink receives the parameters bound by a match. It is owned by
// the request object, not by the router.
type ParameterSink interface {
	SetParameter(name, value string)
}

// Request is the per-request collaborator consulted by GetRoute: it reports
// the request method and receives the extracted parameters.
type Request interface {
	ParameterSink
	RequestType() string
}

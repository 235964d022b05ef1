package routes

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Route maps an HTTP method and URI pattern to an action.
//
// The URI pattern has the form /controller/action[/:param:/...]. A segment
// enclosed in PlaceholderMarker on both sides names a parameter that is
// bound to the request segment at the same position.
type Route struct {
	ID     string `yaml:"-"`
	Method string `yaml:"method"`
	URI    string `yaml:"uri"`
	Action Action `yaml:"action"`
}

// Table is an ordered set of routes keyed by identifier. Iteration follows
// declaration order, which decides between overlapping patterns.
//
// A Table is not safe for concurrent mutation; Manager serializes access.
type Table struct {
	routes []Route
	index  map[string]int
}

// NewTable returns a table holding the given routes in order.
// It fails with ErrDuplicateRoute if two routes share an identifier.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{index: make(map[string]int, len(routes))}
	for _, r := range routes {
		if err := t.Add(r); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Add appends r to the table. The table is left unmodified when the
// identifier is already taken.
func (t *Table) Add(r Route) error {
	if t.index == nil {
		t.index = make(map[string]int)
	}

	if _, ok := t.index[r.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateRoute, r.ID)
	}

	t.index[r.ID] = len(t.routes)
	t.routes = append(t.routes, r)

	return nil
}

// Get returns the route registered under id.
func (t *Table) Get(id string) (Route, bool) {
	i, ok := t.index[id]
	if !ok {
		return Route{}, false
	}

	return t.routes[i], true
}

// Has reports whether id is registered.
func (t *Table) Has(id string) bool {
	_, ok := t.index[id]
	return ok
}

// Len returns the number of routes.
func (t *Table) Len() int {
	return len(t.routes)
}

// Routes returns a copy of the routes in declaration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)

	return out
}

// Clone returns an independent copy of t.
func (t *Table) Clone() *Table {
	c := &Table{
		routes: t.Routes(),
		index:  make(map[string]int, len(t.index)),
	}
	for id, i := range t.index {
		c.index[id] = i
	}

	return c
}

// MarshalYAML encodes the table as a mapping from identifier to route,
// preserving declaration order.
func (t *Table) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, r := range t.routes {
		value := &yaml.Node{}
		if err := value.Encode(r); err != nil {
			return nil, fmt.Errorf("routes: encode route %q: %w", r.ID, err)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.ID},
			value,
		)
	}

	return node, nil
}

// UnmarshalYAML decodes a mapping from identifier to route, keeping the
// order in which the entries appear.
func (t *Table) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("routes: line %d: route table must be a mapping", value.Line)
	}

	decoded := &Table{index: make(map[string]int, len(value.Content)/2)}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key, entry := value.Content[i], value.Content[i+1]

		if entry.Kind != yaml.MappingNode {
			return fmt.Errorf("routes: line %d: route %q must be a mapping", entry.Line, key.Value)
		}

		var r Route
		if err := entry.Decode(&r); err != nil {
			return fmt.Errorf("routes: route %q: %w", key.Value, err)
		}
		r.ID = key.Value

		if err := decoded.Add(r); err != nil {
			return err
		}
	}

	*t = *decoded

	return nil
}

// document is the top-level shape of a declarative route source.
type document struct {
	Routes *Table `yaml:"routes"`
}

// DecodeDocument parses a declarative route document and returns the table
// found under its top-level routes key. Errors are *ConfigError.
func DecodeDocument(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Err: err}
	}

	if doc.Routes == nil {
		return nil, &ConfigError{Err: ErrMissingRoutesKey}
	}

	return doc.Routes, nil
}

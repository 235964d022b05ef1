package routes

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// excludeDirectories is the fixed filesystem-scan exclusion list.
var excludeDirectories = []string{".", ".."}

// Manager resolves request paths to actions over a route table and accepts
// runtime route registrations.
//
// Lookups and registrations are safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	table  *Table
	logger *zap.Logger
}

// New loads the route table through a Loader built from source, cache and
// opts, and returns a manager over it. Load errors abort construction.
func New(ctx context.Context, source Source, cache Cache, opts ...Option) (*Manager, error) {
	table, err := NewLoader(source, cache, opts...).Load(ctx)
	if err != nil {
		return nil, err
	}

	return NewWithTable(table, opts...), nil
}

// NewWithTable returns a manager over an already loaded table. A nil table
// yields an empty manager.
func NewWithTable(table *Table, opts ...Option) *Manager {
	if table == nil {
		table = &Table{}
	}

	o := applyOptions(opts)

	return &Manager{
		table:  table,
		logger: o.logger,
	}
}

// Match resolves method and path to an action. Only routes declared for
// method (exact, case-sensitive) are considered, in declaration order; the
// first whose controller and action segments equal the path's wins.
// The returned Params hold the placeholders bound by that route only.
//
// Paths without a non-empty action segment never match.
func (m *Manager) Match(method, path string) (Action, Params, bool) {
	segments, ok := splitPath(path)
	if !ok {
		return Action{}, nil, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.table.routes {
		if r.Method != method {
			continue
		}

		if params, ok := matchRoute(r, segments); ok {
			return r.Action, params, true
		}
	}

	return Action{}, nil, false
}

// GetRoute matches path under the method reported by req and, on success,
// writes the bound parameters into req in name order.
func (m *Manager) GetRoute(req Request, path string) (Action, bool) {
	action, params, ok := m.Match(req.RequestType(), path)
	if !ok {
		return Action{}, false
	}

	for _, name := range params.Names() {
		req.SetParameter(name, params[name])
	}

	return action, true
}

// AddRoute registers a route at the end of the table. It fails with
// ErrDuplicateRoute, leaving the table unmodified, if id is taken.
func (m *Manager) AddRoute(id, method, uri, action string) error {
	r := Route{
		ID:     id,
		Method: method,
		URI:    uri,
		Action: ParseAction(action),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.table.Add(r); err != nil {
		return err
	}

	m.logger.Debug("route added",
		zap.String("id", id),
		zap.String("method", method),
		zap.String("uri", uri),
		zap.String("action", action),
	)

	return nil
}

// Routes returns a snapshot of the routes in declaration order.
func (m *Manager) Routes() []Route {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.table.Routes()
}

// Table returns an independent copy of the current table.
func (m *Manager) Table() *Table {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.table.Clone()
}

// ExcludeDirectories returns the directory names skipped when scanning the
// filesystem, always "." and "..".
func (m *Manager) ExcludeDirectories() []string {
	out := make([]string, len(excludeDirectories))
	copy(out, excludeDirectories)

	return out
}

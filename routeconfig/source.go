package routeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/vitalvas/actionroute/routes"
)

// FileSource reads a declarative routes document from disk.
type FileSource struct {
	Path string
}

var _ routes.Source = FileSource{}

// Routes reads, decodes and validates the document. Every failure is a
// *routes.ConfigError naming the file.
func (s FileSource) Routes() (*routes.Table, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &routes.ConfigError{Source: s.Path, Err: err}
	}

	table, err := routes.DecodeDocument(data)
	if err != nil {
		var ce *routes.ConfigError
		if errors.As(err, &ce) {
			return nil, &routes.ConfigError{Source: s.Path, Err: ce.Err}
		}

		return nil, &routes.ConfigError{Source: s.Path, Err: err}
	}

	for _, r := range table.Routes() {
		if err := validateRoute(r); err != nil {
			return nil, &routes.ConfigError{Source: s.Path, Err: err}
		}
	}

	return table, nil
}

// validateRoute checks the fields every declared route must carry.
func validateRoute(r routes.Route) error {
	if !httpguts.ValidTokenName(r.Method) {
		return fmt.Errorf("route %q: invalid method %q", r.ID, r.Method)
	}

	if !strings.HasPrefix(r.URI, "/") {
		return fmt.Errorf("route %q: uri %q must start with /", r.ID, r.URI)
	}

	if r.Action.IsZero() {
		return fmt.Errorf("route %q: action is required", r.ID)
	}

	return nil
}

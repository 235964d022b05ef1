package routes

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// ActionSeparator separates the controller from the method in the textual
// form of an Action, e.g. "Settings->opcache".
const ActionSeparator = "->"

// Action is the handler reference a matched route resolves to. It names a
// controller and one of its methods; resolving it to code is left to a
// dispatch table outside this package.
type Action struct {
	Controller string
	Method     string
}

// ParseAction parses the "Controller->method" form. A value without the
// separator is taken as a bare controller reference.
func ParseAction(s string) Action {
	controller, method, ok := strings.Cut(s, ActionSeparator)
	if !ok {
		return Action{Controller: s}
	}

	return Action{Controller: controller, Method: method}
}

// String returns the "Controller->method" form.
func (a Action) String() string {
	if a.Method == "" {
		return a.Controller
	}

	return a.Controller + ActionSeparator + a.Method
}

// IsZero reports whether a is the empty action.
func (a Action) IsZero() bool {
	return a.Controller == "" && a.Method == ""
}

// MarshalYAML encodes the action in its textual form.
func (a Action) MarshalYAML() (any, error) {
	return a.String(), nil
}

// UnmarshalYAML decodes the textual form.
func (a *Action) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	*a = ParseAction(s)

	return nil
}

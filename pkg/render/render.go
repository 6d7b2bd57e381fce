package render

import "strings"

// Var is a single placeholder binding.
type Var struct {
	Name  string
	Value string
}

// Marker returns the placeholder text for name, e.g. "{name}".
func Marker(name string) string {
	return "{" + name + "}"
}

// Render replaces every {name} marker with its value, in the order vars are given.
// Markers with no binding are left as they are.
//
// Replacement is plain substring substitution. A value that contains another
// variable's marker will be expanded again if that variable comes later in vars.
func Render(template string, vars []Var) string {
	rendered := template
	for _, v := range vars {
		rendered = strings.ReplaceAll(rendered, Marker(v.Name), v.Value)
	}
	return rendered
}

// Names returns the variable names in order.
func Names(vars []Var) []string {
	names := make([]string, 0, len(vars))
	for _, v := range vars {
		names = append(names, v.Name)
	}
	return names
}

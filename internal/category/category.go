// internal/category/category.go
package category

import "strings"

// Category is a display grouping token. It is an open set: unrecognized
// tokens pass through untouched and the presentation layer decides how to
// render them.
type Category string

const (
	Current     Category = "current"
	Voltage     Category = "voltage"
	Power       Category = "power"
	PowerFactor Category = "power_factor"
	Energy      Category = "energy"
	Setup       Category = "setup"
)

// singular rewrites plural type tags to their canonical singular token.
var singular = map[string]Category{
	"currents":      Current,
	"voltages":      Voltage,
	"power_factors": PowerFactor,
}

// Classify maps an optional type tag to a category, deriving it from the
// description when the tag is empty. Purely syntactic: no validation
// against a closed set.
func Classify(tag, description string) Category {
	if strings.TrimSpace(tag) != "" {
		token := normalize(tag)
		if c, ok := singular[token]; ok {
			return c
		}
		return Category(token)
	}
	return Category(normalize(description))
}

// Known reports whether c is one of the recognized display categories.
func (c Category) Known() bool {
	switch c {
	case Current, Voltage, Power, PowerFactor, Energy, Setup:
		return true
	}
	return false
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, "/", "_")
}

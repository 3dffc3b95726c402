package parts

import (
	_ "embed"
	"html/template"
)

//go:embed dashboard.css
var criticalCSS string

// GetCriticalCSS returns the stylesheet inlined into every page head.
func GetCriticalCSS() template.CSS {
	return template.CSS(criticalCSS)
}

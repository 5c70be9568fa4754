package exporter

import (
	"fmt"
	"strings"
)

// formatFloat formats a float for CSV output with up to six decimal places,
// trailing zeros trimmed.
func formatFloat(f float64) string {
	s := fmt.Sprintf("%.6f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// formatNullable formats an optional metric; a gap exports as an empty cell.
func formatNullable(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

package model

import (
	"fmt"
	"strings"
)

// enumName returns names[v] or "Unknown" for out-of-range values.
func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return "Unknown"
	}
	return names[v]
}

// parseEnum maps a case-insensitive name back to its enum value.
func parseEnum[T ~uint8](kind string, names []string, s string) (T, error) {
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

package model

import "strings"

// UnassignedName is the sentinel stored in an empty designer or PM slot.
const UnassignedName = "Unassigned"

// Normalize is the single identity comparison form used by the diff engine,
// the filter, delivery, and the role views: lowercase, trimmed.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsAssigned reports whether a designer/PM slot value names a person.
func IsAssigned(name string) bool {
	n := Normalize(name)
	return n != "" && n != "unassigned"
}

// SameIdentity compares two identity strings after normalization.
func SameIdentity(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

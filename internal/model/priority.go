package model

import "strings"

// Priority is one of Low, Medium or High.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities returns the allowed priorities from highest to lowest.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// ParsePriority matches s case-insensitively and returns the canonical value.
// Surrounding spaces are not trimmed.
func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities() {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

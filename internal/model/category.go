package model

import (
	"fmt"
	"strings"
)

// Category is the closed set of task categories.
// The zero value is CategoryNone and never appears on a stored task.
type Category int

const (
	CategoryNone Category = iota
	CategoryPersonal
	CategoryWork
	CategoryErrands
	CategoryShopping
	CategoryHealth
	CategoryOther
)

var categoryNames = map[Category]string{
	CategoryPersonal: "PERSONAL",
	CategoryWork:     "WORK",
	CategoryErrands:  "ERRANDS",
	CategoryShopping: "SHOPPING",
	CategoryHealth:   "HEALTH",
	CategoryOther:    "OTHER",
}

// Categories returns the defined categories in display order.
func Categories() []Category {
	return []Category{
		CategoryPersonal,
		CategoryWork,
		CategoryErrands,
		CategoryShopping,
		CategoryHealth,
		CategoryOther,
	}
}

func (c Category) String() string {
	return categoryNames[c]
}

// Valid reports whether c is a defined member (CategoryNone is not).
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory matches a category name, ignoring case and surrounding spaces.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for c, name := range categoryNames {
		if name == s {
			return c, true
		}
	}
	return CategoryNone, false
}

// MarshalText writes the upper-case name. CategoryNone encodes as "".
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, ok := ParseCategory(string(b))
	if !ok {
		return fmt.Errorf("unknown category %q", string(b))
	}
	*c = parsed
	return nil
}

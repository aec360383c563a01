package model

import (
	"strings"
	"time"
	"unicode"
)

// Category is an expense category. Categories are created lazily on
// first reference and never deleted by the core.
type Category struct {
	CreatedAt time.Time
	Name      string
	ID        int64
}

// NormalizeCategoryName trims surrounding whitespace and title-cases
// the name so "  food " and "FOOD" resolve to the same category.
func NormalizeCategoryName(name string) string {
	fields := strings.Fields(name)
	for i, f := range fields {
		runes := []rune(strings.ToLower(f))
		runes[0] = unicode.ToUpper(runes[0])
		fields[i] = string(runes)
	}
	return strings.Join(fields, " ")
}

package errors

import (
	"regexp"
	"strings"
)

// ValidateGrid checks that a grid has at least one row and one column.
func ValidateGrid(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return New(ErrCodeInvalidGrid, "grid must be at least 1x1, got %dx%d", rows, cols)
	}
	return nil
}

// ValidateShrink checks that the shrink factor is positive.
func ValidateShrink(shrink int) error {
	if shrink <= 0 {
		return New(ErrCodeInvalidShrink, "shrink factor must be positive, got %d", shrink)
	}
	return nil
}

// hexColorRegex matches #RGB, #RRGGBB and #RRGGBBAA.
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)

// ValidateHexColor checks that s is a #RGB, #RRGGBB or #RRGGBBAA string.
func ValidateHexColor(name, s string) error {
	if !hexColorRegex.MatchString(strings.TrimSpace(s)) {
		return New(ErrCodeInvalidColor, "%s: invalid color %q (want #RRGGBB or #RRGGBBAA)", name, s)
	}
	return nil
}

// ValidateNonNegative checks that a count such as blur iterations is not negative.
func ValidateNonNegative(name string, n int) error {
	if n < 0 {
		return New(ErrCodeInvalidConfig, "%s must not be negative, got %d", name, n)
	}
	return nil
}

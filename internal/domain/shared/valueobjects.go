// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"fmt"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// Grade
// ═══════════════════════════════════════════════════════════════════════════

// Grade bounds on the 0-20 scale.
const (
	MinGrade     Grade = 0
	MaxGrade     Grade = 20
	PassingGrade Grade = 10
)

// Grade represents a numeric course outcome.
type Grade float64

// IsValid checks that the grade lies within the scale.
func (g Grade) IsValid() bool {
	return g >= MinGrade && g <= MaxGrade
}

// IsPassing reports whether the grade counts as a pass.
func (g Grade) IsPassing() bool {
	return g >= PassingGrade
}

// Float64 returns the underlying value.
func (g Grade) Float64() float64 {
	return float64(g)
}

// NewGrade creates a new Grade with validation.
func NewGrade(value float64) (Grade, error) {
	g := Grade(value)
	if !g.IsValid() {
		return 0, WrapError("student", "NewGrade", ErrValueOutOfRange,
			fmt.Sprintf("grade %.2f must be between %.0f and %.0f", value, float64(MinGrade), float64(MaxGrade)), nil)
	}
	return g, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Identifiers
// ═══════════════════════════════════════════════════════════════════════════

// NormalizeID trims surrounding whitespace from an identifier.
func NormalizeID(id string) string {
	return strings.TrimSpace(id)
}

package enrollment

import (
	"errors"
	"fmt"
)

// Policy holds the unit-load thresholds.
//
// A request is rejected when
//
//	(gpa < LowGPA && units > LowGPAMaxUnits) ||
//	(gpa < MidGPA && units > MidGPAMaxUnits) ||
//	units > MaxUnits
type Policy struct {
	LowGPA         float64
	LowGPAMaxUnits int
	MidGPA         float64
	MidGPAMaxUnits int
	MaxUnits       int
}

// DefaultPolicy returns the standard thresholds.
func DefaultPolicy() Policy {
	return Policy{
		LowGPA:         12,
		LowGPAMaxUnits: 14,
		MidGPA:         16,
		MidGPAMaxUnits: 16,
		MaxUnits:       20,
	}
}

// Validate checks that the thresholds are ordered.
func (p Policy) Validate() error {
	var errs []error
	if p.LowGPAMaxUnits <= 0 || p.MidGPAMaxUnits <= 0 || p.MaxUnits <= 0 {
		errs = append(errs, errors.New("unit caps must be positive"))
	}
	if p.LowGPAMaxUnits > p.MidGPAMaxUnits || p.MidGPAMaxUnits > p.MaxUnits {
		errs = append(errs, fmt.Errorf("unit caps must not decrease: %d, %d, %d",
			p.LowGPAMaxUnits, p.MidGPAMaxUnits, p.MaxUnits))
	}
	if p.LowGPA > p.MidGPA {
		errs = append(errs, fmt.Errorf("GPA floors must not decrease: %.1f, %.1f", p.LowGPA, p.MidGPA))
	}
	return errors.Join(errs...)
}

// exceeds reports whether units break the policy for the given GPA.
func (p Policy) exceeds(gpa float64, units int) bool {
	return (gpa < p.LowGPA && units > p.LowGPAMaxUnits) ||
		(gpa < p.MidGPA && units > p.MidGPAMaxUnits) ||
		units > p.MaxUnits
}

// needsGPA reports whether the decision for units depends on the GPA.
func (p Policy) needsGPA(units int) bool {
	if units > p.MaxUnits {
		return false
	}
	return units > p.LowGPAMaxUnits || units > p.MidGPAMaxUnits
}

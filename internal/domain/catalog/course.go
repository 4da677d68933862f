// Package catalog contains the static academic catalog: courses, terms and
// the offerings students request to enroll in.
package catalog

import (
	"fmt"
	"strings"

	"github.com/alem-hub/enrollment/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// COURSE
// ══════════════════════════════════════════════════════════════════════════════

// Course is a catalog entry. It is immutable once its prerequisites are attached.
type Course struct {
	// ID is the unique catalog identifier.
	ID string

	// Name is the unique display name used in violation messages.
	Name string

	// Units is the credit weight of the course.
	Units int

	prerequisites []*Course
}

// NewCourse creates a Course with validation.
func NewCourse(id, name string, units int) (*Course, error) {
	id = shared.NormalizeID(id)
	if id == "" {
		return nil, shared.ErrInvalidCourseID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.ErrInvalidCourseName
	}
	if units <= 0 {
		return nil, shared.WrapError("catalog", "NewCourse", shared.ErrValueOutOfRange,
			fmt.Sprintf("course %s has %d units", name, units), shared.ErrInvalidUnits)
	}

	return &Course{ID: id, Name: name, Units: units}, nil
}

// MustCourse is like NewCourse but panics on invalid input.
// Intended for catalog fixtures.
func MustCourse(id, name string, units int) *Course {
	c, err := NewCourse(id, name, units)
	if err != nil {
		panic(err)
	}
	return c
}

// WithPrerequisites attaches prerequisites in order and returns the course.
// A prerequisite already attached is skipped. A nil or self prerequisite
// breaks the catalog invariant and panics.
func (c *Course) WithPrerequisites(pre ...*Course) *Course {
	for _, p := range pre {
		if p == nil {
			panic(fmt.Sprintf("catalog: nil prerequisite for course %s", c.Name))
		}
		if p.Equal(c) {
			panic(fmt.Sprintf("catalog: course %s cannot be its own prerequisite", c.Name))
		}
		if c.HasPrerequisite(p) {
			continue
		}
		c.prerequisites = append(c.prerequisites, p)
	}
	return c
}

// Prerequisites returns the prerequisites in the order they were attached.
func (c *Course) Prerequisites() []*Course {
	out := make([]*Course, len(c.prerequisites))
	copy(out, c.prerequisites)
	return out
}

// HasPrerequisite reports whether p is a direct prerequisite of the course.
func (c *Course) HasPrerequisite(p *Course) bool {
	for _, existing := range c.prerequisites {
		if existing.Equal(p) {
			return true
		}
	}
	return false
}

// Equal compares courses by catalog ID.
func (c *Course) Equal(other *Course) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.ID == other.ID
}

// String returns the display name.
func (c *Course) String() string {
	return c.Name
}

package catalog

import (
	"fmt"
	"time"

	"github.com/alem-hub/enrollment/internal/domain/shared"
)

// DefaultSection is used when a course has a single section.
const DefaultSection = 1

// Offering is one enrollable slot of a course in the current cycle:
// the course, its exam instant and the section number.
type Offering struct {
	Course   *Course
	ExamTime time.Time
	Section  int
}

// NewOffering creates an Offering with validation.
func NewOffering(course *Course, examTime time.Time, section int) (*Offering, error) {
	if course == nil {
		return nil, shared.ErrMissingCourse
	}
	if section < 1 {
		return nil, shared.ErrInvalidSection
	}
	return &Offering{Course: course, ExamTime: examTime, Section: section}, nil
}

// MustOffering is like NewOffering but panics on invalid input.
func MustOffering(course *Course, examTime time.Time, section int) *Offering {
	o, err := NewOffering(course, examTime, section)
	if err != nil {
		panic(err)
	}
	return o
}

// SameCourse reports whether both offerings belong to the same course.
func (o *Offering) SameCourse(other *Offering) bool {
	return o.Course.Equal(other.Course)
}

// ConflictsWith reports whether the exams fall on the exact same instant.
func (o *Offering) ConflictsWith(other *Offering) bool {
	return o.ExamTime.Equal(other.ExamTime)
}

// String returns "<CourseName> - <section>".
func (o *Offering) String() string {
	return fmt.Sprintf("%s - %d", o.Course.Name, o.Section)
}

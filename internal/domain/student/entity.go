package student

import (
	"fmt"
	"strings"

	"github.com/alem-hub/enrollment/internal/domain/catalog"
	"github.com/alem-hub/enrollment/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// CourseSection is one (course, section) pair committed to the current term.
type CourseSection struct {
	Course  *catalog.Course
	Section int
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student is the aggregate the enrollment rules read and, on success, mutate.
// A Student is not safe for concurrent use; callers serialize access per student.
type Student struct {
	// ID is the unique student identifier.
	ID string

	// Name is the display name.
	Name string

	transcript  *Transcript
	currentTerm []CourseSection
}

// New creates a Student with an empty transcript and current term.
func New(id, name string) (*Student, error) {
	id = shared.NormalizeID(id)
	if id == "" {
		return nil, shared.ErrInvalidStudentID
	}

	return &Student{
		ID:         id,
		Name:       strings.TrimSpace(name),
		transcript: NewTranscript(),
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS
// ══════════════════════════════════════════════════════════════════════════════

// RecordGrade upserts a transcript record. A second grade for the same
// (term, course) pair overwrites the first. A term name keeps the units it
// was first recorded with; a different value is rejected.
func (s *Student) RecordGrade(course *catalog.Course, term catalog.Term, grade float64) error {
	if course == nil {
		return shared.NewDomainError("student", "RecordGrade", shared.ErrContractFault, "course is required")
	}
	g, err := shared.NewGrade(grade)
	if err != nil {
		return shared.WrapError("student", "RecordGrade", shared.ErrValueOutOfRange,
			fmt.Sprintf("cannot record grade for %s: %v", course.Name, err), shared.ErrInvalidGrade)
	}

	if err := s.transcript.Upsert(term, course, g); err != nil {
		return shared.WrapError("student", "RecordGrade", shared.ErrInvalidInput,
			"cannot record grade for "+course.Name, err)
	}
	return nil
}

// HasPassed reports whether any transcript entry, in any term, is a passing
// grade for the course.
func (s *Student) HasPassed(course *catalog.Course) bool {
	for _, r := range s.transcript.Records() {
		if r.Course.Equal(course) && r.Grade.IsPassing() {
			return true
		}
	}
	return false
}

// GPA returns Σ(grade × term units) / Σ(course units) over every transcript
// entry. The weight comes from the term and the divisor from the course.
// An empty transcript has no GPA and yields shared.ErrUndefinedGPA.
func (s *Student) GPA() (float64, error) {
	var (
		points float64
		units  int
	)
	for _, r := range s.transcript.Records() {
		points += r.Grade.Float64() * float64(r.Term.Units)
		units += r.Course.Units
	}
	if units == 0 {
		return 0, shared.ErrUndefinedGPA
	}
	return points / float64(units), nil
}

// Commit appends a (course, section) pair to the current term.
func (s *Student) Commit(course *catalog.Course, section int) {
	s.currentTerm = append(s.currentTerm, CourseSection{Course: course, Section: section})
}

// CurrentTerm returns the committed pairs in commit order.
func (s *Student) CurrentTerm() []CourseSection {
	out := make([]CourseSection, len(s.currentTerm))
	copy(out, s.currentTerm)
	return out
}

// HasTaken reports whether every given course is in the current term.
func (s *Student) HasTaken(courses ...*catalog.Course) bool {
	for _, c := range courses {
		found := false
		for _, cs := range s.currentTerm {
			if cs.Course.Equal(c) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Transcript returns the student's transcript records.
func (s *Student) Transcript() []Record {
	return s.transcript.Records()
}

// String returns the display name.
func (s *Student) String() string {
	return s.Name
}

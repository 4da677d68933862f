// Package student contains the student aggregate used by the enrollment rules.
//
// A Student owns two pieces of state:
//
//   - Transcript: term -> course -> grade on the 0-20 scale. A course counts
//     as passed when any entry for it, in any term, is at least 10.
//   - Current term: the (course, section) pairs committed in this cycle.
//     It only grows; there is no removal operation.
//
// # GPA
//
// The GPA weights each grade by its term's units and divides by the sum of
// course units:
//
//	gpa = Σ grade × term.Units / Σ course.Units
//
// An empty transcript has no GPA and GPA returns shared.ErrUndefinedGPA.
//
// # Example
//
//	s, err := student.New("1", "Bebe")
//	if err != nil {
//	    return err
//	}
//	_ = s.RecordGrade(phys1, catalog.MustTerm("t1", 3), 18)
//	if s.HasPassed(phys1) {
//	    // ...
//	}
package student

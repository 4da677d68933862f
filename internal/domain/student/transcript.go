package student

import (
	"fmt"

	"github.com/alem-hub/enrollment/internal/domain/catalog"
	"github.com/alem-hub/enrollment/internal/domain/shared"
)

// Record is a single transcript entry.
type Record struct {
	Term   catalog.Term
	Course *catalog.Course
	Grade  shared.Grade
}

// Transcript maps term -> course -> grade. Terms are identified by name and
// courses by ID; iteration follows first-insertion order so results are stable.
type Transcript struct {
	terms []*termGrades
	index map[string]*termGrades
}

type termGrades struct {
	term    catalog.Term
	courses []*catalog.Course
	grades  map[string]shared.Grade
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{index: make(map[string]*termGrades)}
}

// Upsert records a grade, overwriting any grade for the same (term, course).
// It fails without changes when the term name is known with other units.
func (t *Transcript) Upsert(term catalog.Term, course *catalog.Course, grade shared.Grade) error {
	tg, ok := t.index[term.Name]
	if ok && tg.term.Units != term.Units {
		return fmt.Errorf("term %s has %d units, got %d: %w",
			term.Name, tg.term.Units, term.Units, shared.ErrTermUnitsChanged)
	}
	if !ok {
		tg = &termGrades{term: term, grades: make(map[string]shared.Grade)}
		t.index[term.Name] = tg
		t.terms = append(t.terms, tg)
	}
	if _, seen := tg.grades[course.ID]; !seen {
		tg.courses = append(tg.courses, course)
	}
	tg.grades[course.ID] = grade
	return nil
}

// Records returns every entry, grouped by term.
func (t *Transcript) Records() []Record {
	out := make([]Record, 0, t.Len())
	for _, tg := range t.terms {
		for _, c := range tg.courses {
			out = append(out, Record{Term: tg.term, Course: c, Grade: tg.grades[c.ID]})
		}
	}
	return out
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	n := 0
	for _, tg := range t.terms {
		n += len(tg.courses)
	}
	return n
}

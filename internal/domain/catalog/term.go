package catalog

import (
	"fmt"
	"strings"

	"github.com/alem-hub/enrollment/internal/domain/shared"
)

// Term is a named academic period. Units is the weighting factor applied to
// grades earned in the term when computing a GPA.
type Term struct {
	Name  string
	Units int
}

// NewTerm creates a Term with validation.
func NewTerm(name string, units int) (Term, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Term{}, shared.ErrInvalidTermName
	}
	if units <= 0 {
		return Term{}, shared.WrapError("catalog", "NewTerm", shared.ErrValueOutOfRange,
			fmt.Sprintf("term %s has %d units", name, units), shared.ErrInvalidUnits)
	}
	return Term{Name: name, Units: units}, nil
}

// MustTerm is like NewTerm but panics on invalid input.
func MustTerm(name string, units int) Term {
	t, err := NewTerm(name, units)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the term name.
func (t Term) String() string {
	return t.Name
}

// Package enrollment validates a student's enrollment request against the
// academic rules and commits it when no rule is violated.
package enrollment

import (
	"fmt"
	"math"

	"github.com/alem-hub/enrollment/internal/domain/catalog"
	"github.com/alem-hub/enrollment/internal/domain/shared"
	"github.com/alem-hub/enrollment/internal/domain/student"
)

// Engine evaluates enrollment requests. It holds no per-request state and
// can be shared; callers serialize evaluations per student.
type Engine struct {
	policy Policy
}

// NewEngine creates an Engine with the given policy.
func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// Policy returns the thresholds in use.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Evaluate runs every rule against the request. All passes run in a fixed
// order and their violations accumulate. The student is mutated only when
// no violation was found, in which case every offering is committed in
// input order.
//
// The returned error is reserved for contract faults (nil student or
// offering, or a GPA that is undefined but needed); rule failures are
// reported in the Outcome.
func (e *Engine) Evaluate(s *student.Student, offerings []*catalog.Offering) (*Outcome, error) {
	if s == nil {
		return nil, shared.ErrNilStudent
	}
	for i, o := range offerings {
		if o == nil || o.Course == nil {
			return nil, shared.WrapError("enrollment", "Evaluate", shared.ErrContractFault,
				fmt.Sprintf("offering at index %d is incomplete", i), shared.ErrNilOffering)
		}
	}

	r := &request{student: s, offerings: offerings}
	r.checkAlreadyPassed()
	r.checkPrerequisites()
	r.checkDuplicates()
	r.checkExamConflicts()
	if err := r.checkUnitLoad(e.policy); err != nil {
		return nil, err
	}

	out := &Outcome{Violations: r.violations, Units: r.units()}
	if !out.Accepted() {
		return out, nil
	}

	for _, o := range offerings {
		s.Commit(o.Course, o.Section)
	}
	return out, nil
}

// request is the snapshot shared by the passes of one evaluation.
type request struct {
	student    *student.Student
	offerings  []*catalog.Offering
	violations []Violation
}

func (r *request) add(rule Rule, format string, args ...any) {
	r.violations = append(r.violations, Violation{Rule: rule, Message: fmt.Sprintf(format, args...)})
}

func (r *request) checkAlreadyPassed() {
	for _, o := range r.offerings {
		if r.student.HasPassed(o.Course) {
			r.add(RuleAlreadyPassed, "The student has already passed %s", o.Course.Name)
		}
	}
}

func (r *request) checkPrerequisites() {
	for _, o := range r.offerings {
		for _, pre := range o.Course.Prerequisites() {
			if !r.student.HasPassed(pre) {
				r.add(RulePrerequisite, "The student has not passed %s as a prerequisite of %s",
					pre.Name, o.Course.Name)
			}
		}
	}
}

// checkDuplicates visits ordered pairs, so a course requested k times
// yields k*(k-1) violations.
func (r *request) checkDuplicates() {
	for i, o := range r.offerings {
		for j, o2 := range r.offerings {
			if i == j {
				continue
			}
			if o.SameCourse(o2) {
				r.add(RuleDuplicate, "%s is requested to be taken twice", o.Course.Name)
			}
		}
	}
}

func (r *request) checkExamConflicts() {
	for i, o := range r.offerings {
		for j, o2 := range r.offerings {
			if i == j {
				continue
			}
			if o.ConflictsWith(o2) {
				r.add(RuleExamConflict, "Two offerings %s and %s have the same exam time", o, o2)
			}
		}
	}
}

// checkUnitLoad renders an undefined GPA as NaN when the absolute cap alone
// decides the outcome.
func (r *request) checkUnitLoad(p Policy) error {
	units := r.units()

	gpa, err := r.student.GPA()
	if err != nil {
		if p.needsGPA(units) {
			return shared.WrapError("enrollment", "Evaluate", shared.ErrContractFault,
				fmt.Sprintf("unit load of %d needs a GPA", units), err)
		}
		gpa = math.NaN()
	}

	if p.exceeds(gpa, units) {
		r.add(RuleUnitLoad, "Number of units (%d) requested does not match GPA of %.1f", units, gpa)
	}
	return nil
}

func (r *request) units() int {
	total := 0
	for _, o := range r.offerings {
		total += o.Course.Units
	}
	return total
}

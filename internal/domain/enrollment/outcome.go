package enrollment

// Rule identifies the validation pass that produced a violation.
type Rule string

const (
	// RuleAlreadyPassed - the requested course was already passed.
	RuleAlreadyPassed Rule = "already_passed"

	// RulePrerequisite - a prerequisite of the requested course was not passed.
	RulePrerequisite Rule = "prerequisite"

	// RuleDuplicate - the same course appears twice in the request.
	RuleDuplicate Rule = "duplicate"

	// RuleExamConflict - two requested offerings share an exam instant.
	RuleExamConflict Rule = "exam_conflict"

	// RuleUnitLoad - requested units do not fit the student's GPA.
	RuleUnitLoad Rule = "unit_load"
)

// Violation is a single rule failure.
type Violation struct {
	Rule    Rule
	Message string
}

// Outcome is the result of an evaluation: either accepted, or rejected with
// an ordered, non-empty list of violations.
type Outcome struct {
	Violations []Violation

	// Units is the total units requested, duplicates counted.
	Units int
}

// Accepted reports whether the request was committed.
func (o *Outcome) Accepted() bool {
	return len(o.Violations) == 0
}

// Messages returns the violation messages in order.
func (o *Outcome) Messages() []string {
	out := make([]string, len(o.Violations))
	for i, v := range o.Violations {
		out[i] = v.Message
	}
	return out
}

// ByRule returns the violations produced by one pass.
func (o *Outcome) ByRule(rule Rule) []Violation {
	var out []Violation
	for _, v := range o.Violations {
		if v.Rule == rule {
			out = append(out, v)
		}
	}
	return out
}

// Package shared contains common domain types, errors and events
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrContractFault marks misuse by the caller, as opposed to a rule violation.
	ErrContractFault = errors.New("contract fault")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "catalog", "student", "enrollment"
	Op      string // Operation that failed, e.g., "Evaluate", "RecordGrade"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Catalog domain errors
var (
	ErrInvalidCourseID   = NewDomainError("catalog", "NewCourse", ErrInvalidID, "course id is required")
	ErrInvalidCourseName = NewDomainError("catalog", "NewCourse", ErrEmptyValue, "course name is required")
	ErrInvalidUnits      = NewDomainError("catalog", "Validate", ErrValueOutOfRange, "units must be positive")
	ErrInvalidTermName   = NewDomainError("catalog", "NewTerm", ErrEmptyValue, "term name is required")
	ErrInvalidSection    = NewDomainError("catalog", "NewOffering", ErrValueOutOfRange, "section must be at least 1")
	ErrMissingCourse     = NewDomainError("catalog", "NewOffering", ErrContractFault, "offering requires a course")
)

// Student domain errors
var (
	ErrInvalidStudentID = NewDomainError("student", "New", ErrInvalidID, "student id is required")
	ErrInvalidGrade     = NewDomainError("student", "RecordGrade", ErrValueOutOfRange, "grade out of range")
	ErrUndefinedGPA     = NewDomainError("student", "GPA", ErrContractFault, "GPA is undefined for an empty transcript")
	ErrTermUnitsChanged = NewDomainError("student", "RecordGrade", ErrInvalidInput, "term is already recorded with different units")
)

// Enrollment domain errors
var (
	ErrNilStudent  = NewDomainError("enrollment", "Evaluate", ErrContractFault, "student is required")
	ErrNilOffering = NewDomainError("enrollment", "Evaluate", ErrContractFault, "offering is required")
)

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrValueOutOfRange)
}

// IsContractFault checks if the error signals caller misuse rather than a rule failure.
func IsContractFault(err error) bool {
	return errors.Is(err, ErrContractFault)
}

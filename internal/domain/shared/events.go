// Package shared contains common domain types, errors and events
// that are used across all domain packages.
package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types.
const (
	EventEnrollmentCommitted EventType = "enrollment.committed"
	EventEnrollmentRejected  EventType = "enrollment.rejected"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type          EventType `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	AggregateId   string    `json:"aggregate_id"`
	Version       int       `json:"version"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
		Version:     1,
	}
}

// WithCorrelationID sets the correlation ID for tracing.
func (e BaseEvent) WithCorrelationID(id string) BaseEvent {
	e.CorrelationID = id
	return e
}

// ═══════════════════════════════════════════════════════════════════════════
// Enrollment Events
// ═══════════════════════════════════════════════════════════════════════════

// EnrolledSection is the event form of one committed (course, section) pair.
type EnrolledSection struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	Section    int    `json:"section"`
}

// EnrollmentCommittedEvent is emitted when a request passed every rule and was recorded.
type EnrollmentCommittedEvent struct {
	BaseEvent
	StudentID string            `json:"student_id"`
	Sections  []EnrolledSection `json:"sections"`
	Units     int               `json:"units"`
}

// Payload implements Event interface.
func (e EnrollmentCommittedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"student_id": e.StudentID,
		"sections":   e.Sections,
		"units":      e.Units,
	}
}

// NewEnrollmentCommittedEvent creates a new EnrollmentCommittedEvent.
func NewEnrollmentCommittedEvent(studentID, correlationID string, sections []EnrolledSection, units int) EnrollmentCommittedEvent {
	return EnrollmentCommittedEvent{
		BaseEvent: NewBaseEvent(EventEnrollmentCommitted, studentID).WithCorrelationID(correlationID),
		StudentID: studentID,
		Sections:  sections,
		Units:     units,
	}
}

// EnrollmentRejectedEvent is emitted when a request produced at least one violation.
type EnrollmentRejectedEvent struct {
	BaseEvent
	StudentID  string   `json:"student_id"`
	Violations []string `json:"violations"`
}

// Payload implements Event interface.
func (e EnrollmentRejectedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"student_id": e.StudentID,
		"violations": e.Violations,
	}
}

// NewEnrollmentRejectedEvent creates a new EnrollmentRejectedEvent.
func NewEnrollmentRejectedEvent(studentID, correlationID string, violations []string) EnrollmentRejectedEvent {
	return EnrollmentRejectedEvent{
		BaseEvent:  NewBaseEvent(EventEnrollmentRejected, studentID).WithCorrelationID(correlationID),
		StudentID:  studentID,
		Violations: violations,
	}
}

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}

// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alem-hub/enrollment/internal/domain/catalog"
	"github.com/alem-hub/enrollment/internal/domain/enrollment"
	"github.com/alem-hub/enrollment/internal/domain/shared"
	"github.com/alem-hub/enrollment/internal/domain/student"
	"github.com/alem-hub/enrollment/pkg/logger"
	"github.com/alem-hub/enrollment/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENROLL STUDENT COMMAND
// Validates a request against the enrollment rules and records the offerings
// in the student's current term when every rule holds.
// ══════════════════════════════════════════════════════════════════════════════

// EnrollStudentCommand contains the data for one enrollment request.
type EnrollStudentCommand struct {
	// Student is the student requesting enrollment.
	Student *student.Student

	// Offerings are the requested offerings, in request order.
	Offerings []*catalog.Offering

	// CorrelationID for tracing. Generated when empty.
	CorrelationID string
}

// Validate validates the command.
func (c EnrollStudentCommand) Validate() error {
	if c.Student == nil {
		return errors.New("enroll_student: student is required")
	}
	for i, o := range c.Offerings {
		if o == nil {
			return fmt.Errorf("enroll_student: offering %d is nil", i)
		}
	}
	return nil
}

// EnrollStudentResult contains the result of an enrollment request.
type EnrollStudentResult struct {
	// Accepted is true when the offerings were committed.
	Accepted bool

	// StudentID is the ID of the student.
	StudentID string

	// Violations lists the rule failures in evaluation order.
	Violations []string

	// Units is the total units requested.
	Units int

	// CorrelationID identifies this request in logs and events.
	CorrelationID string

	// Events contains domain events generated.
	Events []shared.Event

	// EvaluatedAt is when the request was evaluated.
	EvaluatedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// EnrollStudentHandler handles the EnrollStudentCommand.
type EnrollStudentHandler struct {
	engine         *enrollment.Engine
	locks          *StudentLocks
	eventPublisher shared.EventPublisher
	retrier        *retry.Retrier
	log            *logger.Logger
}

// NewEnrollStudentHandler creates a new EnrollStudentHandler.
// A nil engine uses the default policy, a nil publisher disables events
// and a nil logger discards logs.
func NewEnrollStudentHandler(
	engine *enrollment.Engine,
	locks *StudentLocks,
	eventPublisher shared.EventPublisher,
	log *logger.Logger,
) *EnrollStudentHandler {
	if engine == nil {
		engine = enrollment.NewEngine(enrollment.DefaultPolicy())
	}
	if locks == nil {
		locks = NewStudentLocks()
	}
	if log == nil {
		log = logger.Nop()
	}

	log = log.With(logger.Component("enroll_student"))

	return &EnrollStudentHandler{
		engine:         engine,
		locks:          locks,
		eventPublisher: eventPublisher,
		retrier: retry.PublishRetrier(retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			log.Debug("retrying event publish", logger.Int("attempt", attempt), logger.Duration("delay", delay), logger.Err(err))
		})),
		log: log,
	}
}

// Handle executes the enroll student command.
// Rule violations are returned in the result; the error is reserved for
// invalid commands, contract faults and cancellation.
func (h *EnrollStudentHandler) Handle(ctx context.Context, cmd EnrollStudentCommand) (*EnrollStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("enroll_student: validation failed: %w: %w", shared.ErrContractFault, err)
	}

	if cmd.CorrelationID == "" {
		cmd.CorrelationID = uuid.New().String()
	}
	log := h.log.WithCorrelationID(cmd.CorrelationID).With(logger.StudentID(cmd.Student.ID))

	unlock, err := h.locks.Lock(ctx, cmd.Student.ID)
	if err != nil {
		return nil, fmt.Errorf("enroll_student: waiting for student lock: %w", err)
	}
	defer unlock()

	start := time.Now()
	outcome, err := h.engine.Evaluate(cmd.Student, cmd.Offerings)
	if err != nil {
		log.Error("enrollment evaluation failed", logger.Operation("evaluate"), logger.Err(err))
		return nil, fmt.Errorf("enroll_student: %w", err)
	}

	result := &EnrollStudentResult{
		Accepted:      outcome.Accepted(),
		StudentID:     cmd.Student.ID,
		Violations:    outcome.Messages(),
		Units:         outcome.Units,
		CorrelationID: cmd.CorrelationID,
		EvaluatedAt:   start.UTC(),
	}

	if result.Accepted {
		if log.Enabled(logger.LevelDebug) {
			for _, o := range cmd.Offerings {
				log.Debug("section committed", logger.CourseName(o.Course.Name), logger.Int("section", o.Section))
			}
		}
		result.Events = append(result.Events, shared.NewEnrollmentCommittedEvent(
			cmd.Student.ID, cmd.CorrelationID, enrolledSections(cmd.Offerings), outcome.Units))
		log.Info("enrollment committed",
			logger.Int("offerings", len(cmd.Offerings)),
			logger.Units(outcome.Units),
			logger.Latency(time.Since(start)))
	} else {
		result.Events = append(result.Events, shared.NewEnrollmentRejectedEvent(
			cmd.Student.ID, cmd.CorrelationID, result.Violations))
		log.Info("enrollment rejected",
			logger.Int("violations", len(result.Violations)),
			logger.Strings("messages", result.Violations),
			logger.Units(outcome.Units),
			logger.Latency(time.Since(start)))
	}

	// The student is already updated; a failed publish must not undo that.
	if h.eventPublisher != nil {
		for _, event := range result.Events {
			err := h.retrier.Do(ctx, func(context.Context) error {
				return h.eventPublisher.Publish(event)
			})
			if err != nil {
				log.Warn("failed to publish event",
					logger.String("event_type", string(event.EventType())),
					logger.Err(err))
			}
		}
	}

	return result, nil
}

func enrolledSections(offerings []*catalog.Offering) []shared.EnrolledSection {
	out := make([]shared.EnrolledSection, 0, len(offerings))
	for _, o := range offerings {
		out = append(out, shared.EnrolledSection{
			CourseID:   o.Course.ID,
			CourseName: o.Course.Name,
			Section:    o.Section,
		})
	}
	return out
}

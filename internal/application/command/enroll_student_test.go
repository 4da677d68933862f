package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/enrollment/internal/domain/catalog"
	"github.com/alem-hub/enrollment/internal/domain/enrollment"
	"github.com/alem-hub/enrollment/internal/domain/shared"
	"github.com/alem-hub/enrollment/internal/domain/student"
	"github.com/alem-hub/enrollment/internal/infrastructure/messaging"
)

var exam = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(shared.Event) error {
	p.calls++
	return errors.New("broker down")
}

func newStudent(t *testing.T) *student.Student {
	t.Helper()
	s, err := student.New("810197000", "Bebe")
	require.NoError(t, err)
	return s
}

func newHandler(publisher shared.EventPublisher) *EnrollStudentHandler {
	return NewEnrollStudentHandler(enrollment.NewEngine(enrollment.DefaultPolicy()), nil, publisher, nil)
}

func TestEnrollStudentHandler_Accepted(t *testing.T) {
	bus := messaging.NewInMemoryEventBus(messaging.DefaultInMemoryEventBusConfig())
	var received []shared.Event
	require.NoError(t, bus.SubscribeAll(func(e shared.Event) error {
		received = append(received, e)
		return nil
	}))

	math := catalog.MustCourse("8101001", "Maths1", 3)
	phys := catalog.MustCourse("8101002", "Phys1", 3)
	s := newStudent(t)

	result, err := newHandler(bus).Handle(context.Background(), EnrollStudentCommand{
		Student: s,
		Offerings: []*catalog.Offering{
			catalog.MustOffering(math, exam, 1),
			catalog.MustOffering(phys, exam.Add(24*time.Hour), 2),
		},
	})
	require.NoError(t, err)

	assert.True(t, result.Accepted)
	assert.Empty(t, result.Violations)
	assert.Equal(t, 6, result.Units)
	assert.NotEmpty(t, result.CorrelationID)
	assert.True(t, s.HasTaken(math, phys))

	require.Len(t, received, 1)
	ev, ok := received[0].(shared.EnrollmentCommittedEvent)
	require.True(t, ok)
	assert.Equal(t, s.ID, ev.AggregateID())
	assert.Equal(t, result.CorrelationID, ev.CorrelationID)
	assert.Equal(t, []shared.EnrolledSection{
		{CourseID: "8101001", CourseName: "Maths1", Section: 1},
		{CourseID: "8101002", CourseName: "Phys1", Section: 2},
	}, ev.Sections)
}

func TestEnrollStudentHandler_Rejected(t *testing.T) {
	bus := messaging.NewInMemoryEventBus(messaging.DefaultInMemoryEventBusConfig())
	var received []shared.Event
	require.NoError(t, bus.Subscribe(shared.EventEnrollmentRejected, func(e shared.Event) error {
		received = append(received, e)
		return nil
	}))

	math := catalog.MustCourse("8101001", "Maths1", 3)
	s := newStudent(t)

	result, err := newHandler(bus).Handle(context.Background(), EnrollStudentCommand{
		Student: s,
		Offerings: []*catalog.Offering{
			catalog.MustOffering(math, exam, 1),
			catalog.MustOffering(math, exam.Add(24*time.Hour), 2),
		},
		CorrelationID: "req-1",
	})
	require.NoError(t, err)

	assert.False(t, result.Accepted)
	assert.Equal(t, "req-1", result.CorrelationID)
	assert.Contains(t, result.Violations, "Maths1 is requested to be taken twice")
	assert.Empty(t, s.CurrentTerm())

	require.Len(t, received, 1)
	ev := received[0].(shared.EnrollmentRejectedEvent)
	assert.Equal(t, result.Violations, ev.Violations)
}

func TestEnrollStudentHandler_ContractFaults(t *testing.T) {
	h := newHandler(nil)

	_, err := h.Handle(context.Background(), EnrollStudentCommand{})
	assert.ErrorIs(t, err, shared.ErrContractFault)

	_, err = h.Handle(context.Background(), EnrollStudentCommand{
		Student:   newStudent(t),
		Offerings: []*catalog.Offering{nil},
	})
	assert.ErrorIs(t, err, shared.ErrContractFault)

	// 16 units on an empty transcript cannot be decided without a GPA.
	var offerings []*catalog.Offering
	for i, id := range []string{"1", "2", "3", "4"} {
		c := catalog.MustCourse(id, "C"+id, 4)
		offerings = append(offerings, catalog.MustOffering(c, exam.Add(time.Duration(i)*time.Hour), 1))
	}
	_, err = h.Handle(context.Background(), EnrollStudentCommand{Student: newStudent(t), Offerings: offerings})
	assert.ErrorIs(t, err, shared.ErrUndefinedGPA)
}

func TestEnrollStudentHandler_PublishFailureDoesNotFail(t *testing.T) {
	s := newStudent(t)
	c := catalog.MustCourse("8101001", "Maths1", 3)

	publisher := &failingPublisher{}
	result, err := newHandler(publisher).Handle(context.Background(), EnrollStudentCommand{
		Student:   s,
		Offerings: []*catalog.Offering{catalog.MustOffering(c, exam, 1)},
	})
	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.True(t, s.HasTaken(c))
	assert.Equal(t, 3, publisher.calls)
}

func TestEnrollStudentHandler_ClosedBusIsNotRetried(t *testing.T) {
	bus := messaging.NewInMemoryEventBus(messaging.DefaultInMemoryEventBusConfig())
	require.NoError(t, bus.Close())

	s := newStudent(t)
	c := catalog.MustCourse("8101001", "Maths1", 3)
	result, err := newHandler(bus).Handle(context.Background(), EnrollStudentCommand{
		Student:   s,
		Offerings: []*catalog.Offering{catalog.MustOffering(c, exam, 1)},
	})
	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Zero(t, bus.Metrics().Snapshot().Published[shared.EventEnrollmentCommitted])
}

func TestEnrollStudentHandler_NilEngineUsesDefaultPolicy(t *testing.T) {
	h := NewEnrollStudentHandler(nil, nil, nil, nil)

	var offerings []*catalog.Offering
	for i := 0; i < 7; i++ {
		c := catalog.MustCourse(string(rune('a'+i)), "C", 3)
		offerings = append(offerings, catalog.MustOffering(c, exam.Add(time.Duration(i)*time.Hour), 1))
	}

	result, err := h.Handle(context.Background(), EnrollStudentCommand{Student: newStudent(t), Offerings: offerings})
	require.NoError(t, err)
	assert.Equal(t, []string{"Number of units (21) requested does not match GPA of NaN"}, result.Violations)
}

func TestEnrollStudentHandler_CancelledWhileLocked(t *testing.T) {
	locks := NewStudentLocks()
	h := NewEnrollStudentHandler(enrollment.NewEngine(enrollment.DefaultPolicy()), locks, nil, nil)
	s := newStudent(t)

	unlock, err := locks.Lock(context.Background(), s.ID)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = h.Handle(ctx, EnrollStudentCommand{Student: s})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

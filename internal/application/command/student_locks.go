package command

import (
	"context"
	"sync"
)

// StudentLocks serializes work per student ID within one process.
// Waiting for a lock honours context cancellation. A student's slot is
// dropped once nobody holds or waits for it.
type StudentLocks struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

// NewStudentLocks creates an empty lock table.
func NewStudentLocks() *StudentLocks {
	return &StudentLocks{slots: make(map[string]*lockSlot)}
}

// Lock blocks until the student's lock is held or ctx is done.
// The returned function releases the lock.
func (l *StudentLocks) Lock(ctx context.Context, studentID string) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[studentID]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[studentID] = slot
	}
	slot.refs++
	l.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-slot.ch
				l.release(studentID, slot)
			})
		}, nil
	case <-ctx.Done():
		l.release(studentID, slot)
		return nil, ctx.Err()
	}
}

func (l *StudentLocks) release(studentID string, slot *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, studentID)
	}
}

// Len returns the number of students currently holding or waiting for a lock.
func (l *StudentLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

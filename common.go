package cutscene

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Usage errors. These are returned synchronously and never
// change the state of the scheduler.
var (
	ErrNilTask        = errors.New("cutscene: nil task")
	ErrAlreadyRunning = errors.New("cutscene: task is already running")
	ErrNotRunning     = errors.New("cutscene: task is not running")
	ErrNilSubroutine  = errors.New("cutscene: wait on nil subroutine")
	ErrReentrantTick  = errors.New("cutscene: Tick called from inside a task")
	ErrClockRewound   = errors.New("cutscene: tick or time went backwards")
)

// A TaskFault is returned when task code or one of its
// subroutines panics. The faulting task has already been
// removed from the scheduler by the time the fault is seen.
//
//	Note: use errors.As to get the fault out of the joined
//	error returned by Tick.
type TaskFault struct {
	Task  Task
	ID    uuid.UUID
	Phase Phase
	Err   error
}

func (f *TaskFault) Error() string {
	return fmt.Sprintf("cutscene: task %s faulted in %v phase: %v", taskName(f.Task), f.Phase, f.Err)
}

func (f *TaskFault) Unwrap() error { return f.Err }

// catchFault converts a recovered panic value into an error.
// Must be called from a deferred function.
func catchFault(dst *error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(error); ok {
		*dst = err
	} else {
		*dst = fmt.Errorf("panic: %v", r)
	}
}

// guard runs fn and turns a panic into an error.
func guard(fn func()) (err error) {
	defer catchFault(&err)
	fn()
	return nil
}

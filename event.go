package cutscene

import (
	"fmt"

	"github.com/google/uuid"
)

// EventKind identifies a task lifecycle event.
type EventKind uint8

const (
	EventStarted EventKind = iota
	EventSkipped
	EventStopped
)

// String returns the kind name, e.g. "Started".
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "Started"
	case EventSkipped:
		return "Skipped"
	case EventStopped:
		return "Stopped"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// StopReason tells why a task left the scheduler.
// It is only set on EventStopped.
type StopReason uint8

const (
	StopCompleted StopReason = iota + 1
	StopCancelled
	StopFaulted
)

// String returns the reason in lower case, or "" for no reason.
func (r StopReason) String() string {
	switch r {
	case 0:
		return ""
	case StopCompleted:
		return "completed"
	case StopCancelled:
		return "cancelled"
	case StopFaulted:
		return "faulted"
	default:
		return fmt.Sprintf("StopReason(%d)", uint8(r))
	}
}

// An Event is delivered synchronously to every listener of the
// scheduler, from inside Start, Stop, StopAll or Tick.
type Event struct {
	Kind   EventKind
	Task   Task
	ID     uuid.UUID
	Phase  Phase
	Reason StopReason

	// Err is the *TaskFault of a faulted task.
	Err error

	// Clock of the last Tick when the event fired.
	Frame int64
	Time  float64
}

// String describes the event, e.g. "Stopped intro (completed)".
func (e Event) String() string {
	if e.Kind == EventStopped {
		return fmt.Sprintf("%v %s (%v)", e.Kind, taskName(e.Task), e.Reason)
	}
	return fmt.Sprintf("%v %s", e.Kind, taskName(e.Task))
}

// TaskName returns the task's String, or its type name if it has none.
func (e Event) TaskName() string { return taskName(e.Task) }

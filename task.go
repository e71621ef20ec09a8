package cutscene

import (
	"fmt"
	"iter"
)

// A Stream is a lazy sequence of waits. Code between two yields
// runs synchronously inside Tick and must not block.
//
// Returning early when yield reports false is required: the
// scheduler closes streams of stopped and skipped tasks this way.
type Stream = iter.Seq[Wait]

// A Task supplies the three instruction streams the scheduler
// drives. Body runs first. If a global skip is granted while Body
// is running, Skip replaces it. End always runs after Body or Skip
// finishes on its own, but never after an explicit Stop.
//
// Each stream method must return a fresh sequence. A nil Stream
// behaves as an empty one.
//
//	Note: tasks are compared with ==, so implementations should be
//	pointer types.
type Task interface {
	CanSkip() bool
	Body() Stream
	Skip() Stream
	End() Stream
}

// Phase is the stream that currently drives a running task.
type Phase uint8

const (
	PhaseBody Phase = iota
	PhaseSkip
	PhaseEnd
)

// String returns "Body", "Skip" or "End".
func (p Phase) String() string {
	switch p {
	case PhaseBody:
		return "Body"
	case PhaseSkip:
		return "Skip"
	case PhaseEnd:
		return "End"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Seq returns a stream that yields the given waits in order.
func Seq(waits ...Wait) Stream {
	return func(yield func(Wait) bool) {
		for _, w := range waits {
			if !yield(w) {
				return
			}
		}
	}
}

func (p Phase) stream(task Task) Stream {
	switch p {
	case PhaseSkip:
		return task.Skip()
	case PhaseEnd:
		return task.End()
	default:
		return task.Body()
	}
}

package cutscene

import (
	"fmt"
	"time"
)

// WaitKind tells which suspension condition a Wait describes.
type WaitKind uint8

const (
	WaitImmediate WaitKind = iota
	WaitFrames
	WaitSeconds
	WaitSubroutine
)

// String returns the name of the constructor for the kind.
func (k WaitKind) String() string {
	switch k {
	case WaitImmediate:
		return "Immediate"
	case WaitFrames:
		return "Frames"
	case WaitSeconds:
		return "Seconds"
	case WaitSubroutine:
		return "OnSubroutine"
	default:
		return fmt.Sprintf("WaitKind(%d)", uint8(k))
	}
}

// A Wait is yielded by a task stream to suspend it until some
// condition holds. The condition is measured from the tick and
// time at which the Wait was yielded, not from when the scheduler
// first looks at it.
//
// The zero Wait is Immediate().
type Wait struct {
	kind    WaitKind
	frames  int64
	seconds float64
	sub     Subroutine
}

// Immediate waits exactly one tick.
func Immediate() Wait {
	return Wait{kind: WaitImmediate}
}

// Frames waits until at least n ticks have passed.
// Values below 1 are treated as 1.
func Frames(n int) Wait {
	if n < 1 {
		n = 1
	}
	return Wait{kind: WaitFrames, frames: int64(n)}
}

// Seconds waits until at least s seconds of scheduler time
// have passed. Negative values are treated as 0, which resumes
// within the same tick.
func Seconds(s float64) Wait {
	if s < 0 {
		s = 0
	}
	return Wait{kind: WaitSeconds, seconds: s}
}

// Duration is Seconds for a time.Duration.
func Duration(d time.Duration) Wait {
	return Seconds(d.Seconds())
}

// OnSubroutine waits until sub reports completion. The scheduler
// starts, updates and, if needed, stops sub on behalf of the task.
//
//	Note: panics with ErrNilSubroutine if sub is nil. Inside a task
//	stream this surfaces as a TaskFault.
func OnSubroutine(sub Subroutine) Wait {
	w, err := NewSubroutineWait(sub)
	if err != nil {
		panic(err)
	}
	return w
}

// NewSubroutineWait is OnSubroutine that returns an error
// instead of panicking.
func NewSubroutineWait(sub Subroutine) (Wait, error) {
	if sub == nil {
		return Wait{}, ErrNilSubroutine
	}
	return Wait{kind: WaitSubroutine, sub: sub}, nil
}

// Kind tells which condition the wait describes.
func (w Wait) Kind() WaitKind { return w.kind }

// Frames returns the tick count of a Frames wait.
func (w Wait) Frames() int { return int(w.frames) }

// Seconds returns the duration of a Seconds wait.
func (w Wait) Seconds() float64 { return w.seconds }

// Subroutine returns the subroutine of an OnSubroutine wait.
func (w Wait) Subroutine() Subroutine { return w.sub }

// String renders the wait as the call that built it, e.g. "Frames(3)".
func (w Wait) String() string {
	switch w.kind {
	case WaitFrames:
		return fmt.Sprintf("Frames(%d)", w.frames)
	case WaitSeconds:
		return fmt.Sprintf("Seconds(%g)", w.seconds)
	case WaitSubroutine:
		return fmt.Sprintf("OnSubroutine(%T)", w.sub)
	default:
		return w.kind.String()
	}
}

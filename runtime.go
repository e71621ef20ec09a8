package cutscene

import (
	"errors"
	"iter"

	"github.com/google/uuid"
)

type rtFlag = uint8

const (
	// wait holds a directive that has not been satisfied yet
	flagWaiting rtFlag = 1 << iota
	// Start was called on the pending subroutine
	flagSubStarted
	// stopped from its own stream code; the stream is closed
	// once control is back in Tick
	flagDetached
)

// taskRuntime is the scheduler's record for one running task.
type taskRuntime struct {
	id    uuid.UUID
	task  Task
	phase Phase

	// nil until the stream of the current phase is opened
	next func() (Wait, bool)
	stop func()

	wait       Wait
	resumeTick int64
	resumeTime float64

	flags rtFlag
}

func newTaskRuntime() *taskRuntime {
	return &taskRuntime{}
}

func (rt *taskRuntime) init(task Task) {
	rt.reset()
	rt.id = uuid.New()
	rt.task = task
	rt.phase = PhaseBody
}

func (rt *taskRuntime) reset() {
	*rt = taskRuntime{}
}

func (rt *taskRuntime) has(flag rtFlag) bool { return rt.flags&flag != 0 }
func (rt *taskRuntime) set(flag rtFlag)      { rt.flags |= flag }
func (rt *taskRuntime) unset(flag rtFlag)    { rt.flags &^= flag }

// advance drives the active stream as far as it goes this tick.
// It reports done once the End stream is exhausted. A panic from
// the stream or a subroutine is returned as err.
func (rt *taskRuntime) advance(tick int64, now float64) (done bool, err error) {
	defer catchFault(&err)

	for {
		if rt.has(flagWaiting) && !rt.ready(tick, now) {
			return false, nil
		}
		if rt.has(flagDetached) {
			return false, nil
		}
		rt.unset(flagWaiting | flagSubStarted)

		if rt.next == nil {
			rt.next, rt.stop = iter.Pull(orEmpty(rt.phase.stream(rt.task)))
		}
		w, ok := rt.next()
		if rt.has(flagDetached) {
			return false, nil
		}

		if !ok {
			rt.stop()
			rt.next, rt.stop = nil, nil
			if rt.phase == PhaseEnd {
				return true, nil
			}
			rt.phase = PhaseEnd
			continue
		}

		rt.wait = w
		rt.resumeTick = tick
		rt.resumeTime = now
		rt.set(flagWaiting)

		if w.kind == WaitImmediate {
			return false, nil
		}
	}
}

func (rt *taskRuntime) ready(tick int64, now float64) bool {
	switch rt.wait.kind {
	case WaitFrames:
		return tick-rt.resumeTick >= rt.wait.frames
	case WaitSeconds:
		return now-rt.resumeTime >= rt.wait.seconds
	case WaitSubroutine:
		sub := rt.wait.sub
		if !rt.has(flagSubStarted) {
			sub.Start()
			rt.set(flagSubStarted)
		}
		sub.Update()
		return sub.IsComplete()
	default:
		return true
	}
}

// enter switches to another phase. The new stream is opened on
// the next advance.
func (rt *taskRuntime) enter(phase Phase) error {
	err := errors.Join(rt.haltSubroutine(), rt.closeStream())
	rt.unset(flagWaiting)
	rt.phase = phase
	return err
}

// haltSubroutine stops a subroutine that was started but has not
// been seen completing.
func (rt *taskRuntime) haltSubroutine() (err error) {
	if !rt.has(flagSubStarted) {
		return nil
	}
	rt.unset(flagSubStarted)
	defer catchFault(&err)
	rt.wait.sub.Stop()
	return nil
}

func (rt *taskRuntime) closeStream() (err error) {
	stop := rt.stop
	rt.next, rt.stop = nil, nil
	if stop == nil {
		return nil
	}
	defer catchFault(&err)
	stop()
	return nil
}

// teardown releases everything the runtime holds on to.
func (rt *taskRuntime) teardown() error {
	return errors.Join(rt.haltSubroutine(), rt.closeStream())
}

func (rt *taskRuntime) canSkip() (skippable bool, err error) {
	err = guard(func() { skippable = rt.task.CanSkip() })
	return skippable, err
}

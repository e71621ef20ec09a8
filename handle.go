package cutscene

import (
	"github.com/google/uuid"
)

// A Handle refers to one run of a task. Once the run is over the
// handle stays stale, even if the same task is started again.
type Handle struct {
	id    uuid.UUID
	task  Task
	sched *Scheduler
}

// ID identifies this run. Each Start gets a new one.
func (h *Handle) ID() uuid.UUID { return h.id }

// Task returns the task that was started.
func (h *Handle) Task() Task { return h.task }

// IsRunning reports whether this run is still registered.
func (h *Handle) IsRunning() bool {
	return h.runtime() != nil
}

// Phase returns the current phase, or false if the run is over.
func (h *Handle) Phase() (Phase, bool) {
	if rt := h.runtime(); rt != nil {
		return rt.phase, true
	}
	return 0, false
}

// Stop stops this run. Returns ErrNotRunning if it is over.
func (h *Handle) Stop() error {
	i := h.sched.running.find(h.task)
	if i < 0 || h.sched.running.at(i).id != h.id {
		return ErrNotRunning
	}
	return h.sched.cancel(i)
}

func (h *Handle) runtime() *taskRuntime {
	rt := h.sched.running.lookup(h.task)
	if rt == nil || rt.id != h.id {
		return nil
	}
	return rt
}

package cutscene

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// A Scheduler runs tasks cooperatively. It is driven by calling
// Tick once per frame from a single goroutine, typically the
// game loop:
//
//	sched := cutscene.New()
//	sched.Start(intro)
//	for frame := int64(0); ; frame++ {
//		if err := sched.Tick(frame, clock.Seconds()); err != nil {
//			log.Println(err)
//		}
//		...
//	}
//
// Task code runs inside Tick and may call Start, Stop, StopAll,
// RequestSkipAll and SkipAll on the same scheduler.
//
//	Note: a Scheduler is not concurrent-safe.
type Scheduler struct {
	running   registry
	listeners []*listener
	logger    *slog.Logger

	// tick bookkeeping, see remove
	current     *taskRuntime
	cursor      int
	end         int
	ticking     bool
	skipPending bool

	clocked bool
	frame   int64
	now     float64
}

type listener struct {
	fn func(Event)
}

// An Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for lifecycle and fault logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithListener subscribes fn to every lifecycle event.
func WithListener(fn func(Event)) Option {
	return func(s *Scheduler) {
		s.Subscribe(fn)
	}
}

// New creates an empty scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{logger: defaultLogger.Load()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "cutscene")
	return s
}

// Start registers task in Body phase. The task does not run
// until the next call to Tick.
func (s *Scheduler) Start(task Task) (*Handle, error) {
	if task == nil {
		return nil, ErrNilTask
	}
	if s.running.find(task) >= 0 {
		return nil, ErrAlreadyRunning
	}

	rt := allocRuntime()
	rt.init(task)
	s.running.add(rt)

	s.logger.Debug("task started", "task", taskName(task), "id", rt.id)
	s.emit(s.event(rt, EventStarted, 0, nil))

	return &Handle{id: rt.id, task: task, sched: s}, nil
}

// IsRunning reports whether task is registered, in any phase.
func (s *Scheduler) IsRunning(task Task) bool {
	return s.running.find(task) >= 0
}

// Phase returns the phase of a running task.
func (s *Scheduler) Phase(task Task) (Phase, bool) {
	if rt := s.running.lookup(task); rt != nil {
		return rt.phase, true
	}
	return 0, false
}

// Len returns the number of running tasks.
func (s *Scheduler) Len() int { return s.running.len() }

// Frame returns the tick passed to the last call to Tick.
func (s *Scheduler) Frame() int64 { return s.frame }

// Now returns the time passed to the last call to Tick.
func (s *Scheduler) Now() float64 { return s.now }

// CanSkipAll reports whether at least one task is running and
// every running task can be skipped.
func (s *Scheduler) CanSkipAll() bool {
	if s.running.len() == 0 {
		return false
	}
	for _, rt := range s.running.items {
		if !rt.task.CanSkip() {
			return false
		}
	}
	return true
}

// RequestSkipAll asks for every skippable task still in Body
// phase to switch to its Skip stream on the next Tick. Each of
// them advances once more before it is switched.
func (s *Scheduler) RequestSkipAll() {
	s.skipPending = true
}

// SkipAll requests a skip if CanSkipAll allows it.
func (s *Scheduler) SkipAll() bool {
	if !s.CanSkipAll() {
		return false
	}
	s.RequestSkipAll()
	return true
}

// Stop removes task right away, without running its End stream.
// A subroutine the task was waiting on is stopped first.
// Returns ErrNotRunning if the task is not running.
func (s *Scheduler) Stop(task Task) error {
	i := s.running.find(task)
	if i < 0 {
		return ErrNotRunning
	}
	return s.cancel(i)
}

// StopAll stops every running task.
func (s *Scheduler) StopAll() error {
	var errs []error
	for s.running.len() > 0 {
		errs = append(errs, s.cancel(0))
	}
	return errors.Join(errs...)
}

// Subscribe adds a listener for lifecycle events. Call the
// returned function to remove it.
func (s *Scheduler) Subscribe(fn func(Event)) (cancel func()) {
	l := &listener{fn: fn}
	s.listeners = append(s.listeners, l)
	return func() {
		// copy so that an emit in progress keeps its view
		s.listeners = slices.DeleteFunc(slices.Clone(s.listeners), func(other *listener) bool {
			return other == l
		})
	}
}

// Tick advances every task that was running when Tick was called,
// in start order. Tasks started during the tick wait for the next
// one. Faults are collected and returned after all tasks were
// serviced; use errors.As with *TaskFault to inspect them.
//
// tick and now must not decrease between calls.
func (s *Scheduler) Tick(tick int64, now float64) error {
	if s.ticking {
		return ErrReentrantTick
	}
	if s.clocked && (tick < s.frame || now < s.now) {
		return ErrClockRewound
	}
	s.clocked = true
	s.frame, s.now = tick, now

	s.ticking = true
	defer s.endTick()

	var faults []error
	s.end = s.running.len()
	for s.cursor = 0; s.cursor < s.end; s.cursor++ {
		rt := s.running.at(s.cursor)

		s.current = rt
		if fault := s.service(rt, tick, now); fault != nil {
			faults = append(faults, fault)
		}
		s.current = nil
	}

	return errors.Join(faults...)
}

// service advances rt and handles whatever that led to. rt is
// s.current throughout, so a task stopped from its own code,
// CanSkip or subroutine Stop is detached rather than freed.
func (s *Scheduler) service(rt *taskRuntime, tick int64, now float64) error {
	done, err := rt.advance(tick, now)

	switch {
	case rt.has(flagDetached):
		return s.release(rt, err)
	case err != nil:
		return s.finish(rt, StopFaulted, err)
	case done:
		return s.finish(rt, StopCompleted, nil)
	case s.skipPending && rt.phase == PhaseBody:
		err := s.skip(rt)
		if rt.has(flagDetached) {
			return s.release(rt, err)
		}
		if err != nil {
			return s.finish(rt, StopFaulted, err)
		}
	}
	return nil
}

// release frees a detached runtime. Its Stopped event was
// already emitted by cancel.
func (s *Scheduler) release(rt *taskRuntime, err error) error {
	fault := s.fault(rt, errors.Join(err, rt.teardown()))
	freeRuntime(rt)
	return fault
}

func (s *Scheduler) endTick() {
	s.ticking = false
	s.current = nil
	s.cursor, s.end = 0, 0
	s.skipPending = false
}

func (s *Scheduler) skip(rt *taskRuntime) error {
	skippable, err := rt.canSkip()
	if err != nil || !skippable || rt.has(flagDetached) {
		return err
	}
	if err := rt.enter(PhaseSkip); err != nil || rt.has(flagDetached) {
		return err
	}
	s.logger.Debug("task skipped", "task", taskName(rt.task), "id", rt.id)
	s.emit(s.event(rt, EventSkipped, 0, nil))
	return nil
}

// finish removes a task that completed or faulted during Tick.
func (s *Scheduler) finish(rt *taskRuntime, reason StopReason, err error) error {
	if terr := rt.teardown(); terr != nil {
		err = errors.Join(err, terr)
	}
	if rt.has(flagDetached) {
		// stopped by its own subroutine's Stop
		return s.release(rt, err)
	}
	s.remove(s.running.indexOf(rt))
	fault := s.fault(rt, err)
	if fault != nil {
		reason = StopFaulted
	}

	s.logger.Debug("task stopped", "task", taskName(rt.task), "id", rt.id, "reason", reason)
	s.emit(s.event(rt, EventStopped, reason, fault))
	freeRuntime(rt)
	return fault
}

// cancel removes the task at index i on request.
func (s *Scheduler) cancel(i int) error {
	rt := s.running.at(i)
	task, id, phase := rt.task, rt.id, rt.phase

	// Stop may call back into the scheduler and move or remove rt
	err := rt.haltSubroutine()
	if i = s.running.indexOf(rt); i < 0 || rt.id != id {
		return s.newFault(task, id, phase, err)
	}
	s.remove(i)

	s.logger.Debug("task stopped", "task", taskName(rt.task), "id", rt.id, "reason", StopCancelled)
	s.emit(s.event(rt, EventStopped, StopCancelled, nil))

	if rt == s.current {
		// being serviced by Tick, which releases it
		rt.set(flagDetached)
		return s.fault(rt, err)
	}

	err = errors.Join(err, rt.closeStream())
	fault := s.fault(rt, err)
	freeRuntime(rt)
	return fault
}

// remove unregisters index i, keeping the tick cursor on the
// same task and the end bound on the same set of tasks.
func (s *Scheduler) remove(i int) {
	s.running.removeAt(i)
	if !s.ticking {
		return
	}
	if i < s.end {
		s.end--
	}
	if i <= s.cursor {
		s.cursor--
	}
}

func (s *Scheduler) fault(rt *taskRuntime, err error) error {
	return s.newFault(rt.task, rt.id, rt.phase, err)
}

func (s *Scheduler) newFault(task Task, id uuid.UUID, phase Phase, err error) error {
	if err == nil {
		return nil
	}
	s.logger.Error("task fault", "task", taskName(task), "id", id, "phase", phase, "error", err)
	return &TaskFault{Task: task, ID: id, Phase: phase, Err: err}
}

func (s *Scheduler) event(rt *taskRuntime, kind EventKind, reason StopReason, err error) Event {
	return Event{
		Kind:   kind,
		Task:   rt.task,
		ID:     rt.id,
		Phase:  rt.phase,
		Reason: reason,
		Err:    err,
		Frame:  s.frame,
		Time:   s.now,
	}
}

func (s *Scheduler) emit(e Event) {
	for _, l := range s.listeners {
		l.fn(e)
	}
}

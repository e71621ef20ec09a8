package cutscene

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// A Tween is a Subroutine that eases a value from one number to
// another over scheduler time, completing when the duration is
// over. Pass the scheduler's Now as clock:
//
//	fade := cutscene.NewTween(0, 1, 0.5, ease.OutQuad, sched.Now, func(v float32) {
//		overlay.Alpha = float64(v)
//	})
//	if !yield(cutscene.OnSubroutine(fade)) {
//		return
//	}
//
// Stopping a Tween leaves the value where it was.
type Tween struct {
	tween *gween.Tween
	to    float32
	clock func() float64
	apply func(float32)

	startedAt float64
	value     float32
	done      bool
}

// NewTween creates a Tween of the given duration in seconds.
// A nil easing is linear. apply may be nil.
func NewTween(from, to, seconds float32, easing ease.TweenFunc, clock func() float64, apply func(float32)) *Tween {
	if easing == nil {
		easing = ease.Linear
	}
	return &Tween{
		tween: gween.New(from, to, seconds, easing),
		to:    to,
		clock: clock,
		apply: apply,
		value: from,
	}
}

// Start resets the tween and records the start time.
func (t *Tween) Start() {
	t.startedAt = t.clock()
	t.done = false
	t.tween.Reset()
}

// Update moves the value to where it should be at the current
// clock time and passes it to apply.
func (t *Tween) Update() {
	if t.done {
		return
	}
	value, finished := t.tween.Set(float32(t.clock() - t.startedAt))
	if finished {
		// gween reports the start value for zero-length tweens
		value = t.to
	}
	t.value, t.done = value, finished
	if t.apply != nil {
		t.apply(value)
	}
}

func (t *Tween) Stop()            {}
func (t *Tween) IsComplete() bool { return t.done }

// Value returns the last value written.
func (t *Tween) Value() float32 { return t.value }

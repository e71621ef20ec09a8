package cutscene

import (
	bits "github.com/nvlled/cutscene/atombits"
	"github.com/nvlled/quest"
)

// An Anticipator blocks until an external operation settles.
// ok is false when the operation was cancelled. Tasks from
// github.com/nvlled/quest satisfy it.
type Anticipator[T any] interface {
	Anticipate() (value T, ok bool)
}

const (
	awaitStarted uint32 = 1 << iota
	awaitSettled
)

// AwaitSubroutine completes once its operation settles,
// either resolved or cancelled.
type AwaitSubroutine[T any] struct {
	op    Anticipator[T]
	state bits.T
	value T
	ok    bool
}

// Await wraps op as a Subroutine. The blocking Anticipate call
// runs on its own goroutine once the subroutine is started; the
// scheduler only polls for the result.
//
//	load := quest.AllocTask[*Level]()
//	go func() { load.Resolve(readLevel(name)) }()
//	wait := cutscene.Await[*Level](load)
//	if !yield(cutscene.OnSubroutine(wait)) {
//		return
//	}
//	level, ok := wait.Result()
//
//	Note: Stop cancels op if it is Cancellable. Otherwise the
//	goroutine stays blocked until op settles on its own.
func Await[T any](op Anticipator[T]) *AwaitSubroutine[T] {
	return &AwaitSubroutine[T]{op: op}
}

// Start begins waiting on the operation. Only the first call counts.
func (a *AwaitSubroutine[T]) Start() {
	if bits.Swap(&a.state, awaitStarted) {
		return
	}
	go func() {
		value, ok := a.op.Anticipate()
		a.value, a.ok = value, ok
		bits.Set(&a.state, awaitSettled)
	}()
}

func (a *AwaitSubroutine[T]) Update() {}

// Stop cancels the operation if it has not settled yet.
func (a *AwaitSubroutine[T]) Stop() {
	if bits.IsSet(&a.state, awaitSettled) {
		return
	}
	if c, ok := a.op.(Cancellable); ok {
		c.Cancel()
	}
}

// IsComplete reports whether the operation has settled.
func (a *AwaitSubroutine[T]) IsComplete() bool {
	return bits.IsSet(&a.state, awaitSettled)
}

// Result returns the settled value. ok is false while pending
// or when the operation was cancelled.
func (a *AwaitSubroutine[T]) Result() (value T, ok bool) {
	if !a.IsComplete() {
		return value, false
	}
	return a.value, a.ok
}

// Spawn runs fn on a new goroutine right away and returns a
// Subroutine that completes with its result. Stopping the
// subroutine discards the result; fn itself keeps running.
//
//	load := cutscene.Spawn(func() *Level { return readLevel(name) })
//	if !yield(cutscene.OnSubroutine(load)) {
//		return
//	}
//	level, _ := load.Result()
//
//	Note: fn must not touch the scheduler or anything task code
//	uses without synchronization.
func Spawn[T any](fn func() T) *AwaitSubroutine[T] {
	op := quest.AllocTask[T]()
	go func() { op.Resolve(fn()) }()
	return Await[T](op)
}

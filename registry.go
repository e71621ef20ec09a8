package cutscene

import (
	"golang.org/x/exp/slices"
)

// registry keeps running tasks in start order.
// Not concurrent-safe; only the scheduler touches it.
type registry struct {
	items []*taskRuntime
}

func (r *registry) add(rt *taskRuntime) {
	r.items = append(r.items, rt)
}

func (r *registry) find(task Task) int {
	return slices.IndexFunc(r.items, func(rt *taskRuntime) bool {
		return rt.task == task
	})
}

func (r *registry) indexOf(rt *taskRuntime) int {
	return slices.Index(r.items, rt)
}

func (r *registry) lookup(task Task) *taskRuntime {
	if i := r.find(task); i >= 0 {
		return r.items[i]
	}
	return nil
}

func (r *registry) removeAt(i int) {
	r.items = slices.Delete(r.items, i, i+1)
}

func (r *registry) at(i int) *taskRuntime { return r.items[i] }
func (r *registry) len() int              { return len(r.items) }

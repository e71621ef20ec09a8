package cutscene

import (
	"sync"

	"github.com/nvlled/mud"
)

// Runtime records are recycled across all schedulers.
// mud pools are not concurrent-safe, hence the lock.
var (
	runtimePool   = mud.NewPool()
	runtimePoolMu sync.Mutex
)

func init() {
	PreAllocRuntimes(8)
}

// PreAllocRuntimes fills the runtime pool with count records,
// for games that start many tasks on the same frame.
func PreAllocRuntimes(count int) {
	runtimePoolMu.Lock()
	defer runtimePoolMu.Unlock()
	mud.PreAlloc(runtimePool, newTaskRuntime, count)
}

func allocRuntime() *taskRuntime {
	runtimePoolMu.Lock()
	defer runtimePoolMu.Unlock()
	return mud.Alloc(runtimePool, newTaskRuntime)
}

func freeRuntime(rt *taskRuntime) {
	rt.reset()
	runtimePoolMu.Lock()
	defer runtimePoolMu.Unlock()
	mud.Free(runtimePool, rt)
}

package cutscene_test

import (
	"testing"
	"time"

	"github.com/nvlled/cutscene"
	"github.com/nvlled/quest"
)

func tickUntil(sched *cutscene.Scheduler, done func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for frame := int64(0); time.Now().Before(deadline); frame++ {
		sched.Tick(frame, float64(frame)/60)
		if done() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

func TestAwait(t *testing.T) {
	load := quest.AllocTask[int]()
	defer quest.FreeTask(load)

	wait := cutscene.Await[int](load)
	got := 0
	sched := cutscene.New()
	task := &cutscene.Script{Steps: func(yield func(cutscene.Wait) bool) {
		if !yield(cutscene.OnSubroutine(wait)) {
			return
		}
		got, _ = wait.Result()
	}}
	sched.Start(task)

	sched.Tick(0, 0)
	if _, ok := wait.Result(); ok {
		t.Error("result available before resolve")
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		load.Resolve(42)
	}()

	if !tickUntil(sched, func() bool { return !sched.IsRunning(task) }) {
		t.Fatal("task did not finish")
	}
	if got != 42 {
		t.Error("expected 42, got", got)
	}
}

func TestAwaitCancelledOnStop(t *testing.T) {
	load := quest.AllocTask[string]()
	defer quest.FreeTask(load)

	wait := cutscene.Await[string](load)
	sched := cutscene.New()
	task := &cutscene.Script{Steps: cutscene.Seq(cutscene.OnSubroutine(wait))}
	sched.Start(task)
	sched.Tick(0, 0)

	if err := sched.Stop(task); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !wait.IsComplete() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !wait.IsComplete() {
		t.Fatal("cancelled operation did not settle")
	}
	if _, ok := wait.Result(); ok {
		t.Error("cancelled operation should have no result")
	}
}

func TestSpawn(t *testing.T) {
	load := cutscene.Spawn(func() string { return "level-1" })
	got := ""
	sched := cutscene.New()
	task := &cutscene.Script{Steps: func(yield func(cutscene.Wait) bool) {
		if !yield(cutscene.OnSubroutine(load)) {
			return
		}
		got, _ = load.Result()
	}}
	sched.Start(task)

	if !tickUntil(sched, func() bool { return !sched.IsRunning(task) }) {
		t.Fatal("task did not finish")
	}
	if got != "level-1" {
		t.Errorf("expected level-1, got %q", got)
	}
}

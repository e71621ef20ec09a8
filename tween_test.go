package cutscene_test

import (
	"testing"

	"github.com/nvlled/cutscene"
	"github.com/tanema/gween/ease"
)

func TestTween(t *testing.T) {
	now := 0.0
	var applied []float32
	tween := cutscene.NewTween(0, 10, 2, ease.Linear, func() float64 { return now }, func(v float32) {
		applied = append(applied, v)
	})

	tween.Start()
	now = 1
	tween.Update()
	if tween.Value() != 5 {
		t.Error("expected 5 halfway, got", tween.Value())
	}
	if tween.IsComplete() {
		t.Error("tween completed too early")
	}

	now = 2.5
	tween.Update()
	if !tween.IsComplete() || tween.Value() != 10 {
		t.Error("tween should end on its target, got", tween.Value())
	}
	if len(applied) != 2 {
		t.Error("apply should be called on each update, got", applied)
	}
}

func TestTweenZeroLength(t *testing.T) {
	tween := cutscene.NewTween(3, 7, 0, nil, func() float64 { return 0 }, nil)
	tween.Start()
	tween.Update()
	if !tween.IsComplete() || tween.Value() != 7 {
		t.Error("zero-length tween should jump to its target, got", tween.Value())
	}
}

func TestTweenInScheduler(t *testing.T) {
	sched := cutscene.New()
	var alpha float32
	fade := cutscene.NewTween(0, 1, 1, nil, sched.Now, func(v float32) { alpha = v })
	task := &cutscene.Script{Steps: cutscene.Seq(cutscene.OnSubroutine(fade))}
	sched.Start(task)

	for frame := int64(0); frame <= 4; frame++ {
		sched.Tick(frame, float64(frame)*0.25)
	}
	if alpha != 1 {
		t.Error("fade should reach 1, got", alpha)
	}
	if sched.IsRunning(task) {
		t.Error("task should complete with the tween")
	}
}

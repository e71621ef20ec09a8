package demo

import (
	"strings"
	"testing"

	"github.com/nvlled/cutscene"
)

func run(t *testing.T, sched *cutscene.Scheduler, before func(int64)) {
	t.Helper()
	for frame := int64(0); frame < 1000; frame++ {
		if sched.Len() == 0 {
			return
		}
		if before != nil {
			before(frame)
		}
		if err := sched.Tick(frame, float64(frame)/60); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
	}
	t.Fatal("scenes did not finish")
}

func TestPlay(t *testing.T) {
	sched := cutscene.New()
	stage := &Stage{}
	if err := Play(sched, stage); err != nil {
		t.Fatal(err)
	}
	run(t, sched, nil)

	expected := []string{
		"[intro] fade in",
		"[loading] start",
		"[intro] title card",
		"[loading] ready",
		"[intro] done",
		dialogue[0],
		dialogue[1],
		dialogue[2],
		"[dialogue] done",
	}
	if got := strings.Join(stage.Lines, "\n"); got != strings.Join(expected, "\n") {
		t.Errorf("got lines:\n%s\n\nexpected:\n%s", got, strings.Join(expected, "\n"))
	}
	if stage.CameraX != 100 || stage.Progress != 1 {
		t.Errorf("camera=%v progress=%v", stage.CameraX, stage.Progress)
	}
}

func TestSkipWaitsForLoading(t *testing.T) {
	sched := cutscene.New()
	stage := &Stage{}
	Play(sched, stage)
	run(t, sched, SkipFrom(sched, 10))

	expected := []string{
		"[intro] fade in",
		"[loading] start",
		"[intro] title card",
		"[loading] ready",
		"[intro] skipped",
		"[intro] done",
		dialogue[0],
		dialogue[1],
		dialogue[2],
		"[dialogue] done",
	}
	if got := strings.Join(stage.Lines, "\n"); got != strings.Join(expected, "\n") {
		t.Errorf("got lines:\n%s\n\nexpected:\n%s", got, strings.Join(expected, "\n"))
	}
	if stage.CameraX != 100 {
		t.Errorf("skipped pan should snap the camera, got %v", stage.CameraX)
	}
}

func TestSkipNever(t *testing.T) {
	sched := cutscene.New()
	count := 0
	task := &cutscene.Script{Skippable: true, Steps: func(yield func(cutscene.Wait) bool) {
		for yield(cutscene.Immediate()) {
			count++
		}
	}}
	sched.Start(task)
	hook := SkipFrom(sched, -1)
	for frame := int64(0); frame < 5; frame++ {
		hook(frame)
		sched.Tick(frame, float64(frame))
	}
	if phase, _ := sched.Phase(task); phase != cutscene.PhaseBody {
		t.Errorf("phase = %v, want Body", phase)
	}
	if count != 4 {
		t.Errorf("task should never be skipped, got %d steps", count)
	}
}

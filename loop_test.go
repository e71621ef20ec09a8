package cutscene_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nvlled/cutscene"
)

func TestLoopStopWhenIdle(t *testing.T) {
	sched := cutscene.New()
	task := &cutscene.Script{Steps: cutscene.Seq(cutscene.Frames(3))}
	sched.Start(task)

	ticks := 0
	loop := &cutscene.Loop{
		Scheduler:    sched,
		FPS:          1000,
		StopWhenIdle: true,
		OnTick:       func(int64, time.Duration, error) { ticks++ },
	}
	if err := loop.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	// yield at 0, resume and finish at 3
	if ticks != 4 {
		t.Error("expected 4 ticks, got", ticks)
	}
	if sched.Frame() != 3 {
		t.Error("wrong last frame", sched.Frame())
	}
}

func TestLoopFixedStep(t *testing.T) {
	sched := cutscene.New()
	loop := &cutscene.Loop{Scheduler: sched, FPS: 500, MaxFrames: 5}
	if err := loop.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if sched.Frame() != 4 || sched.Now() != 4.0/500 {
		t.Error("unexpected clock", sched.Frame(), sched.Now())
	}
}

func TestLoopSkip(t *testing.T) {
	count := 0
	sched := cutscene.New()
	task := &cutscene.Script{Skippable: true, Steps: forever(&count)}
	sched.Start(task)

	loop := &cutscene.Loop{
		Scheduler:    sched,
		FPS:          1000,
		StopWhenIdle: true,
		MaxFrames:    100,
		BeforeTick: func(frame int64) {
			if frame == 2 {
				sched.SkipAll()
			}
		},
	}
	if err := loop.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if sched.IsRunning(task) {
		t.Error("skipped task should have finished")
	}
	if count != 3 {
		t.Error("expected 3 body steps, got", count)
	}
}

func TestLoopCancel(t *testing.T) {
	count := 0
	sched := cutscene.New()
	sched.Start(&cutscene.Script{Steps: forever(&count)})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := (&cutscene.Loop{Scheduler: sched, FPS: 200}).Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected deadline error, got", err)
	}
	if count == 0 {
		t.Error("loop never ticked")
	}
}

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/nvlled/cutscene"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	sched := cutscene.New(cutscene.WithListener(c.Observe))

	a := &cutscene.Script{Name: "a", Skippable: true, Steps: cutscene.Seq(cutscene.Frames(5))}
	b := &cutscene.Script{Name: "b", Skippable: true, Steps: cutscene.Seq(cutscene.Frames(5))}
	sched.Start(a)
	sched.Start(b)

	if got := testutil.ToFloat64(c.TasksActive); got != 2 {
		t.Errorf("tasks_active = %v, want 2", got)
	}

	sched.Tick(0, 0)
	sched.SkipAll()
	sched.Tick(1, 0.1)
	sched.Stop(b)
	sched.Tick(2, 0.2)

	if got := testutil.ToFloat64(c.TasksStarted); got != 2 {
		t.Errorf("tasks_started_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.TasksSkipped); got != 2 {
		t.Errorf("tasks_skipped_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.TasksStopped.WithLabelValues("completed")); got != 1 {
		t.Errorf("completed = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.TasksStopped.WithLabelValues("cancelled")); got != 1 {
		t.Errorf("cancelled = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.TasksActive); got != 0 {
		t.Errorf("tasks_active = %v, want 0", got)
	}
}

func TestCollectorObserveTick(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveTick(0, time.Millisecond, nil)
	c.ObserveTick(1, 2*time.Millisecond, errors.New("fault"))

	if got := testutil.ToFloat64(c.Ticks); got != 2 {
		t.Errorf("ticks_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.TickErrors); got != 1 {
		t.Errorf("tick_errors_total = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(c.TickDuration); n != 1 {
		t.Errorf("tick_duration_seconds series = %d, want 1", n)
	}
}

func TestCollectorRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.TasksStopped.WithLabelValues("faulted")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	expected := []string{
		"cutscene_tasks_active",
		"cutscene_tasks_started_total",
		"cutscene_tasks_skipped_total",
		"cutscene_tasks_stopped_total",
		"cutscene_ticks_total",
		"cutscene_tick_duration_seconds",
		"cutscene_tick_errors_total",
	}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("metric %q not found", name)
		}
	}
}

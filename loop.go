package cutscene

import (
	"context"
	"log/slog"
	"time"
)

// DefaultFPS is the tick rate of a Loop with no FPS set.
const DefaultFPS = 60

// A Loop drives a scheduler at a fixed rate, for tools and
// servers that have no game loop of their own. Scheduler time
// advances by exactly 1/FPS per tick, so runs are reproducible
// regardless of how late the ticker fires.
type Loop struct {
	Scheduler *Scheduler
	FPS       int

	// StopWhenIdle ends Run once no task is running.
	StopWhenIdle bool

	// MaxFrames ends Run after that many ticks. Zero means no limit.
	MaxFrames int64

	// BeforeTick is called before each Tick, e.g. to feed input
	// or request a skip.
	BeforeTick func(frame int64)

	// OnTick is called after each Tick with its wall time and error.
	OnTick func(frame int64, elapsed time.Duration, err error)

	Logger *slog.Logger
}

// Run ticks until the context is done, the scheduler is idle
// (with StopWhenIdle), or MaxFrames is reached. Tick errors are
// logged and do not end the loop.
func (l *Loop) Run(ctx context.Context) error {
	fps := l.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	logger := l.Logger
	if logger == nil {
		logger = defaultLogger.Load()
	}
	logger = logger.With("component", "loop")

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	logger.Info("loop started", "fps", fps)
	for frame := int64(0); ; frame++ {
		if l.MaxFrames > 0 && frame >= l.MaxFrames {
			logger.Info("loop stopping (max frames)", "frame", frame)
			return nil
		}
		if l.StopWhenIdle && l.Scheduler.Len() == 0 {
			logger.Info("loop stopping (idle)", "frame", frame)
			return nil
		}

		if l.BeforeTick != nil {
			l.BeforeTick(frame)
		}
		start := time.Now()
		err := l.Scheduler.Tick(frame, float64(frame)/float64(fps))
		if err != nil {
			logger.Error("tick error", "frame", frame, "error", err)
		}
		if l.OnTick != nil {
			l.OnTick(frame, time.Since(start), err)
		}

		select {
		case <-ctx.Done():
			logger.Info("loop stopping (context cancelled)", "frame", frame)
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/nvlled/cutscene"
	"github.com/nvlled/cutscene/internal/config"
	"github.com/nvlled/cutscene/internal/demo"
	"github.com/nvlled/cutscene/internal/journal"
	"github.com/nvlled/cutscene/internal/logging"
	"github.com/nvlled/cutscene/internal/server"
	"github.com/nvlled/cutscene/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	runConfigPath  string
	runFPS         int
	runSkipAt      int64
	runMaxFrames   int64
	runJournalPath string
	runMetricsAddr string
	runLogLevel    string
)

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "cutscene.toml", "Config file")
	runCmd.Flags().IntVar(&runFPS, "fps", 0, "Ticks per second (overrides config)")
	runCmd.Flags().Int64Var(&runSkipAt, "skip-at", -1, "Request a global skip from this frame on")
	runCmd.Flags().Int64Var(&runMaxFrames, "max-frames", 0, "Stop after this many frames")
	runCmd.Flags().StringVar(&runJournalPath, "journal", "", "Record events to this SQLite file")
	runCmd.Flags().StringVar(&runMetricsAddr, "metrics-addr", "", "Serve /metrics on this address")
	runCmd.Flags().StringVar(&runLogLevel, "log-level", "", "debug, info, warn, error or off")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play the demo scenes",
	Long: `Play the demo scenes at a fixed frame rate until they finish.

Examples:
  cutscene run
  cutscene run --skip-at 30
  cutscene run --journal events.db --metrics-addr :9100`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(runConfigPath)
	if err != nil {
		return err
	}
	applyRunFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	opts := []cutscene.Option{
		cutscene.WithLogger(logger),
		cutscene.WithListener(collector.Observe),
	}

	if cfg.Journal.Path != "" {
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer j.Close()
		opts = append(opts, cutscene.WithListener(j.Listener(func(err error) {
			logger.Warn("journal write failed", "error", err)
		})))
	}

	sched := cutscene.New(opts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// snapshot for /status; the scheduler itself stays on the loop goroutine
	var lastFrame, running atomic.Int64
	running.Store(int64(sched.Len()))

	if cfg.Metrics.Addr != "" {
		srv := server.New(cfg.Metrics.Addr, reg, logger)
		srv.Status = func() any {
			return map[string]int64{"running": running.Load(), "frame": lastFrame.Load()}
		}
		srvCtx, cancelSrv := context.WithCancel(ctx)
		srvDone := make(chan error, 1)
		go func() { srvDone <- srv.Run(srvCtx) }()
		defer func() {
			cancelSrv()
			if err := <-srvDone; err != nil {
				logger.Error("metrics server", "error", err)
			}
		}()
	}

	stage := &demo.Stage{Out: cmd.OutOrStdout()}
	if err := demo.Play(sched, stage); err != nil {
		return err
	}

	loop := &cutscene.Loop{
		Scheduler:    sched,
		FPS:          cfg.Loop.FPS,
		StopWhenIdle: true,
		MaxFrames:    cfg.Loop.MaxFrames,
		BeforeTick:   demo.SkipFrom(sched, cfg.Demo.SkipAtFrame),
		OnTick: func(frame int64, elapsed time.Duration, err error) {
			collector.ObserveTick(frame, elapsed, err)
			lastFrame.Store(frame)
			running.Store(int64(sched.Len()))
		},
		Logger: logger,
	}

	start := time.Now()
	err = loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted")
		err = nil
	}
	if stopErr := sched.StopAll(); stopErr != nil {
		logger.Error("stop tasks", "error", stopErr)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "played %d frames in %s\n", sched.Frame()+1, time.Since(start).Round(time.Millisecond))
	return err
}

func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Loop.FPS = runFPS
	}
	if flags.Changed("max-frames") {
		cfg.Loop.MaxFrames = runMaxFrames
	}
	if flags.Changed("skip-at") {
		cfg.Demo.SkipAtFrame = runSkipAt
	}
	if flags.Changed("journal") {
		cfg.Journal.Path = runJournalPath
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = runMetricsAddr
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = runLogLevel
	}
}

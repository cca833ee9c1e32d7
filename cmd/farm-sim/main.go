package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/bloodfarm/farm"
	"github.com/plus3/bloodfarm/spectate"
)

type options struct {
	Steps      int
	DT         float64
	Script     Script
	ConfigPath string
	Serve      string
	Profile    string
	Verbose    bool
}

func main() {
	var opts options
	flag.IntVar(&opts.Steps, "steps", 3600, "Number of simulation steps to run.")
	flag.Float64Var(&opts.DT, "dt", 1.0/60.0, "Seconds simulated per step.")
	flag.IntVar(&opts.Script.SpawnEvery, "spawn-every", 30, "Press the spawn action once every N steps. Zero disables spawning.")
	flag.IntVar(&opts.Script.TurnEvery, "turn-every", 120, "Change walking direction every N steps. Zero stands still.")
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to a YAML config file. Defaults are used when empty.")
	flag.StringVar(&opts.Serve, "serve", "", "Serve a spectator websocket on this address (e.g. :8080) and run in real time.")
	flag.StringVar(&opts.Profile, "profile", "", "Write a cpu or mem profile to the working directory.")
	flag.BoolVar(&opts.Verbose, "v", false, "Log every spawn and expiry.")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run executes the simulation and writes the report to out. Every deferred
// cleanup, including flushing a profile, happens before it returns.
func run(ctx context.Context, opts options, out io.Writer) error {
	if opts.Steps < 0 {
		return fmt.Errorf("steps must be >= 0, got %d", opts.Steps)
	}
	if opts.DT <= 0 {
		return fmt.Errorf("dt must be > 0, got %v", opts.DT)
	}

	switch opts.Profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q, want cpu or mem", opts.Profile)
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := farm.DefaultConfig()
	if opts.ConfigPath != "" {
		loaded, err := farm.LoadConfig(opts.ConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	session, err := farm.NewSession(cfg, farm.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var hub *spectate.Hub
	serverErr := make(chan error, 1)
	if opts.Serve != "" {
		hub = spectate.NewHub(session.ID(), logger)
		go hub.Run(ctx)

		mux := http.NewServeMux()
		mux.HandleFunc("/ws", hub.ServeWS)
		server := &http.Server{Addr: opts.Serve, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
				cancel()
			}
		}()
		defer server.Close()

		logger.Info("spectator feed listening", "addr", opts.Serve, "path", "/ws")
	}

	report := &Report{
		Session: session.ID().String(),
		Steps:   opts.Steps,
		DT:      opts.DT,
		Config:  cfg,
		StepTime: Stats{
			Samples: make([]time.Duration, 0, opts.Steps),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	logger.Info("running simulation", "session", session.ID(), "steps", opts.Steps, "dt", opts.DT)

	startTime := time.Now()
	if hub != nil {
		runRealTime(ctx, session, hub, opts, report)
	} else {
		runHeadless(ctx, session, opts, report)
	}

	report.TotalTime = time.Since(startTime)
	report.StepTime.Finalize()
	report.Final = session.Snapshot()
	report.Systems = session.Stats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	select {
	case err := <-serverErr:
		return fmt.Errorf("spectator server: %w", err)
	default:
	}

	fmt.Fprintln(out, "\n\n--- Farm Simulation Report ---")
	if err := report.Generate(out); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Fprintln(out, "--- End of Report ---")
	return nil
}

// runHeadless steps as fast as possible.
func runHeadless(ctx context.Context, session *farm.Session, opts options, report *Report) {
	for step := 0; step < opts.Steps && ctx.Err() == nil; step++ {
		stepStart := time.Now()
		session.Step(opts.DT, opts.Script.Input(step))
		report.StepTime.Samples = append(report.StepTime.Samples, time.Since(stepStart))
	}
}

// runRealTime paces steps at dt so spectators watch the run as it happens.
func runRealTime(ctx context.Context, session *farm.Session, hub *spectate.Hub, opts options, report *Report) {
	if opts.Steps == 0 {
		return
	}

	var stepStart time.Time
	source := func(step uint64) farm.RawInput {
		stepStart = time.Now()
		return opts.Script.Input(int(step))
	}
	after := func(snapshot farm.Snapshot) bool {
		report.StepTime.Samples = append(report.StepTime.Samples, time.Since(stepStart))
		hub.Publish(snapshot)
		return snapshot.Step < uint64(opts.Steps)
	}

	session.Run(ctx, time.Duration(opts.DT*float64(time.Second)), source, after)
}

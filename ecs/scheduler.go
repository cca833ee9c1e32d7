package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount int
	Steps       uint64
	Systems     []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler owns a world and runs its systems in registration order.
// One call to Once is one step: every system runs to completion before the
// next one starts, then deferred commands are flushed.
type Scheduler[W any] struct {
	world       W
	systems     []System[W]
	systemStats []*systemStatsInternal
	commands    *Commands
	step        uint64
}

// NewScheduler creates a scheduler for the given world.
func NewScheduler[W any](world W) *Scheduler[W] {
	return &Scheduler[W]{
		world:    world,
		systems:  make([]System[W], 0),
		commands: newCommands(),
	}
}

// Register appends a system to the execution order.
func (s *Scheduler[W]) Register(system System[W]) {
	if system == nil {
		panic("ecs: cannot register a nil system")
	}
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func systemName(system any) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	name := systemType.Name()
	// Drop type arguments from generic system names.
	if i := strings.IndexByte(name, '['); i > 0 {
		name = name[:i]
	}
	return name
}

// World returns the world the scheduler runs against.
func (s *Scheduler[W]) World() W {
	return s.world
}

// Steps returns the number of completed steps.
func (s *Scheduler[W]) Steps() uint64 {
	return s.step
}

// Once executes all registered systems once with the given delta time.
func (s *Scheduler[W]) Once(dt float64) {
	frame := &UpdateFrame[W]{
		DeltaTime: dt,
		Step:      s.step,
		World:     s.world,
		Commands:  s.commands,
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.step++
	s.commands.Flush()
}

// Run executes a step at the given interval until the context is cancelled.
// The delta time of each step is the wall-clock time since the previous tick.
func (s *Scheduler[W]) Run(ctx context.Context, interval time.Duration) {
	Tick(ctx, interval, func(dt float64) bool {
		s.Once(dt)
		return true
	})
}

// Tick calls fn once per interval with the wall-clock seconds since the
// previous call, until ctx is cancelled or fn returns false.
func Tick(ctx context.Context, interval time.Duration, fn func(dt float64) bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if !fn(dt) {
				return
			}
		}
	}
}

// Stats returns statistics about system execution.
func (s *Scheduler[W]) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Steps:       s.step,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}

	return stats
}

package ecs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunnerStats provides execution statistics for a runner's hook.
type RunnerStats struct {
	Hook          string
	TickCount     int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

// Runner drives a scene from an external frame clock: each tick broadcasts
// one hook with the elapsed time in seconds as the parameter. The ECS core
// itself never schedules anything; the runner is the "advance one frame"
// call site.
type Runner struct {
	scene *Scene
	hook  string

	tickCount int64
	min       time.Duration
	max       time.Duration
	last      time.Duration
	total     time.Duration
}

// NewRunner creates a runner dispatching the given hook on scene.
func NewRunner(scene *Scene, hook string) *Runner {
	return &Runner{
		scene: scene,
		hook:  hook,
		min:   time.Duration(1<<63 - 1),
	}
}

// Once dispatches a single tick with the given delta time in seconds.
func (r *Runner) Once(dt float64) {
	start := time.Now()
	r.scene.Dispatch(r.hook, dt)
	duration := time.Since(start)

	r.tickCount++
	r.last = duration
	r.total += duration
	if duration < r.min {
		r.min = duration
	}
	if duration > r.max {
		r.max = duration
	}
}

// Run dispatches ticks at the given interval until the context is
// cancelled. The delta time passed to each tick is the wall-clock time
// since the previous one.
func (r *Runner) Run(ctx context.Context, interval time.Duration) {
	r.scene.logger.Debug("runner starting",
		zap.String("hook", r.hook),
		zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			r.scene.logger.Debug("runner stopped",
				zap.String("hook", r.hook),
				zap.Int64("ticks", r.tickCount))
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			r.Once(dt)
		}
	}
}

// Stats returns execution statistics for the runner's hook.
func (r *Runner) Stats() RunnerStats {
	stats := RunnerStats{
		Hook:          r.hook,
		TickCount:     r.tickCount,
		MinDuration:   r.min,
		MaxDuration:   r.max,
		LastDuration:  r.last,
		TotalDuration: r.total,
	}
	if r.tickCount > 0 {
		stats.AvgDuration = r.total / time.Duration(r.tickCount)
	} else {
		stats.MinDuration = 0
	}
	return stats
}

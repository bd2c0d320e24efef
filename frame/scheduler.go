// Package frame drives per-frame work: a Scheduler that runs registered
// systems in order with timing statistics, and a Loop that invokes a step
// function at a fixed interval on its own goroutine until stopped.
package frame

import (
	"reflect"
	"time"
)

// Named is implemented by systems that want a stable name in stats.
type Named interface {
	Name() string
}

// SchedulerStats is a snapshot of scheduler activity.
type SchedulerStats struct {
	Frames  uint64
	Runs    int64
	Systems []SystemStats
}

// SystemStats holds the timings of one registered system. Min is zero
// until the system has run.
type SystemStats struct {
	Name  string
	Runs  int64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Last  time.Duration
	Total time.Duration
}

type entry struct {
	system System
	timing SystemStats
}

func (e *entry) run(u *Update) {
	start := time.Now()
	e.system.Execute(u)
	d := time.Since(start)

	t := &e.timing
	if t.Runs == 0 || d < t.Min {
		t.Min = d
	}
	t.Max = max(t.Max, d)
	t.Last = d
	t.Total += d
	t.Runs++
	t.Avg = t.Total / time.Duration(t.Runs)
}

// Scheduler runs systems in registration order, then flushes the commands
// they deferred.
type Scheduler struct {
	entries  []*entry
	commands *Commands
	frames   uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{commands: newCommands()}
}

// Register appends a system.
func (s *Scheduler) Register(system System) {
	s.entries = append(s.entries, &entry{
		system: system,
		timing: SystemStats{Name: nameOf(system)},
	})
}

func nameOf(system System) string {
	switch sys := system.(type) {
	case Named:
		return sys.Name()
	case SystemFunc:
		return "SystemFunc"
	}
	t := reflect.TypeOf(system)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Once runs every system with delta time dt.
func (s *Scheduler) Once(dt float64) {
	u := &Update{DeltaTime: dt, Index: s.frames, Commands: s.commands}
	for _, e := range s.entries {
		e.run(u)
	}
	s.commands.Flush()
	s.frames++
}

// Frames returns the number of completed passes.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// Stats copies the current timings.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		Frames:  s.frames,
		Systems: make([]SystemStats, len(s.entries)),
	}
	for i, e := range s.entries {
		stats.Systems[i] = e.timing
		stats.Runs += e.timing.Runs
	}
	return stats
}

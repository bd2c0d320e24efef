package frame_test

import (
	"testing"

	"github.com/spicorn/Danler/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CounterSystem struct {
	ExecuteCount int
	LastDelta    float64
	LastIndex    uint64
}

func (s *CounterSystem) Execute(u *frame.Update) {
	s.ExecuteCount++
	s.LastDelta = u.DeltaTime
	s.LastIndex = u.Index
}

type orderSystem struct {
	name string
	log  *[]string
}

func (s *orderSystem) Execute(u *frame.Update) {
	*s.log = append(*s.log, s.name)
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order", func(t *testing.T) {
		var log []string
		scheduler := frame.NewScheduler()
		scheduler.Register(&orderSystem{name: "advance", log: &log})
		scheduler.Register(&orderSystem{name: "render", log: &log})

		scheduler.Once(1.0 / 60.0)
		scheduler.Once(1.0 / 60.0)

		assert.Equal(t, []string{"advance", "render", "advance", "render"}, log)
		assert.Equal(t, uint64(2), scheduler.Frames())
	})

	t.Run("delta time and frame index", func(t *testing.T) {
		scheduler := frame.NewScheduler()
		counter := &CounterSystem{}
		scheduler.Register(counter)

		scheduler.Once(0.5)
		if counter.ExecuteCount != 1 {
			t.Errorf("expected CounterSystem to execute once, got %d", counter.ExecuteCount)
		}
		assert.Equal(t, 0.5, counter.LastDelta)
		assert.Equal(t, uint64(0), counter.LastIndex)

		scheduler.Once(0.25)
		if counter.ExecuteCount != 2 {
			t.Errorf("expected CounterSystem to execute twice, got %d", counter.ExecuteCount)
		}
		assert.Equal(t, uint64(1), counter.LastIndex)
	})

	t.Run("deferred commands run after all systems", func(t *testing.T) {
		var log []string
		scheduler := frame.NewScheduler()
		scheduler.Register(frame.SystemFunc(func(u *frame.Update) {
			u.Commands.Defer(func() { log = append(log, "deferred") })
			log = append(log, "first")
		}))
		scheduler.Register(&orderSystem{name: "second", log: &log})

		scheduler.Once(0)
		assert.Equal(t, []string{"first", "second", "deferred"}, log)

		log = nil
		scheduler.Once(0)
		assert.Equal(t, []string{"first", "second", "deferred"}, log, "commands must not replay")
	})

	t.Run("nested defers flush in the same frame", func(t *testing.T) {
		count := 0
		scheduler := frame.NewScheduler()
		scheduler.Register(frame.SystemFunc(func(u *frame.Update) {
			u.Commands.Defer(func() {
				count++
				u.Commands.Defer(func() { count++ })
			})
		}))

		scheduler.Once(0)
		assert.Equal(t, 2, count)
	})
}

func TestSchedulerStats(t *testing.T) {
	scheduler := frame.NewScheduler()
	scheduler.Register(&CounterSystem{})
	scheduler.Register(frame.SystemFunc(func(*frame.Update) {}))

	stats := scheduler.Stats()
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, int64(0), stats.Runs)
	assert.Zero(t, stats.Systems[0].Min)

	for i := 0; i < 10; i++ {
		scheduler.Once(1.0 / 60.0)
	}

	stats = scheduler.Stats()
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, uint64(10), stats.Frames)
	assert.Equal(t, int64(20), stats.Runs)
	assert.Equal(t, "CounterSystem", stats.Systems[0].Name)
	assert.Equal(t, "SystemFunc", stats.Systems[1].Name)

	for _, s := range stats.Systems {
		assert.Equal(t, int64(10), s.Runs)
		assert.LessOrEqual(t, s.Min, s.Avg)
		assert.LessOrEqual(t, s.Avg, s.Max)
		assert.GreaterOrEqual(t, s.Total, s.Max)
	}
}

type namedSystem struct{}

func (namedSystem) Execute(*frame.Update) {}
func (namedSystem) Name() string          { return "custom" }

func TestSchedulerNamedSystem(t *testing.T) {
	scheduler := frame.NewScheduler()
	scheduler.Register(namedSystem{})
	assert.Equal(t, "custom", scheduler.Stats().Systems[0].Name)
}

package frame

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrLoopRunning is returned by Start on a loop that has not been stopped.
	ErrLoopRunning = errors.New("frame: loop already running")
	// ErrInvalidInterval is returned by Start for a non-positive interval.
	ErrInvalidInterval = errors.New("frame: interval must be positive")
)

// Loop calls a step function once per interval on a dedicated goroutine.
// Work posted with Post runs on the same goroutine between frames, so the
// step and every posted function see a single writer.
type Loop struct {
	step  func(dt float64)
	posts chan func()

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	frames atomic.Uint64
}

// NewLoop creates a stopped loop around step.
func NewLoop(step func(dt float64)) *Loop {
	return &Loop{
		step:  step,
		posts: make(chan func(), 64),
	}
}

// Start launches the loop goroutine. It runs until ctx is cancelled or Stop
// is called.
func (l *Loop) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w, got %s", ErrInvalidInterval, interval)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done != nil {
		select {
		case <-l.done:
		default:
			return ErrLoopRunning
		}
		l.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	go l.run(ctx, interval, l.done)
	return nil
}

func (l *Loop) run(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.posts:
			fn()
		case now := <-ticker.C:
			// select picks randomly among ready cases
			if ctx.Err() != nil {
				return
			}
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			l.step(dt)
			l.frames.Add(1)
		}
	}
}

// Post queues fn to run on the loop goroutine before the next frame. It
// reports false when the loop is not running. Every accepted fn runs
// exactly once: on the loop goroutine, or inside Stop if the loop exited
// first. Posting from the loop goroutine blocks once the queue is full.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	done := l.done
	if done == nil {
		return false
	}

	select {
	case <-done:
		return false
	default:
	}

	select {
	case l.posts <- fn:
		return true
	case <-done:
		return false
	}
}

// Stop cancels the loop and blocks until its goroutine has exited, then
// runs any posted work the loop did not reach. No frame runs after Stop
// returns. Stop must not be called from the step function or from posted
// work.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	for {
		select {
		case fn := <-l.posts:
			fn()
		default:
			return
		}
	}
}

// Done returns a channel closed when the running loop exits, or nil when
// the loop was never started.
func (l *Loop) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

// Frames returns the number of steps run since the loop was created.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

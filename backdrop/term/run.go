package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spicorn/Danler/backdrop"
	"github.com/spicorn/Danler/field"
	"github.com/spicorn/Danler/frame"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configures Run.
type Options struct {
	CellWidth  int
	CellHeight int
	FPS        int
	Background field.Ink
	Logger     *zap.Logger
}

// Run mounts b on an initialized screen and animates it until ctx is
// cancelled or the user presses Escape, q or Ctrl-C. Frames, resizes and
// key actions all execute on the frame loop goroutine. The caller owns the
// screen and finalizes it after Run returns.
func Run(ctx context.Context, screen tcell.Screen, b *backdrop.Backdrop, opts Options) error {
	if opts.FPS <= 0 {
		return fmt.Errorf("term: fps must be positive, got %d", opts.FPS)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("term")

	cols, rows := screen.Size()
	surf := NewSurface(cols, rows, opts.CellWidth, opts.CellHeight, opts.Background)
	b.Mount(surf.PixelSize())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := frame.NewLoop(func(dt float64) {
		b.Update(dt)
		surf.Clear()
		b.Draw(surf)
		surf.Flush(screen)
		screen.Show()
	})
	if err := loop.Start(ctx, time.Second/time.Duration(opts.FPS)); err != nil {
		b.Unmount()
		return fmt.Errorf("term: starting frame loop: %w", err)
	}
	logger.Info("Frame loop started", zap.Int("cols", cols), zap.Int("rows", rows), zap.Int("fps", opts.FPS))

	events := make(chan tcell.Event, 16)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		screen.ChannelEvents(events, gctx.Done())
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				if quit := handleEvent(ev, loop, surf, b); quit {
					logger.Debug("Quit requested")
					cancel()
					return nil
				}
			}
		}
	})

	err := g.Wait()
	loop.Stop()
	b.Unmount()
	logger.Info("Frame loop stopped", zap.Uint64("frames", loop.Frames()))
	return err
}

func handleEvent(ev tcell.Event, loop *frame.Loop, surf *Surface, b *backdrop.Backdrop) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		loop.Post(func() {
			surf.Resize(cols, rows)
			b.Resize(surf.PixelSize())
		})

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case ' ':
				loop.Post(func() { b.SetPaused(!b.Paused()) })
			case 'r':
				loop.Post(b.Reseed)
			}
		}
	}
	return false
}

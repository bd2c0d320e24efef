package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spicorn/Danler/backdrop"
	"github.com/spicorn/Danler/config"
	"github.com/spicorn/Danler/observability"
	"github.com/spicorn/Danler/surface"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Run the backdrop headlessly and print a performance report",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()

		b, err := newBackdrop(cfg, logger)
		if err != nil {
			return err
		}

		report, err := runStress(cmd.Context(), b, cfg.Stress, logger)
		if err != nil {
			return err
		}

		fmt.Println("\n--- Stress Test Report ---")
		if err := report.Generate(os.Stdout); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}
		fmt.Println("--- End of Report ---")
		return nil
	},
}

func init() {
	stressCmd.Flags().Duration("duration", 10*time.Second, "how long the test runs")
	stressCmd.Flags().Int("width", 1920, "surface width in pixels")
	stressCmd.Flags().Int("height", 1080, "surface height in pixels")
	stressCmd.Flags().Int("fps", 0, "frame rate cap, 0 runs unpaced")
	stressCmd.Flags().Bool("gc-pause-metrics", false, "include GC pause totals in the report")
	_ = viper.BindPFlag("stress.duration", stressCmd.Flags().Lookup("duration"))
	_ = viper.BindPFlag("stress.width", stressCmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("stress.height", stressCmd.Flags().Lookup("height"))
	_ = viper.BindPFlag("stress.fps", stressCmd.Flags().Lookup("fps"))
	_ = viper.BindPFlag("stress.gc_pause_metrics", stressCmd.Flags().Lookup("gc-pause-metrics"))

	rootCmd.AddCommand(stressCmd)
}

// runStress mounts b on a counting surface and runs frames until
// sc.Duration elapses or ctx is cancelled. With sc.FPS > 0 frames are
// paced by a token bucket.
func runStress(ctx context.Context, b *backdrop.Backdrop, sc config.StressConfig, logger *zap.Logger) (*Report, error) {
	if sc.Width <= 0 || sc.Height <= 0 {
		return nil, fmt.Errorf("stress surface must be positive, got %dx%d", sc.Width, sc.Height)
	}

	b.Mount(sc.Width, sc.Height)
	defer b.Unmount()

	report := &Report{
		Duration:       sc.Duration,
		Width:          sc.Width,
		Height:         sc.Height,
		FPS:            sc.FPS,
		Particles:      b.Stats().Field.Particles,
		GCPauseMetrics: sc.GCPauseMetrics,
	}

	var limiter *rate.Limiter
	if sc.FPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(sc.FPS), 1)
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("Running stress test",
		zap.Duration("duration", sc.Duration),
		zap.Int("width", sc.Width),
		zap.Int("height", sc.Height),
		zap.Int("particles", report.Particles))

	ctx, cancel := context.WithTimeout(ctx, sc.Duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := startTime

Loop:
	for {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				break Loop
			}
		}
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		deltaTime := time.Since(lastFrameTime)
		lastFrameTime = time.Now()

		updateStart := time.Now()
		b.Update(deltaTime.Seconds())
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		var counter surface.Counter
		drawStart := time.Now()
		b.Draw(&counter)
		report.DrawTime.Samples = append(report.DrawTime.Samples, time.Since(drawStart))

		report.TotalLinks += int64(b.Stats().Field.Links)
		report.TotalDrawCalls += counter.Circles + counter.Lines
		report.TotalFrames++
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.DrawTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	if err := context.Cause(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Info("Stress test interrupted", zap.Error(err))
	}
	logger.Info("Stress test finished", zap.Int64("frames", report.TotalFrames), zap.Duration("elapsed", report.TotalTime))
	return report, nil
}

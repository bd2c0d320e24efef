// Package backdrop is the page background component: it owns a particle
// field for the lifetime of a mount, advances it once per frame and draws
// it together with the floating outline shapes.
package backdrop

import (
	"github.com/spicorn/Danler/field"
	"github.com/spicorn/Danler/frame"
	"go.uber.org/zap"
)

// Config configures a Backdrop.
type Config struct {
	Field     field.Config
	Seed      uint64
	Shapes    []Shape
	Gradients []Gradient
}

// DefaultConfig returns the stock field tuning with the default shapes and
// gradient washes.
func DefaultConfig() Config {
	return Config{
		Field:     field.DefaultConfig(),
		Shapes:    DefaultShapes(),
		Gradients: DefaultGradients(),
	}
}

// Stats is a snapshot of a backdrop for diagnostics.
type Stats struct {
	Mounted   bool
	Paused    bool
	Elapsed   float64
	Field     field.Stats
	Scheduler *frame.SchedulerStats
}

// Backdrop is the explicit owner of everything the background needs between
// mount and unmount. All methods must be called from the host's frame
// goroutine.
type Backdrop struct {
	cfg    Config
	logger *zap.Logger

	field     *field.Field
	width     int
	height    int
	scheduler *frame.Scheduler
	clock     *ClockSystem
	advance   *AdvanceSystem
	paused    bool
}

// New creates an unmounted backdrop.
func New(cfg Config, logger *zap.Logger) *Backdrop {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Backdrop{
		cfg:       cfg,
		logger:    logger.Named("backdrop"),
		scheduler: frame.NewScheduler(),
		clock:     &ClockSystem{},
		advance:   &AdvanceSystem{},
	}
	b.scheduler.Register(b.clock)
	b.scheduler.Register(b.advance)
	return b
}

// Register appends a system that runs after the field advanced each frame.
func (b *Backdrop) Register(system frame.System) {
	b.scheduler.Register(system)
}

// Mount creates the field for a width x height surface. Mounting an
// already mounted backdrop does nothing.
func (b *Backdrop) Mount(width, height int) {
	if b.field != nil {
		return
	}

	opts := []field.Option{field.WithConfig(b.cfg.Field)}
	if b.cfg.Seed != 0 {
		opts = append(opts, field.WithSeed(b.cfg.Seed))
	}
	b.field = field.New(float64(width), float64(height), opts...)
	b.width, b.height = width, height
	b.advance.Field = b.field
	b.clock.Elapsed = 0

	b.logger.Info("Mounted",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("particles", b.field.Len()))
}

// Mounted reports whether a field is live.
func (b *Backdrop) Mounted() bool {
	return b.field != nil
}

// Resize re-seeds the field for a new surface size.
func (b *Backdrop) Resize(width, height int) {
	if b.field == nil || (width == b.width && height == b.height) {
		return
	}
	b.width, b.height = width, height
	b.field.Resize(float64(width), float64(height))

	b.logger.Debug("Resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("particles", b.field.Len()))
}

// Unmount drops the field. Later Update and Draw calls do nothing until
// the next Mount.
func (b *Backdrop) Unmount() {
	if b.field == nil {
		return
	}
	frames := b.field.Stats().Frames
	b.field = nil
	b.advance.Field = nil

	b.logger.Info("Unmounted", zap.Uint64("frames", frames))
}

// SetPaused freezes or resumes the animation.
func (b *Backdrop) SetPaused(paused bool) {
	b.paused = paused
}

// Paused reports whether the animation is frozen.
func (b *Backdrop) Paused() bool {
	return b.paused
}

// Reseed re-randomizes the particles for the current size.
func (b *Backdrop) Reseed() {
	if b.field != nil {
		b.field.Reseed()
	}
}

// Update runs one scheduler pass: the clock advances by dt and the field
// moves one step.
func (b *Backdrop) Update(dt float64) {
	if b.field == nil || b.paused {
		return
	}
	b.scheduler.Once(dt)
}

// DrawParticles renders the field.
func (b *Backdrop) DrawParticles(s field.Surface) {
	if b.field == nil {
		return
	}
	b.field.Render(s)
}

// DrawShapes renders the outline shapes at the current clock time.
func (b *Backdrop) DrawShapes(s field.Surface) {
	if b.field == nil {
		return
	}
	w, h := float64(b.width), float64(b.height)
	for _, shape := range b.cfg.Shapes {
		shape.Draw(s, w, h, b.clock.Elapsed)
	}
}

// Gradients returns the washes a host draws over the shapes, or nil while
// unmounted. A field.Surface cannot fill areas, so hosts render them
// directly.
func (b *Backdrop) Gradients() []Gradient {
	if b.field == nil {
		return nil
	}
	return b.cfg.Gradients
}

// Size returns the mounted surface size.
func (b *Backdrop) Size() (width, height int) {
	return b.width, b.height
}

// Draw renders particles, then shapes, onto a single surface.
func (b *Backdrop) Draw(s field.Surface) {
	b.DrawParticles(s)
	b.DrawShapes(s)
}

// Stats returns a diagnostic snapshot.
func (b *Backdrop) Stats() Stats {
	st := Stats{
		Mounted:   b.field != nil,
		Paused:    b.paused,
		Elapsed:   b.clock.Elapsed,
		Scheduler: b.scheduler.Stats(),
	}
	if b.field != nil {
		st.Field = b.field.Stats()
	}
	return st
}

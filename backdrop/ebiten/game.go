package ebiten

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spicorn/Danler/backdrop"
	"go.uber.org/zap"
)

// Overlay is drawn above the backdrop, e.g. a debug UI.
type Overlay interface {
	Update()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
	CapturesKeyboard() bool
}

// Options configures a Game.
type Options struct {
	Width        int
	Height       int
	Title        string
	Background   color.Color
	LayerOpacity float64
	Overlay      Overlay
	Logger       *zap.Logger
}

// Game implements ebiten.Game around a backdrop. Ebiten calls Layout,
// Update and Draw from one goroutine, so resize notifications and frames
// never interleave.
type Game struct {
	backdrop *backdrop.Backdrop
	opts     Options
	logger   *zap.Logger

	layer   *ebiten.Image
	layerOp *ebiten.DrawImageOptions
	white   *ebiten.Image
	quad    []ebiten.Vertex
	width   int
	height  int
}

// NewGame wraps b. The backdrop is mounted on the first Layout call.
func NewGame(b *backdrop.Backdrop, opts Options) *Game {
	if opts.Background == nil {
		opts.Background = color.Black
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(opts.LayerOpacity))

	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	return &Game{
		backdrop: b,
		opts:     opts,
		logger:   logger.Named("window"),
		layerOp:  op,
		white:    white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		quad:     make([]ebiten.Vertex, 4),
	}
}

func (g *Game) Update() error {
	captured := g.opts.Overlay != nil && g.opts.Overlay.CapturesKeyboard()
	if !captured {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			g.backdrop.Unmount()
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.backdrop.SetPaused(!g.backdrop.Paused())
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.backdrop.Reseed()
		}
	}

	if g.opts.Overlay != nil {
		g.opts.Overlay.Update()
	}
	g.backdrop.Update(1 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.opts.Background)

	bounds := screen.Bounds()
	if g.layer == nil || g.layer.Bounds() != bounds {
		if g.layer != nil {
			g.layer.Deallocate()
		}
		g.layer = ebiten.NewImage(bounds.Dx(), bounds.Dy())
	}
	g.layer.Clear()

	g.backdrop.DrawParticles(&Surface{Target: g.layer, Antialias: true})
	screen.DrawImage(g.layer, g.layerOp)
	g.backdrop.DrawShapes(&Surface{Target: screen, Antialias: true})
	g.drawGradients(screen)

	if g.opts.Overlay != nil {
		g.opts.Overlay.Draw(screen)
	}
}

// drawGradients paints each wash as one vertex-coloured quad.
func (g *Game) drawGradients(screen *ebiten.Image) {
	w, h := g.backdrop.Size()
	for _, grad := range g.backdrop.Gradients() {
		r, gr, b := float32(grad.Ink.R)/255, float32(grad.Ink.G)/255, float32(grad.Ink.B)/255
		for i, v := range grad.Quad(float64(w), float64(h)) {
			g.quad[i] = ebiten.Vertex{
				DstX: float32(v.X), DstY: float32(v.Y),
				SrcX: 1, SrcY: 1,
				ColorR: r, ColorG: gr, ColorB: b, ColorA: float32(v.Alpha),
			}
		}
		screen.DrawTriangles(g.quad, grad.Indices(), g.white, &ebiten.DrawTrianglesOptions{})
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if g.backdrop.Mounted() {
			g.backdrop.Resize(outsideWidth, outsideHeight)
		} else {
			g.backdrop.Mount(outsideWidth, outsideHeight)
		}
	}
	if g.opts.Overlay != nil {
		g.opts.Overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(b *backdrop.Backdrop, opts Options) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := NewGame(b, opts)
	game.logger.Info("Opening window", zap.Int("width", opts.Width), zap.Int("height", opts.Height))

	err := ebiten.RunGame(game)
	b.Unmount()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

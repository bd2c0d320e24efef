// Package debugui provides a Dear ImGui inspector for a running backdrop.
package debugui

import (
	"fmt"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spicorn/Danler/backdrop"
	"github.com/spicorn/Danler/frame"
)

// Inspector renders field and scheduler statistics in an ImGui window and
// exposes pause and reseed controls. It also runs as a frame.System on the
// backdrop to sample frame times.
type Inspector struct {
	backend  *ebitenbackend.EbitenBackend
	backdrop *backdrop.Backdrop

	historyFrames int
	frameHistory  []float32
	frameIndex    int
	paused        bool
}

// NewInspector creates the ImGui backend, registers the inspector on b and
// returns it ready to be used as a window overlay.
func NewInspector(b *backdrop.Backdrop, title string, width, height, historyFrames int) *Inspector {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	if historyFrames <= 0 {
		historyFrames = 120
	}
	i := &Inspector{
		backend:       backend,
		backdrop:      b,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
	b.Register(i)
	return i
}

// Execute records the frame time in milliseconds.
func (i *Inspector) Execute(u *frame.Update) {
	i.frameHistory[i.frameIndex] = float32(u.DeltaTime * 1000)
	i.frameIndex = (i.frameIndex + 1) % i.historyFrames
}

func (i *Inspector) Update() {
	i.backend.BeginFrame()
	i.render()
	i.backend.EndFrame()
}

func (i *Inspector) Draw(screen *ebiten.Image) {
	i.backend.Draw(screen)
}

func (i *Inspector) Layout(width, height int) {
	i.backend.Layout(width, height)
}

func (i *Inspector) CapturesKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}

func (i *Inspector) render() {
	if !imgui.BeginV("Backdrop", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := i.backdrop.Stats()

	imgui.Text(fmt.Sprintf("Particles: %d", stats.Field.Particles))
	imgui.Text(fmt.Sprintf("Links: %d", stats.Field.Links))
	imgui.Text(fmt.Sprintf("Bounds: %.0f x %.0f", stats.Field.Width, stats.Field.Height))
	imgui.Text(fmt.Sprintf("Frames: %d", stats.Field.Frames))
	imgui.Text(fmt.Sprintf("Elapsed: %.1fs", stats.Elapsed))

	i.paused = stats.Paused
	if imgui.Checkbox("Paused", &i.paused) {
		i.backdrop.SetPaused(i.paused)
	}
	imgui.SameLine()
	if imgui.Button("Reseed") {
		i.backdrop.Reseed()
	}

	var avgFrameTime float32
	for _, ft := range i.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(i.historyFrames)
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &i.frameHistory[0], int32(len(i.frameHistory)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range stats.Scheduler.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.Runs))
				imgui.TableNextColumn()
				imgui.Text(sys.Avg.String())
				imgui.TableNextColumn()
				imgui.Text(sys.Max.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

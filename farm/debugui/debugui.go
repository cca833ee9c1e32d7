// Package debugui draws Dear ImGui inspection panels for a farm session on
// top of an Ebiten game.
package debugui

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/bloodfarm/farm"
)

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Games should ignore their own key bindings while WantCaptureKeyboard is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay owns the ImGui backend and the panels rendered each frame.
type Overlay struct {
	backend     *ebitenbackend.EbitenBackend
	performance *PerformanceStats
	brains      *BrainTable
	frameTimer  *FrameTimer
	input       InputState
}

// NewOverlay creates the ImGui backend and its Ebiten window.
func NewOverlay(title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &Overlay{
		backend:     backend,
		performance: NewPerformanceStats(120),
		brains:      NewBrainTable(25),
		frameTimer:  NewFrameTimer(),
	}
}

// Input returns the capture state observed by the last Update.
func (o *Overlay) Input() InputState {
	return o.input
}

// Update builds this frame's panels for session. Call it once per ebiten
// Update, after the session has stepped.
func (o *Overlay) Update(session *farm.Session) {
	o.backend.BeginFrame()

	io := imgui.CurrentIO()
	o.input = InputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}

	snapshot := session.Snapshot()
	RenderEconomy(snapshot)
	o.brains.Render(snapshot.Brains)
	o.performance.Render(session.Stats(), o.frameTimer.GetDeltaTime())

	o.backend.EndFrame()
}

// Draw renders the overlay on top of screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

// Layout forwards the window size to the backend.
func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Layout(outsideWidth, outsideHeight)
}

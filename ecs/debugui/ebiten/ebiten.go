// Package ebiten provides Dear ImGui backend integration for the Ebiten
// game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend. Call
// BeginFrame before dispatching the debugui render hook, EndFrame after,
// and Draw from the game's Draw pass.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// New creates a backend with a window ready for the debugui panels. The
// imgui ini file is disabled so panel layout does not leak onto disk.
func New(title string, width, height int) *ImguiBackend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: b}
}

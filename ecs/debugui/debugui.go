// Package debugui provides immediate-mode GUI inspection for scenes using
// Dear ImGui. Panels are plain render closures attached to entities as
// Widget components and driven through an ordinary dispatch hook, so the
// debug UI rides the same membership machinery it visualizes.
package debugui

import (
	"github.com/plus3/scenekit/ecs"
)

// RenderHook is the dispatch hook WidgetSystem registers. Broadcast it
// once per frame, between the ImGui backend's BeginFrame and EndFrame.
const RenderHook = "debugui-render"

// Widget is a component holding a Dear ImGui render function. Attach it
// to entities that should draw ImGui widgets each frame.
type Widget struct {
	Render func()
}

// Name implements ecs.Component.
func (*Widget) Name() string { return "DebugWidget" }

// WidgetSystem matches entities holding a Widget component and invokes
// their render functions when the RenderHook is dispatched.
type WidgetSystem struct {
	ecs.BaseSystem
}

// NewWidgetSystem creates the system; add it to the scene being debugged
// (or to a dedicated overlay scene).
func NewWidgetSystem() *WidgetSystem {
	s := &WidgetSystem{}
	s.RegisterHook(RenderHook, s.render)
	return s
}

// Test matches any entity carrying a Widget.
func (s *WidgetSystem) Test(e *ecs.Entity) bool {
	return e.Has("DebugWidget")
}

func (s *WidgetSystem) render(e *ecs.Entity, _ any) {
	if w, ok := e.Get("DebugWidget").(*Widget); ok && w.Render != nil {
		w.Render()
	}
}

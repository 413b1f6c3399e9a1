package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/scenekit/ecs"
)

// SystemViewer lists a scene's systems in dispatch order with their
// matched entities, in match order.
type SystemViewer struct{}

func NewSystemViewer() *SystemViewer {
	return &SystemViewer{}
}

func (sv *SystemViewer) Render(scene *ecs.Scene) {
	if !imgui.BeginV("System Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	systems := scene.Systems()
	imgui.Text(fmt.Sprintf("Systems: %d (dispatch order)", len(systems)))
	imgui.Separator()

	for i, sys := range systems {
		matcher, ok := sys.(interface{ Entities() []*ecs.Entity })
		if !ok {
			continue
		}
		matched := matcher.Entities()

		label := fmt.Sprintf("%d. %s (%d matched)", i+1, SystemLabel(sys), len(matched))
		if imgui.TreeNodeStr(label) {
			for _, e := range matched {
				imgui.BulletText(e.ID())
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}

// SystemLabel reports the concrete type name of a system for display.
func SystemLabel(sys ecs.System) string {
	t := reflect.TypeOf(sys)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

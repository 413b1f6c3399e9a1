package debugui

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/scenekit/ecs"
)

// ComponentInspector renders the components of the selected entity and
// lets scalar fields be edited live. Edits go through Entity.Set, the
// same path application code uses.
type ComponentInspector struct{}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{}
}

func (ci *ComponentInspector) Render(scene *ecs.Scene, selectedID string) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if selectedID == "" {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	entity := scene.GetEntity(selectedID)
	if entity == nil {
		imgui.Text(fmt.Sprintf("Entity %q no longer in scene", selectedID))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %s", entity.ID()))
	imgui.Text(fmt.Sprintf("Member systems: %d", len(entity.Systems())))
	imgui.Separator()

	names := entity.Components()
	sort.Strings(names)

	for _, name := range names {
		component := entity.Get(name)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(name) {
			ci.renderComponent(entity, name, component)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspector) renderComponent(entity *ecs.Entity, name string, component ecs.Component) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		imgui.Text(fmt.Sprintf("%v", component))
		return
	}

	structType := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}
		ci.renderField(entity, name, field.Name, val.Field(i))
	}
}

func (ci *ComponentInspector) renderField(entity *ecs.Entity, component, name string, val reflect.Value) {
	set := func(value any) {
		// Inspector edits are best-effort; a failed Set leaves the old value.
		_ = entity.Set(component, map[string]any{name: value})
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s.%s", component, name), &v) {
			set(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s.%s", component, name), &v) && v >= 0 {
			set(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s.%s", component, name), &v) {
			set(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(fmt.Sprintf("%s##%s", name, component), &v) {
			set(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s.%s", component, name), "", &v, imgui.InputTextFlagsNone, nil) {
			set(v)
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

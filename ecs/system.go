package ecs

import "reflect"

// HookFunc is a named dispatch hook invoked with the target entity and the
// dispatch parameter (nil when the caller passed none).
type HookFunc func(entity *Entity, param any)

// System defines behavior over the subset of entities it matches: a
// membership predicate (Test) plus lifecycle hooks fired on membership
// transitions (Init, Exit) and arbitrary named hooks reachable only
// through dispatch.
//
// Concrete systems embed BaseSystem, which supplies the defaults (a
// predicate matching nothing, no-op lifecycle hooks, an explicit hook
// registry) and the scene binding. A System belongs to at most one Scene
// for its lifetime; Scene.AddSystem rejects a system that is already
// attached elsewhere.
type System interface {
	// Test is the membership predicate. It must be pure: no side effects,
	// no dependence on anything but the entity's current components.
	Test(*Entity) bool

	// Init is invoked exactly once each time an entity becomes a member.
	Init(*Entity)

	// Exit is invoked exactly once each time an entity ceases to be a
	// member.
	Exit(*Entity)

	// Hook returns the named dispatch hook, if the system registers one.
	Hook(name string) (HookFunc, bool)

	// base exposes the scene binding to the owning Scene. Only satisfiable
	// by embedding BaseSystem.
	base() *BaseSystem
}

// BaseSystem is the mandatory embedded core of every System. Its zero
// value is ready to use: the default predicate matches nothing, Init and
// Exit do nothing, and no hooks are registered.
type BaseSystem struct {
	scene *Scene
	key   uint32 // scene-internal membership index
	hooks map[string]HookFunc
}

// Test matches nothing by default.
func (b *BaseSystem) Test(*Entity) bool { return false }

// Init does nothing by default.
func (b *BaseSystem) Init(*Entity) {}

// Exit does nothing by default.
func (b *BaseSystem) Exit(*Entity) {}

// Hook returns the registered hook with the given name.
func (b *BaseSystem) Hook(name string) (HookFunc, bool) {
	fn, ok := b.hooks[name]
	return fn, ok
}

// RegisterHook registers a named dispatch hook, replacing any prior hook
// with the same name. Hooks are only ever invoked through Scene.Dispatch
// or Entity.Dispatch, never automatically.
func (b *BaseSystem) RegisterHook(name string, fn HookFunc) {
	if b.hooks == nil {
		b.hooks = make(map[string]HookFunc)
	}
	b.hooks[name] = fn
}

// Hooks returns the names of all registered hooks, in no particular order.
func (b *BaseSystem) Hooks() []string {
	names := make([]string, 0, len(b.hooks))
	for name := range b.hooks {
		names = append(names, name)
	}
	return names
}

// Scene returns the owning scene, or nil while detached.
func (b *BaseSystem) Scene() *Scene {
	return b.scene
}

// Entities returns the entities this system currently matches, in the
// order they matched. The slice is a read-only projection of the
// scene-owned membership relation. Detached systems match nothing.
func (b *BaseSystem) Entities() []*Entity {
	if b.scene == nil {
		return nil
	}
	return b.scene.members.entitiesOf(b.key)
}

func (b *BaseSystem) base() *BaseSystem { return b }

// systemName reports the concrete type name of a system, for logs and
// debug output.
func systemName(sys System) string {
	t := reflect.TypeOf(sys)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

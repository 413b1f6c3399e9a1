package ecs

import "fmt"

// Entity is an identity-bearing container of component records.
// An entity is created detached: it has no id and belongs to no scene until
// added with Scene.AddEntity, and becomes detached again when removed. The
// entity object and its component data survive removal; the caller keeps
// the reference.
type Entity struct {
	id    string
	key   uint64 // scene-internal membership index, 0 while detached
	scene *Scene

	components map[string]Component
}

// NewEntity creates a detached entity holding the given components.
func NewEntity(components ...Component) *Entity {
	e := &Entity{
		components: make(map[string]Component, len(components)),
	}
	for _, c := range components {
		e.Add(c)
	}
	return e
}

// ID returns the scene-assigned identifier, or "" while detached.
func (e *Entity) ID() string {
	return e.id
}

// Scene returns the owning scene, or nil while detached.
func (e *Entity) Scene() *Scene {
	return e.scene
}

// Add stores a component keyed by its name, replacing any prior instance
// with the same name.
//
// Add is the low-level primitive: it does not recompute system membership,
// so calling it on an attached entity leaves membership stale until the
// scene reconciles. Use Scene.AddComponent to add a component and keep
// membership consistent. Queries are not membership: Scene.Query reflects
// the new component immediately.
func (e *Entity) Add(c Component) {
	if e.components == nil {
		e.components = make(map[string]Component)
	}
	e.components[c.Name()] = c
	if e.scene != nil {
		e.scene.generation++
	}
}

// Get returns the stored component with the given name, or nil if absent.
func (e *Entity) Get(name string) Component {
	return e.components[name]
}

// Set overwrites the named fields on the entity's instance of the given
// component. Returns ErrMissingComponent if the entity does not hold the
// component, and ErrUnknownField if a field name does not exist on it.
func (e *Entity) Set(name string, fields map[string]any) error {
	c, ok := e.components[name]
	if !ok {
		return fmt.Errorf("set %q: %w", name, ErrMissingComponent)
	}
	return setFields(c, fields)
}

// Has reports whether the entity holds a component for every given name.
// Vacuously true for zero arguments.
func (e *Entity) Has(names ...string) bool {
	for _, name := range names {
		if _, ok := e.components[name]; !ok {
			return false
		}
	}
	return true
}

// Components returns the component names currently held, in no particular
// order.
func (e *Entity) Components() []string {
	names := make([]string, 0, len(e.components))
	for name := range e.components {
		names = append(names, name)
	}
	return names
}

// Systems returns the systems currently matching this entity, in the order
// they started matching. The slice is a read-only projection of the
// scene-owned membership relation; mutating it has no effect. Detached
// entities have no member systems.
func (e *Entity) Systems() []System {
	if e.scene == nil {
		return nil
	}
	return e.scene.members.systemsOf(e.key)
}

// Dispatch invokes the named hook on every member system that registers
// it, passing (entity, param). Systems are visited in the order they
// started matching this entity. Systems without the hook are skipped.
//
// This is the single-entity dispatch path; Scene.Dispatch broadcasts to
// all systems over their full matched sets.
func (e *Entity) Dispatch(hook string, param any) {
	if e.scene == nil {
		return
	}
	// Snapshot: hooks may mutate membership while we iterate.
	for _, sys := range e.scene.members.systemsOf(e.key) {
		if fn, ok := sys.Hook(hook); ok {
			fn(e, param)
		}
	}
}

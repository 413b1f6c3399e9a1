package ecs

import "errors"

// Sentinel errors returned by Scene and Entity operations.
// Callers should match with errors.Is, as returned errors carry
// call-site context via wrapping.
var (
	// ErrMissingComponent is returned by Entity.Set when the entity does
	// not hold a component with the given name.
	ErrMissingComponent = errors.New("entity does not hold component")

	// ErrUnknownField is returned by Entity.Set when a field name does not
	// exist on the stored component, or cannot be assigned.
	ErrUnknownField = errors.New("no settable field on component")

	// ErrEntityOwned is returned by Scene.AddEntity when the entity is
	// already attached to a scene. Re-adding is rejected rather than
	// reconciled so stale membership can never be duplicated.
	ErrEntityOwned = errors.New("entity already attached to a scene")

	// ErrEntityNotFound is returned by scene operations that require the
	// entity to be currently present in the scene.
	ErrEntityNotFound = errors.New("entity not in scene")

	// ErrSystemOwned is returned by Scene.AddSystem when the system is
	// already attached to a scene (this one or another).
	ErrSystemOwned = errors.New("system already attached to a scene")

	// ErrSystemNotFound is returned by Scene.RemoveSystem when the system
	// is not attached to this scene.
	ErrSystemNotFound = errors.New("system not in scene")

	// ErrIDCollision is returned by Scene.AddEntity when an explicit id is
	// already in use. The colliding add is rejected; the earlier entity
	// keeps its id and memberships.
	ErrIDCollision = errors.New("entity id already in use")
)

package ecs

import (
	"fmt"
	"slices"
	"strconv"

	"go.uber.org/zap"
)

// Scene owns all entities and all systems and is the sole authority over
// the membership relation between them. Every mutation goes through the
// scene: it assigns entity ids, recomputes membership, and fires system
// lifecycle hooks. Entities and systems never talk to each other except
// through the back-references the scene establishes.
//
// A Scene is single-threaded: no operation blocks, and concurrent
// mutation is not supported. Dispatch hooks may themselves mutate the
// scene; every dispatch loop iterates over a snapshot, so entities and
// systems added or removed mid-dispatch take effect on the next pass.
type Scene struct {
	entities map[string]*Entity
	order    []*Entity // insertion order; map iteration alone is not stable
	systems  []System
	members  *membership

	idCounter  uint64 // fallback id source, scene-owned
	entityKey  uint64 // internal membership keys, never reused
	systemKey  uint32
	generation uint64 // bumped on entity/component mutation, drives query cache

	queries *queryCache
	logger  *zap.Logger
}

// SceneOption configures a Scene at construction.
type SceneOption func(*Scene)

// WithLogger directs membership-transition and dispatch logging to the
// given logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) SceneOption {
	return func(s *Scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScene creates an empty scene.
func NewScene(opts ...SceneOption) *Scene {
	s := &Scene{
		entities:  make(map[string]*Entity),
		members:   newMembership(),
		entityKey: 1, // key 0 means detached
		systemKey: 1,
		queries:   newQueryCache(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateID returns the current counter value as a string and
// increments. Ids are never reused within a scene's lifetime, even after
// the corresponding entities are removed.
func (s *Scene) GenerateID() string {
	id := strconv.FormatUint(s.idCounter, 10)
	s.idCounter++
	return id
}

// AddEntity attaches a detached entity to the scene. The entity receives
// the explicit id if one is given, otherwise the next generated id; then
// every system in the scene, in the order the systems were added, is
// tested against it, and each fresh match records membership and fires
// the system's Init exactly once.
//
// Returns the entity for chaining. An entity already attached to a scene
// is rejected with ErrEntityOwned; an explicit id already in use is
// rejected with ErrIDCollision, leaving the earlier entity untouched.
func (s *Scene) AddEntity(e *Entity, id ...string) (*Entity, error) {
	if e.scene != nil {
		return nil, fmt.Errorf("add entity %q: %w", e.id, ErrEntityOwned)
	}

	var eid string
	if len(id) > 0 && id[0] != "" {
		eid = id[0]
		if _, exists := s.entities[eid]; exists {
			return nil, fmt.Errorf("add entity: id %q: %w", eid, ErrIDCollision)
		}
	} else {
		// An auto id can land on an earlier explicit id; skip past those
		// rather than overwrite.
		for {
			eid = s.GenerateID()
			if _, exists := s.entities[eid]; !exists {
				break
			}
		}
	}

	e.id = eid
	e.scene = s
	e.key = s.entityKey
	s.entityKey++
	s.entities[eid] = e
	s.order = append(s.order, e)
	s.generation++

	for _, sys := range s.systems {
		if sys.Test(e) {
			s.match(e, sys)
		}
	}
	return e, nil
}

// RemoveEntity detaches an entity from the scene. Every system currently
// matching it fires Exit exactly once and drops it from its matched set;
// the entity's id, scene reference, and memberships are cleared. The
// entity object and its components survive; the caller keeps the
// reference. Returns ErrEntityNotFound if the entity is not in this
// scene.
func (s *Scene) RemoveEntity(e *Entity) error {
	if e == nil || e.scene != s {
		return fmt.Errorf("remove entity: %w", ErrEntityNotFound)
	}

	for _, sys := range s.members.systemsOf(e.key) {
		sys.Exit(e)
		s.members.unlink(e, sys)
		s.logger.Debug("membership ended",
			zap.String("entity", e.id),
			zap.String("system", systemName(sys)))
	}
	s.members.byEntity.Del(e.key)

	delete(s.entities, e.id)
	if i := slices.Index(s.order, e); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	s.generation++

	e.id = ""
	e.scene = nil
	e.key = 0
	return nil
}

// GetEntity returns the entity with the given id, or nil if absent.
func (s *Scene) GetEntity(id string) *Entity {
	return s.entities[id]
}

// Len returns the number of entities currently in the scene.
func (s *Scene) Len() int {
	return len(s.entities)
}

// AddSystem appends a system to the scene's ordered system list and scans
// every entity already present, in insertion order: each one satisfying
// the system's predicate records membership and fires Init. A system with
// the default predicate matches nothing and fires no Init calls.
//
// A system still attached to any scene is rejected with ErrSystemOwned;
// sharing one system object across scenes would leave its matched set
// pointing at the wrong scene's entities.
func (s *Scene) AddSystem(sys System) error {
	b := sys.base()
	if b.scene != nil {
		return fmt.Errorf("add system %s: %w", systemName(sys), ErrSystemOwned)
	}

	b.scene = s
	b.key = s.systemKey
	s.systemKey++
	s.systems = append(s.systems, sys)

	for _, e := range s.order {
		if sys.Test(e) {
			s.match(e, sys)
		}
	}
	return nil
}

// RemoveSystem detaches a system from the scene. Every entity it matches
// fires Exit exactly once and both membership projections are cleared.
// Returns ErrSystemNotFound if the system is not attached to this scene.
func (s *Scene) RemoveSystem(sys System) error {
	b := sys.base()
	if b.scene != s {
		return fmt.Errorf("remove system %s: %w", systemName(sys), ErrSystemNotFound)
	}

	for _, e := range s.members.entitiesOf(b.key) {
		sys.Exit(e)
		s.members.unlink(e, sys)
	}
	s.members.bySystem.Del(b.key)

	if i := slices.Index(s.systems, sys); i >= 0 {
		s.systems = slices.Delete(s.systems, i, i+1)
	}
	b.scene = nil
	return nil
}

// Systems returns the scene's systems in the order they were added. The
// slice is a copy.
func (s *Scene) Systems() []System {
	return slices.Clone(s.systems)
}

// Dispatch broadcasts the named hook scene-wide: every system that
// registers it, in the order the systems were added, is invoked once per
// entity in its matched set, in that system's own match order, with
// (entity, param).
//
// Both the system list and each matched set are snapshotted before hooks
// run, so hooks are free to add or remove entities and systems; such
// mutations become visible to the next dispatch.
func (s *Scene) Dispatch(hook string, param any) {
	for _, sys := range slices.Clone(s.systems) {
		fn, ok := sys.Hook(hook)
		if !ok {
			continue
		}
		for _, e := range s.members.entitiesOf(sys.base().key) {
			fn(e, param)
		}
	}
}

// Query returns every entity holding all the given components, in the
// order the entities were added to the scene. Zero arguments match every
// entity. Query is read-only: it never touches membership, and repeated
// calls without intervening mutation return equal sequences.
func (s *Scene) Query(names ...string) []*Entity {
	return s.queries.lookup(s, names)
}

// AddComponent adds a component to an entity in this scene and reconciles
// membership: every system not already matching the entity re-evaluates
// its predicate, and each fresh match records membership and fires Init.
//
// Systems already matching are never re-evaluated, so membership only
// grows on this path. Replacing or logically removing data that a
// matching system's predicate depends on does not shrink membership;
// callers needing shrink semantics remove and re-add the entity.
func (s *Scene) AddComponent(e *Entity, c Component) error {
	if e == nil || e.scene != s {
		return fmt.Errorf("add component %q: %w", c.Name(), ErrEntityNotFound)
	}

	e.Add(c)

	for _, sys := range s.systems {
		if s.members.contains(e, sys) {
			continue
		}
		if sys.Test(e) {
			s.match(e, sys)
		}
	}
	return nil
}

// match records a fresh membership and fires the system's Init. Membership
// is recorded first so the hook observes the entity as a member.
func (s *Scene) match(e *Entity, sys System) {
	s.members.link(e, sys)
	sys.Init(e)
	s.logger.Debug("membership started",
		zap.String("entity", e.id),
		zap.String("system", systemName(sys)))
}

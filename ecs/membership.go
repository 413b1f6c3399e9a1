package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// membership is the entity-system relation, owned exclusively by the
// Scene. It is one relation indexed both ways: by the entity's internal
// key and by the system's internal key. Entities and systems expose
// read-only projections of it (Entity.Systems, BaseSystem.Entities) and
// never write to it themselves.
//
// Both index sides keep match order: a slice entry is appended when a
// system starts matching an entity, so systemsOf reports the order systems
// started matching (the Entity.Dispatch order) and entitiesOf reports the
// order entities matched (the per-system dispatch order).
type membership struct {
	byEntity *intmap.Map[uint64, []System]
	bySystem *intmap.Map[uint32, []*Entity]
}

func newMembership() *membership {
	return &membership{
		byEntity: intmap.New[uint64, []System](64),
		bySystem: intmap.New[uint32, []*Entity](16),
	}
}

// link records that sys now matches e. Both index sides are updated in one
// place so the two views cannot diverge.
func (m *membership) link(e *Entity, sys System) {
	skey := sys.base().key
	systems, _ := m.byEntity.Get(e.key)
	m.byEntity.Put(e.key, append(systems, sys))
	entities, _ := m.bySystem.Get(skey)
	m.bySystem.Put(skey, append(entities, e))
}

// unlink removes the (e, sys) pair, preserving the order of the remaining
// entries on both sides. No-op if the pair is not linked.
func (m *membership) unlink(e *Entity, sys System) {
	skey := sys.base().key
	if systems, ok := m.byEntity.Get(e.key); ok {
		if i := slices.Index(systems, sys); i >= 0 {
			m.byEntity.Put(e.key, slices.Delete(systems, i, i+1))
		}
	}
	if entities, ok := m.bySystem.Get(skey); ok {
		if i := slices.Index(entities, e); i >= 0 {
			m.bySystem.Put(skey, slices.Delete(entities, i, i+1))
		}
	}
}

// contains reports whether sys currently matches e.
func (m *membership) contains(e *Entity, sys System) bool {
	systems, _ := m.byEntity.Get(e.key)
	return slices.Contains(systems, sys)
}

// systemsOf returns the systems matching the entity with the given key, in
// match order. The returned slice is a copy safe to hold across mutations.
func (m *membership) systemsOf(key uint64) []System {
	systems, _ := m.byEntity.Get(key)
	return slices.Clone(systems)
}

// entitiesOf returns the entities matched by the system with the given
// key, in match order. The returned slice is a copy safe to hold across
// mutations.
func (m *membership) entitiesOf(key uint32) []*Entity {
	entities, _ := m.bySystem.Get(key)
	return slices.Clone(entities)
}

package ecs_test

import (
	"testing"

	"github.com/plus3/scenekit/ecs"
)

// Common test component types
type Position struct {
	X, Y float64
}

func (*Position) Name() string { return "Position" }

type Velocity struct {
	DX, DY float64
}

func (*Velocity) Name() string { return "Velocity" }

type Health struct {
	Current int
	Max     int
}

func (*Health) Name() string { return "Health" }

type Sprite struct {
	Image string
	Layer int
}

func (*Sprite) Name() string { return "Sprite" }

// Tag is a value component: readable but not settable via Entity.Set.
type Tag string

func (Tag) Name() string { return "Tag" }

// recorderSystem matches entities holding the configured components and
// records every lifecycle and hook invocation in order.
type recorderSystem struct {
	ecs.BaseSystem
	wants []string

	inits  []*ecs.Entity
	exits  []*ecs.Entity
	events []string
}

func newRecorderSystem(label string, wants ...string) *recorderSystem {
	s := &recorderSystem{wants: wants}
	s.RegisterHook("update", func(e *ecs.Entity, param any) {
		s.events = append(s.events, label+":update:"+e.ID())
	})
	s.RegisterHook("ping", func(e *ecs.Entity, param any) {
		s.events = append(s.events, label+":ping:"+e.ID())
	})
	return s
}

func (s *recorderSystem) Test(e *ecs.Entity) bool { return e.Has(s.wants...) }
func (s *recorderSystem) Init(e *ecs.Entity)      { s.inits = append(s.inits, e) }
func (s *recorderSystem) Exit(e *ecs.Entity)      { s.exits = append(s.exits, e) }

// noopSystem keeps every BaseSystem default.
type noopSystem struct {
	ecs.BaseSystem
}

// checkSymmetry asserts the membership invariant: for every (entity,
// system) pair, the entity appears in the system's matched set exactly
// when the system appears in the entity's member set, and exactly when
// the predicate holds for an attached pair.
func checkSymmetry(t *testing.T, scene *ecs.Scene) {
	t.Helper()

	for _, sys := range scene.Systems() {
		matchedBySystem := make(map[*ecs.Entity]bool)
		for _, e := range base(sys).Entities() {
			matchedBySystem[e] = true
		}
		for _, e := range scene.Query() {
			inEntity := false
			for _, member := range e.Systems() {
				if member == sys {
					inEntity = true
					break
				}
			}
			if matchedBySystem[e] != inEntity {
				t.Fatalf("membership views diverge for entity %q", e.ID())
			}
		}
	}
}

// base extracts the embedded BaseSystem accessors from a System value.
func base(sys ecs.System) interface{ Entities() []*ecs.Entity } {
	return sys.(interface{ Entities() []*ecs.Entity })
}

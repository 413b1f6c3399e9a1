package main

import (
	"fmt"
	"math/rand"

	"github.com/plus3/scenekit/ecs"
)

// stressComponent is a generated pool component. The pool gives every
// instance a fixed name ("C000".."Cnnn") so predicates and queries can
// reference component kinds by name.
type stressComponent struct {
	name string

	A, B  float64
	Count int
}

func (c *stressComponent) Name() string { return c.name }

// componentPool pre-computes the pool's component names.
func componentPool(size int) []string {
	names := make([]string, size)
	for i := range names {
		names[i] = fmt.Sprintf("C%03d", i)
	}
	return names
}

// randomComponents draws a random subset of the pool for one entity.
func randomComponents(rng *rand.Rand, pool []string, maxPerEntity int) []ecs.Component {
	count := rng.Intn(maxPerEntity) + 1
	picked := rng.Perm(len(pool))[:min(count, len(pool))]

	components := make([]ecs.Component, 0, len(picked))
	for _, idx := range picked {
		components = append(components, &stressComponent{
			name: pool[idx],
			A:    rng.Float64(),
			B:    rng.Float64(),
		})
	}
	return components
}

// stressSystem matches entities holding a random subset of pool
// components and mutates their fields every update tick.
type stressSystem struct {
	ecs.BaseSystem
	wants []string
}

func newStressSystem(rng *rand.Rand, pool []string) *stressSystem {
	count := rng.Intn(3) + 1
	picked := rng.Perm(len(pool))[:min(count, len(pool))]

	wants := make([]string, 0, len(picked))
	for _, idx := range picked {
		wants = append(wants, pool[idx])
	}

	s := &stressSystem{wants: wants}
	s.RegisterHook("update", s.update)
	return s
}

func (s *stressSystem) Test(e *ecs.Entity) bool {
	return e.Has(s.wants...)
}

func (s *stressSystem) update(e *ecs.Entity, param any) {
	dt := param.(float64)
	for _, name := range s.wants {
		if c, ok := e.Get(name).(*stressComponent); ok {
			c.A += c.B * dt
			c.Count++
		}
	}
}

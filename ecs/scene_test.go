package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/scenekit/ecs"
)

func TestSceneGenerateID(t *testing.T) {
	scene := ecs.NewScene()

	assert.Equal(t, "0", scene.GenerateID())
	assert.Equal(t, "1", scene.GenerateID())
	assert.Equal(t, "2", scene.GenerateID())
}

func TestSceneIDsNotReusedAfterRemoval(t *testing.T) {
	scene := ecs.NewScene()

	e1, err := scene.AddEntity(ecs.NewEntity())
	require.NoError(t, err)
	id1 := e1.ID()

	require.NoError(t, scene.RemoveEntity(e1))

	e2, err := scene.AddEntity(ecs.NewEntity())
	require.NoError(t, err)
	assert.NotEqual(t, id1, e2.ID())
}

func TestSceneAddEntity(t *testing.T) {
	t.Run("assigns id and returns entity", func(t *testing.T) {
		scene := ecs.NewScene()

		e, err := scene.AddEntity(ecs.NewEntity(&Position{}))
		require.NoError(t, err)
		assert.NotEmpty(t, e.ID())
		assert.Same(t, scene, e.Scene())
		assert.Same(t, e, scene.GetEntity(e.ID()))
	})

	t.Run("explicit id", func(t *testing.T) {
		scene := ecs.NewScene()

		e, err := scene.AddEntity(ecs.NewEntity(), "player")
		require.NoError(t, err)
		assert.Equal(t, "player", e.ID())
		assert.Same(t, e, scene.GetEntity("player"))
	})

	t.Run("explicit id collision rejected", func(t *testing.T) {
		scene := ecs.NewScene()

		first, err := scene.AddEntity(ecs.NewEntity(), "player")
		require.NoError(t, err)

		_, err = scene.AddEntity(ecs.NewEntity(), "player")
		assert.ErrorIs(t, err, ecs.ErrIDCollision)

		// The earlier entity keeps its id and scene.
		assert.Same(t, first, scene.GetEntity("player"))
		assert.Equal(t, "player", first.ID())
	})

	t.Run("auto id skips over explicit ids", func(t *testing.T) {
		scene := ecs.NewScene()

		_, err := scene.AddEntity(ecs.NewEntity(), "0")
		require.NoError(t, err)

		e, err := scene.AddEntity(ecs.NewEntity())
		require.NoError(t, err)
		assert.Equal(t, "1", e.ID())
	})

	t.Run("double add rejected", func(t *testing.T) {
		scene := ecs.NewScene()

		e, err := scene.AddEntity(ecs.NewEntity())
		require.NoError(t, err)

		_, err = scene.AddEntity(e)
		assert.ErrorIs(t, err, ecs.ErrEntityOwned)
	})

	t.Run("entity from another scene rejected", func(t *testing.T) {
		sceneA := ecs.NewScene()
		sceneB := ecs.NewScene()

		e, err := sceneA.AddEntity(ecs.NewEntity())
		require.NoError(t, err)

		_, err = sceneB.AddEntity(e)
		assert.ErrorIs(t, err, ecs.ErrEntityOwned)
	})
}

func TestSceneWithNoSystems(t *testing.T) {
	scene := ecs.NewScene()

	e, err := scene.AddEntity(ecs.NewEntity(&Position{}))
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID())

	_, err = scene.AddEntity(ecs.NewEntity())
	require.NoError(t, err)

	assert.Len(t, scene.Query(), 2)
}

func TestSceneMembershipOnAdd(t *testing.T) {
	scene := ecs.NewScene()

	movers := newRecorderSystem("movers", "Position", "Velocity")
	require.NoError(t, scene.AddSystem(movers))

	walker, err := scene.AddEntity(ecs.NewEntity(&Position{}, &Velocity{}))
	require.NoError(t, err)
	rock, err := scene.AddEntity(ecs.NewEntity(&Position{}))
	require.NoError(t, err)

	assert.Equal(t, []*ecs.Entity{walker}, movers.Entities())
	assert.Equal(t, []*ecs.Entity{walker}, movers.inits)
	assert.Empty(t, rock.Systems())
	checkSymmetry(t, scene)
}

func TestSceneAddSystemScansExistingEntities(t *testing.T) {
	scene := ecs.NewScene()

	e, err := scene.AddEntity(ecs.NewEntity(&Position{}))
	require.NoError(t, err)
	other, err := scene.AddEntity(ecs.NewEntity(&Health{}))
	require.NoError(t, err)

	sys := newRecorderSystem("late", "Position")
	require.NoError(t, scene.AddSystem(sys))

	assert.Equal(t, []*ecs.Entity{e}, sys.Entities())
	assert.Equal(t, []*ecs.Entity{e}, sys.inits)
	assert.Empty(t, other.Systems())
	checkSymmetry(t, scene)
}

func TestSceneDefaultSystemMatchesNothing(t *testing.T) {
	scene := ecs.NewScene()

	_, err := scene.AddEntity(ecs.NewEntity(&Position{}))
	require.NoError(t, err)

	plain := &noopSystem{}
	require.NoError(t, scene.AddSystem(plain))

	assert.Empty(t, plain.Entities())
	assert.False(t, plain.Test(ecs.NewEntity(&Position{})))
}

func TestSceneSystemOwnership(t *testing.T) {
	t.Run("system cannot join two scenes", func(t *testing.T) {
		sceneA := ecs.NewScene()
		sceneB := ecs.NewScene()

		sys := newRecorderSystem("shared", "Position")
		require.NoError(t, sceneA.AddSystem(sys))

		err := sceneB.AddSystem(sys)
		assert.ErrorIs(t, err, ecs.ErrSystemOwned)
		assert.Same(t, sceneA, sys.Scene())
	})

	t.Run("system cannot be added twice", func(t *testing.T) {
		scene := ecs.NewScene()

		sys := newRecorderSystem("twice", "Position")
		require.NoError(t, scene.AddSystem(sys))
		assert.ErrorIs(t, scene.AddSystem(sys), ecs.ErrSystemOwned)
		assert.Len(t, scene.Systems(), 1)
	})
}

func TestSceneAddComponentGrowsMembership(t *testing.T) {
	scene := ecs.NewScene()

	movers := newRecorderSystem("movers", "Position")
	require.NoError(t, scene.AddSystem(movers))

	e, err := scene.AddEntity(ecs.NewEntity(&Velocity{}))
	require.NoError(t, err)
	require.Empty(t, movers.Entities())
	require.Empty(t, movers.inits)

	require.NoError(t, scene.AddComponent(e, &Position{}))

	assert.Equal(t, []*ecs.Entity{e}, movers.Entities())
	assert.Len(t, movers.inits, 1, "init fires exactly once per transition")
	checkSymmetry(t, scene)

	// Already-matching systems are never re-evaluated: adding more
	// components cannot double membership or re-fire init.
	require.NoError(t, scene.AddComponent(e, &Health{}))
	assert.Len(t, movers.Entities(), 1)
	assert.Len(t, movers.inits, 1)
}

func TestSceneAddComponentDetachedEntity(t *testing.T) {
	scene := ecs.NewScene()

	err := scene.AddComponent(ecs.NewEntity(), &Position{})
	assert.ErrorIs(t, err, ecs.ErrEntityNotFound)
}

func TestSceneMembershipNeverShrinksOnReplace(t *testing.T) {
	// Membership only grows through AddComponent; replacing data a
	// matching predicate depends on does not shrink it. Shrink semantics
	// require removing and re-adding the entity.
	scene := ecs.NewScene()

	healthy := newRecorderSystem("healthy", "Health")
	require.NoError(t, scene.AddSystem(healthy))

	e, err := scene.AddEntity(ecs.NewEntity(&Health{Current: 10, Max: 10}))
	require.NoError(t, err)
	require.Len(t, healthy.Entities(), 1)

	// Direct low-level Add replaces the component; membership is stale by
	// design until the entity is removed and re-added.
	e.Add(&Health{Current: 0, Max: 10})
	assert.Len(t, healthy.Entities(), 1)
	assert.Empty(t, healthy.exits)

	require.NoError(t, scene.RemoveEntity(e))
	assert.Len(t, healthy.exits, 1)

	_, err = scene.AddEntity(e)
	require.NoError(t, err)
	assert.Len(t, healthy.Entities(), 1)
	assert.Len(t, healthy.inits, 2)
}

func TestSceneRemoveEntity(t *testing.T) {
	t.Run("fires exit once per member system", func(t *testing.T) {
		scene := ecs.NewScene()

		s1 := newRecorderSystem("s1", "Position")
		s2 := newRecorderSystem("s2", "Position")
		require.NoError(t, scene.AddSystem(s1))
		require.NoError(t, scene.AddSystem(s2))

		e, err := scene.AddEntity(ecs.NewEntity(&Position{}))
		require.NoError(t, err)
		originalID := e.ID()

		require.NoError(t, scene.RemoveEntity(e))

		assert.Equal(t, []*ecs.Entity{e}, s1.exits)
		assert.Equal(t, []*ecs.Entity{e}, s2.exits)
		assert.Equal(t, "", e.ID())
		assert.Nil(t, e.Scene())
		assert.Nil(t, scene.GetEntity(originalID))
		assert.Empty(t, s1.Entities())
		assert.Empty(t, s2.Entities())
		checkSymmetry(t, scene)
	})

	t.Run("entity keeps its components", func(t *testing.T) {
		scene := ecs.NewScene()

		e, err := scene.AddEntity(ecs.NewEntity(&Position{X: 5}))
		require.NoError(t, err)
		require.NoError(t, scene.RemoveEntity(e))

		assert.Equal(t, &Position{X: 5}, e.Get("Position"))
	})

	t.Run("not in scene", func(t *testing.T) {
		scene := ecs.NewScene()

		err := scene.RemoveEntity(ecs.NewEntity())
		assert.ErrorIs(t, err, ecs.ErrEntityNotFound)
	})

	t.Run("wrong scene", func(t *testing.T) {
		sceneA := ecs.NewScene()
		sceneB := ecs.NewScene()

		e, err := sceneA.AddEntity(ecs.NewEntity())
		require.NoError(t, err)

		assert.ErrorIs(t, sceneB.RemoveEntity(e), ecs.ErrEntityNotFound)
		assert.Same(t, sceneA, e.Scene())
	})
}

func TestSceneRemoveSystem(t *testing.T) {
	scene := ecs.NewScene()

	sys := newRecorderSystem("sys", "Position")
	require.NoError(t, scene.AddSystem(sys))

	e1, err := scene.AddEntity(ecs.NewEntity(&Position{}))
	require.NoError(t, err)
	e2, err := scene.AddEntity(ecs.NewEntity(&Position{}))
	require.NoError(t, err)

	require.NoError(t, scene.RemoveSystem(sys))

	assert.Equal(t, []*ecs.Entity{e1, e2}, sys.exits)
	assert.Empty(t, sys.Entities())
	assert.Empty(t, e1.Systems())
	assert.Empty(t, e2.Systems())
	assert.Nil(t, sys.Scene())
	assert.Empty(t, scene.Systems())

	// A detached system may join another scene.
	other := ecs.NewScene()
	assert.NoError(t, other.AddSystem(sys))
}

func TestSceneRemoveSystemNotAttached(t *testing.T) {
	scene := ecs.NewScene()

	err := scene.RemoveSystem(&noopSystem{})
	assert.ErrorIs(t, err, ecs.ErrSystemNotFound)
}

func TestSceneQuery(t *testing.T) {
	scene := ecs.NewScene()

	a, err := scene.AddEntity(ecs.NewEntity(&Position{}, &Velocity{}))
	require.NoError(t, err)
	b, err := scene.AddEntity(ecs.NewEntity(&Position{}))
	require.NoError(t, err)
	c, err := scene.AddEntity(ecs.NewEntity(&Health{}))
	require.NoError(t, err)

	t.Run("filters by component set", func(t *testing.T) {
		assert.Equal(t, []*ecs.Entity{a, b}, scene.Query("Position"))
		assert.Equal(t, []*ecs.Entity{a}, scene.Query("Position", "Velocity"))
		assert.Empty(t, scene.Query("Position", "Health"))
	})

	t.Run("zero components matches everything in add order", func(t *testing.T) {
		assert.Equal(t, []*ecs.Entity{a, b, c}, scene.Query())
	})

	t.Run("idempotent without mutation", func(t *testing.T) {
		first := scene.Query("Position")
		second := scene.Query("Position")
		assert.Equal(t, first, second)
	})

	t.Run("name order does not matter", func(t *testing.T) {
		assert.Equal(t, scene.Query("Position", "Velocity"), scene.Query("Velocity", "Position"))
	})

	t.Run("sees later mutations", func(t *testing.T) {
		require.Equal(t, []*ecs.Entity{c}, scene.Query("Health"))

		require.NoError(t, scene.AddComponent(a, &Health{}))
		assert.Equal(t, []*ecs.Entity{a, c}, scene.Query("Health"))

		require.NoError(t, scene.RemoveEntity(c))
		assert.Equal(t, []*ecs.Entity{a}, scene.Query("Health"))
	})

	t.Run("reflects direct low-level adds", func(t *testing.T) {
		scene := ecs.NewScene()

		e, err := scene.AddEntity(ecs.NewEntity())
		require.NoError(t, err)
		require.Empty(t, scene.Query("Sprite"))

		// Entity.Add skips membership reconciliation but queries track
		// component data, not membership.
		e.Add(&Sprite{})
		require.True(t, e.Has("Sprite"))
		assert.Equal(t, []*ecs.Entity{e}, scene.Query("Sprite"))
	})

	t.Run("no membership side effects", func(t *testing.T) {
		sys := newRecorderSystem("sys", "NoSuchComponent")
		require.NoError(t, scene.AddSystem(sys))

		scene.Query("Position")
		assert.Empty(t, sys.inits)
		checkSymmetry(t, scene)
	})
}

func TestSceneDispatch(t *testing.T) {
	t.Run("system order then match order", func(t *testing.T) {
		scene := ecs.NewScene()

		s1 := newRecorderSystem("s1", "Position")
		s2 := newRecorderSystem("s2", "Position")
		require.NoError(t, scene.AddSystem(s1))
		require.NoError(t, scene.AddSystem(s2))

		a, err := scene.AddEntity(ecs.NewEntity(&Position{}))
		require.NoError(t, err)
		b, err := scene.AddEntity(ecs.NewEntity(&Position{}))
		require.NoError(t, err)

		scene.Dispatch("update", 0.016)

		assert.Equal(t, []string{"s1:update:" + a.ID(), "s1:update:" + b.ID()}, s1.events)
		assert.Equal(t, []string{"s2:update:" + a.ID(), "s2:update:" + b.ID()}, s2.events)
	})

	t.Run("passes param through", func(t *testing.T) {
		scene := ecs.NewScene()

		var got any
		sys := &noopSystem{}
		require.NoError(t, scene.AddSystem(sys))

		catcher := newRecorderSystem("catcher", "Position")
		catcher.RegisterHook("tick", func(e *ecs.Entity, param any) { got = param })
		require.NoError(t, scene.AddSystem(catcher))

		_, err := scene.AddEntity(ecs.NewEntity(&Position{}))
		require.NoError(t, err)

		scene.Dispatch("tick", 1.5)
		assert.Equal(t, 1.5, got)
	})

	t.Run("hooks may mutate the scene", func(t *testing.T) {
		scene := ecs.NewScene()

		reaper := newRecorderSystem("reaper", "Health")
		reaper.RegisterHook("update", func(e *ecs.Entity, param any) {
			_ = scene.RemoveEntity(e)
		})
		require.NoError(t, scene.AddSystem(reaper))

		_, err := scene.AddEntity(ecs.NewEntity(&Health{}))
		require.NoError(t, err)
		_, err = scene.AddEntity(ecs.NewEntity(&Health{}))
		require.NoError(t, err)

		scene.Dispatch("update", nil)

		assert.Equal(t, 0, scene.Len())
		assert.Len(t, reaper.exits, 2)
		checkSymmetry(t, scene)
	})
}

func TestSceneMembershipSymmetryAfterEveryMutation(t *testing.T) {
	scene := ecs.NewScene()

	movers := newRecorderSystem("movers", "Position", "Velocity")
	drawers := newRecorderSystem("drawers", "Sprite")
	require.NoError(t, scene.AddSystem(movers))
	checkSymmetry(t, scene)

	e1, err := scene.AddEntity(ecs.NewEntity(&Position{}, &Velocity{}))
	require.NoError(t, err)
	checkSymmetry(t, scene)

	e2, err := scene.AddEntity(ecs.NewEntity(&Position{}, &Sprite{}))
	require.NoError(t, err)
	checkSymmetry(t, scene)

	require.NoError(t, scene.AddSystem(drawers))
	checkSymmetry(t, scene)

	require.NoError(t, scene.AddComponent(e2, &Velocity{}))
	checkSymmetry(t, scene)

	require.NoError(t, scene.RemoveEntity(e1))
	checkSymmetry(t, scene)

	require.NoError(t, scene.RemoveSystem(movers))
	checkSymmetry(t, scene)

	assert.Equal(t, []*ecs.Entity{e2}, drawers.Entities())
}

package entity

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/common"
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/levels"
	"github.com/milk9111/featherfall/obj"
	"github.com/milk9111/featherfall/physics"
	"github.com/stretchr/testify/require"
)

func loadHollow(t *testing.T) (*ecs.World, *Scene) {
	t.Helper()
	pf, err := LoadPrefabs()
	require.NoError(t, err)
	lvl, err := levels.Load("hollow.json")
	require.NoError(t, err)

	w := ecs.NewWorld()
	scene, err := LoadLevelToWorld(w, lvl, pf, SceneOptions{
		ScreenW: common.BaseWidth,
		ScreenH: common.BaseHeight,
		Clock:   common.NewTickClock(1.0 / common.TicksPerSecond),
	})
	require.NoError(t, err)
	return w, scene
}

func TestLoadLevelSpawnsPlacements(t *testing.T) {
	w, scene := loadHollow(t)

	require.True(t, ecs.IsAlive(w, scene.Player))
	require.True(t, ecs.Has(w, scene.Player, component.PlayerTagComponent.Kind()))
	require.True(t, ecs.Has(w, scene.Player, component.HurtboxComponent.Kind()))
	require.Len(t, scene.Crows, 2)
	require.Equal(t, 2, ecs.Count(w, component.CrowComponent.Kind()))

	require.True(t, ecs.Has(w, scene.Camera, component.CameraComponent.Kind()))
	require.Equal(t, 1, ecs.Count(w, component.FadeComponent.Kind()))
	require.Positive(t, ecs.Count(w, component.OneWayPlatformComponent.Kind()))

	_, lvl, ok := ecs.First(w, component.LevelComponent.Kind())
	require.True(t, ok)
	require.Equal(t, "hollow", lvl.Data.Name)
	require.NotNil(t, w.PhysicsWorld())
}

func TestLoadLevelPlayerStandsOnCellBottom(t *testing.T) {
	w, scene := loadHollow(t)
	p, ok := ecs.Get(w, scene.Player, component.PlayerComponent.Kind())
	require.True(t, ok)

	// Placement row 12 of 15 at 16px tiles: the cell bottom is y=32.
	bottom := p.Body.Position.Y - 10
	require.InDelta(t, 32.0, bottom, 1e-9)
}

func TestLoadLevelAirborneProp(t *testing.T) {
	w, scene := loadHollow(t)
	var states []string
	for _, e := range scene.Crows {
		c, ok := ecs.Get(w, e, component.CrowComponent.Kind())
		require.True(t, ok)
		states = append(states, c.State())
	}
	require.ElementsMatch(t, []string{obj.StateIdleGround, obj.StateIdleAir}, states)
}

func TestLoadLevelNeedsPlayer(t *testing.T) {
	pf, err := LoadPrefabs()
	require.NoError(t, err)
	lvl, err := levels.Parse([]byte(`{"name":"empty","tile_size":16,"rows":["###","#.#","###"]}`))
	require.NoError(t, err)

	_, err = LoadLevelToWorld(ecs.NewWorld(), lvl, pf, SceneOptions{Clock: common.NewTickClock(1.0 / 60)})
	require.ErrorIs(t, err, obj.ErrNoPlayer)
}

func TestLoadLevelRejectsTwoPlayers(t *testing.T) {
	pf, err := LoadPrefabs()
	require.NoError(t, err)
	lvl, err := levels.Parse([]byte(`{
		"name": "twins", "tile_size": 16,
		"rows": ["#####", "#...#", "#####"],
		"entities": [{"type": "player", "x": 1, "y": 1}, {"type": "player", "x": 3, "y": 1}]
	}`))
	require.NoError(t, err)

	_, err = LoadLevelToWorld(ecs.NewWorld(), lvl, pf, SceneOptions{Clock: common.NewTickClock(1.0 / 60)})
	require.Error(t, err)
}

func TestSpawnFeatherFromSenses(t *testing.T) {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(physics.NewSpace()))
	senses := NewCrowSenses(w, nil)

	_, ok := senses.Target()
	require.False(t, ok)
	senses.SetTarget(cp.Vector{X: 4, Y: 2}, true)
	pos, ok := senses.Target()
	require.True(t, ok)
	require.Equal(t, cp.Vector{X: 4, Y: 2}, pos)

	require.NoError(t, senses.SpawnFeather(cp.Vector{X: 1, Y: 1}, 90))
	e, p, ok := ecs.First(w, component.ProjectileComponent.Kind())
	require.True(t, ok)
	require.Equal(t, 90.0, p.Heading)
	require.True(t, ecs.Has(w, e, component.FeatherTagComponent.Kind()))

	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	require.Zero(t, tr.Rotation, "heading 90 points straight up")

	events := w.Events().Drain()
	require.Len(t, events, 1)
	require.Equal(t, ecs.EventSpawned, events[0].Kind)
}

func TestNewAttackNeedsOwnerTransform(t *testing.T) {
	w := ecs.NewWorld()
	owner := ecs.CreateEntity(w)
	_, err := NewAttack(w, owner, obj.AttackRequest{Size: cp.Vector{X: 4, Y: 4}, Damage: 1, Duration: 0.1})
	require.Error(t, err)

	require.NoError(t, ecs.Add(w, owner, component.TransformComponent.Kind(), &component.Transform{Position: cp.Vector{X: 10, Y: 5}}))
	e, err := NewAttack(w, owner, obj.AttackRequest{Offset: cp.Vector{X: 8}, Size: cp.Vector{X: 4, Y: 4}, Damage: 1, Duration: 0.1})
	require.NoError(t, err)

	hb, ok := ecs.Get(w, e, component.HitboxComponent.Kind())
	require.True(t, ok)
	require.True(t, hb.Follow)
	require.Equal(t, uint64(owner), hb.Owner)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	require.Equal(t, cp.Vector{X: 18, Y: 5}, tr.Position)
}

func TestStateChangesBecomeEvents(t *testing.T) {
	w, scene := loadHollow(t)
	w.Events().Drain()

	p, ok := ecs.Get(w, scene.Player, component.PlayerComponent.Kind())
	require.True(t, ok)
	require.Equal(t, obj.StateFalling, p.State())
	p.FixedUpdate()
	require.Equal(t, obj.StateGrounded, p.State())

	var got []any
	for _, evt := range w.Events().Drain() {
		if evt.Kind == ecs.EventStateChanged && evt.Entity == scene.Player {
			got = append(got, evt.Data)
		}
	}
	require.Equal(t, []any{obj.StateGrounded}, got)
}

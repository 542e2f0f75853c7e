package system

import (
	"testing"

	"github.com/milk9111/featherfall/common"
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/ecs/entity"
	"github.com/milk9111/featherfall/input"
	"github.com/milk9111/featherfall/levels"
	"github.com/milk9111/featherfall/obj"
	"github.com/stretchr/testify/require"
)

func TestPipelineRunsHollow(t *testing.T) {
	pf, err := entity.LoadPrefabs()
	require.NoError(t, err)
	lvl, err := levels.Load("hollow.json")
	require.NoError(t, err)

	clock := common.NewTickClock(1.0 / common.TicksPerSecond)
	w := ecs.NewWorld()
	scene, err := entity.LoadLevelToWorld(w, lvl, pf, entity.SceneOptions{
		ScreenW: common.BaseWidth,
		ScreenH: common.BaseHeight,
		Clock:   clock,
	})
	require.NoError(t, err)

	src := &input.Static{}
	p := NewPipeline(src, clock, scene.Senses)
	require.Len(t, p.FixedSystems(), 7)
	require.Len(t, p.FrameSystems(), 3)

	for i := 0; i < 90; i++ {
		clock.Advance(clock.FixedDelta())
		p.FixedUpdate(w)
		p.Update(w)
	}

	player, ok := ecs.Get(w, scene.Player, component.PlayerComponent.Kind())
	require.True(t, ok)
	require.Equal(t, obj.StateGrounded, player.State())

	tr, _ := ecs.Get(w, scene.Player, component.TransformComponent.Kind())
	require.Equal(t, player.Body.Position, tr.Position)
	require.Zero(t, ecs.Count(w, component.FadeComponent.Kind()), "the level fade has finished")

	target, ok := scene.Senses.Target()
	require.True(t, ok)
	require.Equal(t, tr.Position, target)
}

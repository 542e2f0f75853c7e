package entity

import (
	"fmt"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/common"
	"github.com/milk9111/featherfall/curve"
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/levels"
	"github.com/milk9111/featherfall/logging"
	"github.com/milk9111/featherfall/obj"
	"github.com/milk9111/featherfall/physics"
	"github.com/milk9111/featherfall/prefabs"
)

// Prefabs is every tuning file a level needs.
type Prefabs struct {
	Player  *prefabs.PlayerSpec
	Crow    *prefabs.CrowSpec
	Feather *prefabs.FeatherSpec
	Camera  *prefabs.CameraSpec
	Curves  *curve.Library
}

func LoadPrefabs() (*Prefabs, error) {
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	crow, err := prefabs.LoadCrowSpec()
	if err != nil {
		return nil, err
	}
	feather, err := prefabs.LoadFeatherSpec()
	if err != nil {
		return nil, err
	}
	camera, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, err
	}
	curves, err := prefabs.LoadCurves()
	if err != nil {
		return nil, err
	}
	return &Prefabs{Player: player, Crow: crow, Feather: feather, Camera: camera, Curves: curves}, nil
}

// SceneOptions are the runtime collaborators of a loaded level.
type SceneOptions struct {
	ScreenW, ScreenH int
	Clock            common.Clock
	// Rand seeds crow patrols; nil uses a fixed seed.
	Rand *rand.Rand
}

// Scene is what LoadLevelToWorld created.
type Scene struct {
	Level  *levels.Level
	Player ecs.Entity
	Camera ecs.Entity
	Crows  []ecs.Entity
	Senses *CrowSenses
}

// LoadLevelToWorld builds the level geometry and spawns every placement.
// A level must place exactly one player.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, pf *Prefabs, opts SceneOptions) (*Scene, error) {
	space, err := physics.BuildLevel(lvl)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", lvl.Name, err)
	}
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(space))

	levelEntity := ecs.CreateEntity(w)
	if err := ecs.Add(w, levelEntity, component.LevelComponent.Kind(), &component.Level{Data: lvl}); err != nil {
		return nil, err
	}

	for _, p := range space.Platforms() {
		if _, err := NewPlatform(w, p, lvl.EntryAngle()); err != nil {
			return nil, err
		}
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(len(lvl.Rows)), uint64(lvl.Width())))
	}

	scene := &Scene{Level: lvl, Senses: NewCrowSenses(w, pf.Feather)}
	for i, placement := range lvl.Entities {
		pos := lvl.WorldPos(placement.X, placement.Y)
		props, err := prefabs.DecodeProps[prefabs.PlacementProps](placement.Props)
		if err != nil {
			return nil, fmt.Errorf("level %s: entity %d: %w", lvl.Name, i, err)
		}

		switch placement.Type {
		case "player":
			if scene.Player.Valid() {
				return nil, fmt.Errorf("level %s: more than one player", lvl.Name)
			}
			// Stand on the bottom of the placement cell.
			pos.Y += (pf.Player.Collider.Size.Y - lvl.TileSize) / 2
			e, err := NewPlayerAt(w, pf.Player, pos, pf.Curves, opts.Clock)
			if err != nil {
				return nil, err
			}
			scene.Player = e
		case "crow":
			e, err := NewCrowAt(w, pf.Crow, pos, props, scene.Senses, opts.Clock, rng)
			if err != nil {
				return nil, err
			}
			scene.Crows = append(scene.Crows, e)
		default:
			logging.L().Warn("level: unknown entity type", "level", lvl.Name, "type", placement.Type)
		}
	}
	if !scene.Player.Valid() {
		return nil, fmt.Errorf("level %s: %w", lvl.Name, obj.ErrNoPlayer)
	}

	cam, err := NewCamera(w, pf.Camera, scene.Player, opts.ScreenW, opts.ScreenH, levelCameraBounds(lvl, space))
	if err != nil {
		return nil, err
	}
	scene.Camera = cam

	if _, err := NewFade(w, pf.Camera.FadeDuration); err != nil {
		return nil, err
	}
	return scene, nil
}

func levelCameraBounds(lvl *levels.Level, space *physics.Space) *obj.CameraBounds {
	if b := lvl.CameraBounds; b != nil {
		return obj.NewCameraBounds(b.MinX, b.MaxX, b.MinY, b.MaxY)
	}
	var boxes []cp.BB
	space.EachShape(func(shape *cp.Shape, _ physics.Layer) {
		boxes = append(boxes, shape.BB())
	})
	return obj.RoughBounds(boxes)
}

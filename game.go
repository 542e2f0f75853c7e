package main

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/featherfall/common"
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/ecs/entity"
	"github.com/milk9111/featherfall/ecs/system"
	"github.com/milk9111/featherfall/input"
	"github.com/milk9111/featherfall/levels"
	"github.com/milk9111/featherfall/logging"
	"github.com/milk9111/featherfall/obj"
	"github.com/milk9111/featherfall/prefabs"
)

type Options struct {
	Level string
	Debug bool
	Watch bool
}

// Game runs one fixed step per ebiten tick, then the frame systems.
type Game struct {
	levelName string
	debug     bool

	clock   *common.TickClock
	device  input.Source
	frame   *input.Static
	prefabs *entity.Prefabs
	watcher *prefabs.Watcher

	world    *ecs.World
	pipeline *system.Pipeline
	scene    *entity.Scene

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

func NewGame(opts Options) (*Game, error) {
	name := opts.Level
	if path.Ext(name) == "" {
		name += ".json"
	}

	pf, err := entity.LoadPrefabs()
	if err != nil {
		return nil, err
	}

	g := &Game{
		levelName: name,
		debug:     opts.Debug,
		clock:     common.NewTickClock(1.0 / common.TicksPerSecond),
		device:    input.NewEbiten(),
		frame:     &input.Static{},
		prefabs:   pf,
	}
	if err := g.loadLevel(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.DefaultDebounce, prefabs.Dir, path.Join(prefabs.Dir, "scripts"))
		if err != nil {
			// The embedded prefabs still work; only reloading is lost.
			logging.L().Warn("prefabs: watch disabled", "err", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// loadLevel builds a fresh world for the current level.
func (g *Game) loadLevel() error {
	lvl, err := levels.Load(g.levelName)
	if err != nil {
		return fmt.Errorf("level %s: %w", g.levelName, err)
	}

	w := ecs.NewWorld()
	scene, err := entity.LoadLevelToWorld(w, lvl, g.prefabs, entity.SceneOptions{
		ScreenW: common.BaseWidth,
		ScreenH: common.BaseHeight,
		Clock:   g.clock,
	})
	if err != nil {
		return err
	}

	g.world = w
	g.scene = scene
	g.pipeline = system.NewPipeline(g.frame, g.clock, scene.Senses)
	g.pipeline.Overlay.Enabled = g.debug
	logging.L().Info("level loaded", "level", lvl.Name, "entities", w.Count(), "crows", len(scene.Crows))
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.reloadPrefabs()

	g.frame.Frame = g.device.Poll()
	if g.frame.Frame.JustPressed(input.ButtonPause) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
		g.pipeline.Overlay.Enabled = g.debug
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.clock.Advance(g.clock.FixedDelta())
	g.pipeline.FixedUpdate(g.world)
	g.pipeline.Update(g.world)

	return g.handleEvents()
}

func (g *Game) handleEvents() error {
	restart := false
	for _, evt := range g.world.Events().Drain() {
		switch evt.Kind {
		case ecs.EventDied:
			logging.L().Info("died", "entity", evt.Entity.ID())
			if evt.Entity == g.scene.Player {
				restart = true
			}
		case ecs.EventDamaged:
			logging.L().Debug("damaged", "entity", evt.Entity.ID(), "amount", evt.Data)
		}
	}
	if !restart {
		return nil
	}
	if err := g.loadLevel(); err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	return nil
}

// reloadPrefabs applies changed tuning files without restarting the level.
// A file that fails to load keeps the previous values.
func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case names, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			for _, name := range names {
				if err := g.reloadPrefab(name); err != nil {
					logging.L().Error("prefabs: reload", "file", name, "err", err)
				} else {
					logging.L().Info("prefabs: reloaded", "file", name)
				}
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				logging.L().Warn("prefabs: watch", "err", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reloadPrefab(name string) error {
	switch {
	case name == prefabs.PlayerFile:
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return err
		}
		if _, p, ok := ecs.First(g.world, component.PlayerComponent.Kind()); ok {
			if err := p.SetConfig(spec.Movement); err != nil {
				return err
			}
		}
		g.prefabs.Player = spec
	case name == prefabs.CrowFile:
		spec, err := prefabs.LoadCrowSpec()
		if err != nil {
			return err
		}
		var errs []error
		ecs.ForEach(g.world, component.CrowComponent.Kind(), func(_ ecs.Entity, c *obj.Crow) {
			errs = append(errs, c.SetConfig(spec.AI))
		})
		if err := errors.Join(errs...); err != nil {
			return err
		}
		g.prefabs.Crow = spec
	case name == prefabs.FeatherFile:
		spec, err := prefabs.LoadFeatherSpec()
		if err != nil {
			return err
		}
		g.prefabs.Feather = spec
		g.scene.Senses.SetFeather(spec)
	case name == prefabs.CurvesFile || strings.HasPrefix(name, "scripts/"):
		lib, err := prefabs.LoadCurves()
		if err != nil {
			return err
		}
		g.prefabs.Curves.Merge(lib)
		logging.L().Info("prefabs: curves reloaded", "ids", lib.IDs())
	case name == prefabs.CameraFile:
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			return err
		}
		g.prefabs.Camera = spec
		logging.L().Info("prefabs: camera changes apply on the next level load")
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.pipeline.Draw(g.world, screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

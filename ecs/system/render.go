package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/levels"
	"github.com/milk9111/featherfall/obj"
	"golang.org/x/image/colornames"
)

var (
	skyColor     = colornames.Lightsteelblue
	solidColor   = colornames.Dimgray
	blockerColor = color.NRGBA{R: 0x2f, G: 0x4f, B: 0x4f, A: 0xa0}
	notchColor   = colornames.White
)

type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// camera finds the camera once and keeps it until it dies.
func (r *RenderSystem) camera(w *ecs.World) *obj.Camera {
	if !ecs.IsAlive(w, r.camEntity) {
		e, _, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return nil
		}
		r.camEntity = e
	}
	cam, _ := ecs.Get(w, r.camEntity, component.CameraComponent.Kind())
	return cam
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil {
		return
	}
	screen.Fill(skyColor)

	cam := r.camera(w)
	if cam == nil {
		return
	}

	ecs.ForEach(w, component.LevelComponent.Kind(), func(_ ecs.Entity, lvl *component.Level) {
		drawTiles(screen, cam, lvl.Data)
	})

	entities := make([]ecs.Entity, 0, ecs.Count(w, component.SpriteComponent.Kind()))
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, _ *component.Transform, s *component.Sprite) {
		if !s.Hidden {
			entities = append(entities, e)
		}
	})
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := 0, 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		drawBox(screen, cam, t.Position, s.Size, s.Color)
		if s.Size.X > 4 {
			notch := cp.Vector{X: s.Size.X/2 - 1, Y: s.Size.Y / 4}
			if s.FacingLeft {
				notch.X = -notch.X
			}
			drawBox(screen, cam, t.Position.Add(notch), cp.Vector{X: 2, Y: 2}, notchColor)
		}
	}

	ecs.ForEach(w, component.FadeComponent.Kind(), func(_ ecs.Entity, f *obj.Fade) {
		a := uint8(math.Round(f.Alpha() * 255))
		if a == 0 {
			return
		}
		b := screen.Bounds()
		vector.FillRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), color.NRGBA{A: a}, false)
	})
}

// drawBox fills a world-space box centred on c.
func drawBox(screen *ebiten.Image, cam *obj.Camera, c, size cp.Vector, col color.Color) {
	if col == nil {
		col = color.White
	}
	x, y := cam.WorldToScreen(cp.Vector{X: c.X - size.X/2, Y: c.Y + size.Y/2})
	z := cam.Zoom()
	vector.FillRect(screen, float32(x), float32(y), float32(size.X*z), float32(size.Y*z), col, false)
}

func drawTiles(screen *ebiten.Image, cam *obj.Camera, lvl *levels.Level) {
	if lvl == nil {
		return
	}
	size := lvl.TileSize
	half := cam.HalfView()
	x0 := max(0, int(math.Floor((cam.Pos.X-half.X)/size)))
	x1 := min(lvl.Width()-1, int(math.Ceil((cam.Pos.X+half.X)/size)))
	y0 := max(0, int(math.Floor((cam.Pos.Y-half.Y)/size)))
	y1 := min(lvl.Height()-1, int(math.Ceil((cam.Pos.Y+half.Y)/size)))

	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			bx, by := float64(tx)*size, float64(ty)*size
			switch lvl.At(tx, ty) {
			case levels.TileSolid:
				drawCell(screen, cam, bx, by, size, size, solidColor)
			case levels.TileVisionBlocker:
				drawCell(screen, cam, bx, by, size, size, blockerColor)
			case levels.TileSlopeUpRight, levels.TileSlopeUpLeft:
				drawSlope(screen, cam, lvl.At(tx, ty), bx, by, size)
			}
		}
	}
}

// drawCell fills the world box with bottom-left corner (x, y).
func drawCell(screen *ebiten.Image, cam *obj.Camera, x, y, w, h float64, col color.Color) {
	sx, sy := cam.WorldToScreen(cp.Vector{X: x, Y: y + h})
	z := cam.Zoom()
	vector.FillRect(screen, float32(sx), float32(sy), float32(w*z), float32(h*z), col, false)
}

// drawSlope fills a slope tile one world unit row at a time.
func drawSlope(screen *ebiten.Image, cam *obj.Camera, tile levels.Tile, x, y, size float64) {
	rows := int(math.Ceil(size))
	step := size / float64(rows)
	for i := 0; i < rows; i++ {
		inset := float64(i) * step
		width := size - inset
		left := x
		if tile == levels.TileSlopeUpRight {
			left = x + inset
		}
		drawCell(screen, cam, left, y+inset, width, step, solidColor)
	}
}

package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/obj"
	"github.com/milk9111/featherfall/physics"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

var (
	hurtboxColor = color.NRGBA{R: 0x20, G: 0x90, B: 0xff, A: 0xc0}
	hitboxColor  = color.NRGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xc0}
)

// DebugOverlaySystem draws the chipmunk shapes, combat boxes and the actor
// states on top of the scene while Enabled.
type DebugOverlaySystem struct {
	Enabled bool
	render  *RenderSystem
}

func NewDebugOverlaySystem(render *RenderSystem) *DebugOverlaySystem {
	return &DebugOverlaySystem{render: render}
}

func (s *DebugOverlaySystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if !s.Enabled || w == nil || screen == nil {
		return
	}
	cam := s.render.camera(w)
	if cam == nil {
		return
	}
	if pw := w.PhysicsWorld(); pw != nil && pw.Space != nil {
		pw.Space.DebugDraw(&physicsDebugDrawer{screen: screen, cam: cam})
	}

	ecs.ForEach2(w, component.HurtboxComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, hb *component.Hurtbox, t *component.Transform) {
		strokeBB(screen, cam, hb.BB(t.Position), hurtboxColor)
	})
	ecs.ForEach2(w, component.HitboxComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, hb *component.Hitbox, t *component.Transform) {
		strokeBB(screen, cam, cp.NewBBForExtents(t.Position, hb.Size.X/2, hb.Size.Y/2), hitboxColor)
	})

	drawStateText(w, screen)
}

func drawStateText(w *ecs.World, screen *ebiten.Image) {
	text := fmt.Sprintf("FPS: %.1f  entities: %d", ebiten.ActualFPS(), w.Count())
	if pw := w.PhysicsWorld(); pw != nil && pw.Index != nil {
		text += fmt.Sprintf("  hurtboxes: %d", pw.Index.Len())
	}
	if e, p, ok := ecs.First(w, component.PlayerComponent.Kind()); ok {
		text += fmt.Sprintf("\nPlayer: %s  grounded: %v  doubleJumped: %v  dropDown: %v\nvel: (%.1f, %.1f)",
			p.State(), p.Body.PreviouslyGrounded(), p.HasDoubleJumped, p.DropDown, p.Body.Velocity.X, p.Body.Velocity.Y)
		if stats, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			text += fmt.Sprintf("  hp: %d", stats.Health)
		}
	}
	ecs.ForEach(w, component.CrowComponent.Kind(), func(e ecs.Entity, c *obj.Crow) {
		text += fmt.Sprintf("\ncrow %d: %s", e.ID(), c.State())
	})
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

func strokeBB(screen *ebiten.Image, cam *obj.Camera, bb cp.BB, col color.Color) {
	x, y := cam.WorldToScreen(cp.Vector{X: bb.L, Y: bb.T})
	z := cam.Zoom()
	vector.StrokeRect(screen, float32(x), float32(y), float32((bb.R-bb.L)*z), float32((bb.T-bb.B)*z), 1, col, false)
}

// physicsDebugDrawer implements cp.Drawer through the camera transform.
type physicsDebugDrawer struct {
	screen *ebiten.Image
	cam    *obj.Camera
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

// ShapeColor tells the one-way states apart: solid platforms are yellow,
// pass-through ones grey.
func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	l, _ := shape.UserData.(physics.Layer)
	switch {
	case l&physics.LayerOneWay != 0:
		return cp.FColor{R: 1, G: 0.9, B: 0.1, A: 0.9}
	case l&physics.LayerPassThrough != 0:
		return cp.FColor{R: 0.5, G: 0.5, B: 0.5, A: 0.6}
	case l == physics.LayerVisionBlocker:
		return cp.FColor{R: 0.6, G: 0.2, B: 0.8, A: 0.8}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.cam.WorldToScreen(a)
	x2, y2 := d.cam.WorldToScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(c), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package kinematic

import (
	"math"

	"github.com/milk9111/featherfall/common"
)

// UpwardSlope lifts the body onto the surface hit by the foot ray. It only
// applies while vertical velocity is exactly zero and the surface is strictly
// shallower than MaxSlopeAngle; walls (90 degrees) never count. It reports
// whether a correction was made.
func (b *Body) UpwardSlope(foot RaycastResult) bool {
	if !foot.Hit || b.Velocity.Y != 0 {
		return false
	}
	angle := common.AngleFromUp(foot.Normal)
	if angle == 90 || angle >= b.cfg.MaxSlopeAngle {
		return false
	}
	rad := common.Deg2Rad(angle)
	correction := math.Abs(math.Tan(rad) * b.Velocity.X * b.dt)
	if b.cfg.SlopeNormalization {
		correction *= math.Cos(rad)
	}
	b.MoveVertical(correction)
	return true
}

// DownwardSlope snaps the body down onto a descending slope when it walked
// off the crest this tick. It reports whether a snap happened.
func (b *Body) DownwardSlope() bool {
	if b.Velocity.Y != 0 || b.cfg.MaxSlopeSnapDistance == 0 {
		return false
	}
	if b.Grounded() || !b.previouslyGrounded {
		return false
	}
	if !anyHit(b.CastVertical(-b.cfg.MaxSlopeSnapDistance)) {
		return false
	}
	b.MoveVertical(-b.cfg.MaxSlopeSnapDistance)
	return true
}

package obj

// Hitbox deals Damage to overlapping targets carrying one of Tags until its
// lifetime runs out. Each target is hit at most once.
type Hitbox struct {
	Damage   int
	Tags     []string
	Lifetime float64

	hit map[uint64]struct{}
}

func NewHitbox(damage int, lifetime float64, tags ...string) *Hitbox {
	return &Hitbox{Damage: damage, Tags: tags, Lifetime: lifetime, hit: map[uint64]struct{}{}}
}

// Tick ages the hitbox and reports whether it is still alive.
func (h *Hitbox) Tick(dt float64) bool {
	h.Lifetime -= dt
	return h.Lifetime >= 0
}

// Matches reports whether any of tags is targeted.
func (h *Hitbox) Matches(tags []string) bool {
	for _, want := range h.Tags {
		for _, t := range tags {
			if t == want {
				return true
			}
		}
	}
	return false
}

// TryHit damages target unless it was already hit or is not targeted.
func (h *Hitbox) TryHit(id uint64, tags []string, target Damageable) bool {
	if target == nil || !h.Matches(tags) {
		return false
	}
	if h.hit == nil {
		h.hit = map[uint64]struct{}{}
	}
	if _, done := h.hit[id]; done {
		return false
	}
	h.hit[id] = struct{}{}
	target.TakeDamage(h.Damage)
	return true
}

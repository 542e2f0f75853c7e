package obj

// Damageable is anything a hitbox can hurt.
type Damageable interface {
	TakeDamage(amount int)
	Kill()
}

// Stats is a health pool. Health stays within [0, MaxHealth].
type Stats struct {
	MaxHealth int `yaml:"max_health"`
	Health    int `yaml:"health"`
}

// NewStats returns a full health pool.
func NewStats(max int) *Stats {
	if max < 1 {
		max = 1
	}
	return &Stats{MaxHealth: max, Health: max}
}

func (s *Stats) TakeDamage(amount int) {
	s.Health -= amount
	if s.Health > s.MaxHealth {
		s.Health = s.MaxHealth
	}
	if s.Health <= 0 {
		s.Kill()
	}
}

func (s *Stats) Kill() {
	s.Health = 0
}

func (s *Stats) Dead() bool { return s.Health <= 0 }

package system

import (
	"time"

	coresys "github.com/strikecore/server/internal/core/system"
	"github.com/strikecore/server/internal/handler"
	"github.com/strikecore/server/internal/world"
)

// WeaponTickSystem advances every weapon timer once per tick (Phase 4):
// fire cooldowns, swing windows, recoil decay, and reload completion. Pickup
// snapshots are frozen; only carried weapons tick.
type WeaponTickSystem struct {
	deps *handler.Deps
}

func NewWeaponTickSystem(deps *handler.Deps) *WeaponTickSystem {
	return &WeaponTickSystem{deps: deps}
}

func (s *WeaponTickSystem) Phase() coresys.Phase { return coresys.PhaseTimers }

func (s *WeaponTickSystem) Update(dt time.Duration) {
	cfg := s.deps.Config
	decayPerTick := cfg.Combat.RecoilDecay * dt.Seconds()
	cooldownTicks := cfg.Ticks(cfg.Combat.RecoilCooldown)

	s.deps.World.All(func(c *world.Combatant) {
		for _, w := range c.Inv.Slots {
			if w != nil {
				w.Tick(decayPerTick, cooldownTicks)
			}
		}
	})
}

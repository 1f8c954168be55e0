package system

import (
	"time"

	"github.com/strikecore/server/internal/core/event"
	coresys "github.com/strikecore/server/internal/core/system"
	"github.com/strikecore/server/internal/handler"
	"github.com/strikecore/server/internal/physics"
	"github.com/strikecore/server/internal/world"
	"go.uber.org/zap"
)

// stationarySpeed is the horizontal speed below which a combatant counts as
// standing still for plant/defuse purposes.
const stationarySpeed = 0.1

// bombPickupReach is how close a Terrorist must walk to a dropped bomb to
// reclaim it.
const bombPickupReach = 1.5

// BombSystem drives the objective state machine (Phase 4, after weapon
// timers): plant progress, the armed countdown, defuse progress, and dropped
// bomb recovery. Both plant and defuse are restartable, never resumable; any
// cancel condition zeroes progress.
//
// Order inside one tick matters: a defuse that completes on the same tick the
// timer would hit zero wins, so defuse progress resolves before the countdown
// decrements.
type BombSystem struct {
	deps *handler.Deps
}

func NewBombSystem(deps *handler.Deps) *BombSystem {
	return &BombSystem{deps: deps}
}

func (s *BombSystem) Phase() coresys.Phase { return coresys.PhaseTimers }

func (s *BombSystem) Update(dt time.Duration) {
	ws := s.deps.World
	if ws.Round.Phase != world.PhaseActive {
		return
	}
	if ws.Round.EndReason != "" {
		return
	}

	s.recoverDroppedBomb()

	if !ws.Round.BombPlanted {
		s.updatePlant()
		return
	}
	s.updateDefuse()
	if ws.Round.EndReason != "" {
		return
	}
	s.updateCountdown()
}

// recoverDroppedBomb hands the bomb back to the first living Terrorist who
// walks over it.
func (s *BombSystem) recoverDroppedBomb() {
	round := &s.deps.World.Round
	if !round.BombDropped {
		return
	}
	var taker *world.Combatant
	s.deps.World.All(func(c *world.Combatant) {
		if taker != nil || c.Side != world.SideT || !c.Alive() {
			return
		}
		if physics.DistXZ(c.Pos, round.BombDropPos) <= bombPickupReach {
			taker = c
		}
	})
	if taker == nil {
		return
	}
	taker.HasBomb = true
	round.BombDropped = false
	event.Emit(s.deps.Bus, event.Notice{Text: taker.Name + " picked up the bomb"})
}

func (s *BombSystem) updatePlant() {
	ws := s.deps.World
	round := &ws.Round

	carrier := ws.BombCarrier()
	if carrier == nil || !s.planting(carrier) {
		round.PlanterID = 0
		round.PlantProgress = 0
		return
	}

	round.PlanterID = carrier.ID
	round.PlantProgress++
	if round.PlantProgress < s.deps.Config.Ticks(s.deps.Config.Round.PlantTime) {
		return
	}

	site := s.deps.Map.SiteAt(carrier.Pos.X, carrier.Pos.Z)
	round.BombPlanted = true
	round.BombSite = site.Name
	round.BombPos = carrier.Pos
	round.BombTicksLeft = s.deps.Config.Ticks(s.deps.Config.Round.BombTime)
	round.PlanterID = 0
	round.PlantProgress = 0
	carrier.HasBomb = false

	s.deps.Economy.PlantReward(carrier)
	event.Emit(s.deps.Bus, event.BombPlanted{PlanterID: carrier.ID, Site: site.Name})
	s.deps.Log.Info("bomb planted",
		zap.Int64("planter", carrier.ID),
		zap.String("site", site.Name))
}

// planting reports whether the carrier currently satisfies every plant
// condition: alive, holding interact, standing still inside a site.
func (s *BombSystem) planting(carrier *world.Combatant) bool {
	if !carrier.Alive() || !carrier.Intent.Interact {
		return false
	}
	if carrier.Speed() > stationarySpeed || !carrier.Grounded {
		return false
	}
	return s.deps.Map.SiteAt(carrier.Pos.X, carrier.Pos.Z) != nil
}

func (s *BombSystem) updateDefuse() {
	ws := s.deps.World
	round := &ws.Round

	// The current holder keeps the slot while valid; nobody else can stack.
	defuser := ws.Get(round.DefuserID)
	if defuser == nil || !s.defusing(defuser) {
		round.DefuserID = 0
		round.DefuseProgress = 0
		defuser = s.firstDefuser()
		if defuser == nil {
			return
		}
		round.DefuserID = defuser.ID
	}

	round.DefuseProgress++
	if round.DefuseProgress < s.deps.Config.Ticks(s.deps.Config.Round.DefuseTime) {
		return
	}

	round.DefuserID = 0
	round.DefuseProgress = 0
	round.EndReason = world.ReasonBombDefused
	round.Winner = world.SideCT

	s.deps.Economy.DefuseReward(defuser)
	event.Emit(s.deps.Bus, event.BombDefused{DefuserID: defuser.ID, Site: round.BombSite})
	s.deps.Log.Info("bomb defused",
		zap.Int64("defuser", defuser.ID),
		zap.String("site", round.BombSite))
}

func (s *BombSystem) firstDefuser() *world.Combatant {
	var found *world.Combatant
	s.deps.World.All(func(c *world.Combatant) {
		if found == nil && s.defusing(c) {
			found = c
		}
	})
	return found
}

func (s *BombSystem) defusing(c *world.Combatant) bool {
	if c.Side != world.SideCT || !c.Alive() || !c.Intent.Interact {
		return false
	}
	if c.Speed() > stationarySpeed {
		return false
	}
	return physics.DistXZ(c.Pos, s.deps.World.Round.BombPos) <= s.deps.Config.Round.DefuseRadius
}

func (s *BombSystem) updateCountdown() {
	round := &s.deps.World.Round
	round.BombTicksLeft--
	if round.BombTicksLeft > 0 {
		return
	}
	round.EndReason = world.ReasonBombExploded
	round.Winner = world.SideT
	event.Emit(s.deps.Bus, event.BombExploded{Site: round.BombSite})
	s.deps.Log.Info("bomb exploded", zap.String("site", round.BombSite))
}

package system

import (
	"math"
	"time"

	"github.com/strikecore/server/internal/core/event"
	coresys "github.com/strikecore/server/internal/core/system"
	"github.com/strikecore/server/internal/data"
	"github.com/strikecore/server/internal/handler"
	"github.com/strikecore/server/internal/physics"
	"github.com/strikecore/server/internal/world"
	"go.uber.org/zap"
)

// CombatSystem resolves fire requests for every living combatant (Phase 3):
// trigger edges, melee swings, hitscan casts, damage application, and kill
// bookkeeping. Dead bodies drop their active weapon as a pickup.
type CombatSystem struct {
	deps     *handler.Deps
	accuracy *AccuracyModel
}

func NewCombatSystem(deps *handler.Deps, accuracy *AccuracyModel) *CombatSystem {
	return &CombatSystem{deps: deps, accuracy: accuracy}
}

func (s *CombatSystem) Phase() coresys.Phase { return coresys.PhaseCombat }

func (s *CombatSystem) Update(dt time.Duration) {
	ws := s.deps.World
	if ws.Round.Phase == world.PhaseWaiting || ws.Round.Phase == world.PhaseMatchEnd {
		return
	}
	ws.All(func(c *world.Combatant) {
		if c.Alive() {
			s.update(c, dt)
		}
	})
}

func (s *CombatSystem) update(c *world.Combatant, dt time.Duration) {
	in := c.Intent
	w := c.Inv.ActiveWeapon()

	if in.Reload {
		w.StartReload(s.deps.Config.Ticks(w.Tmpl.ReloadTime))
	}
	if in.ScopeToggle && w.Tmpl.Variant == data.VariantScoped && !w.Reloading {
		w.Scoped = !w.Scoped
	}

	edge := in.FirePressed || (in.FireHeld && !c.PrevFireHeld)
	c.PrevFireHeld = in.FireHeld

	// Weapons stay holstered during freeze time.
	if s.deps.World.Round.Phase == world.PhaseFreeze {
		return
	}

	if w.IsMelee() {
		s.updateMelee(c, w, edge)
		return
	}

	if w.WantsFire(edge, in.FireHeld) {
		if w.Magazine == 0 && !w.Reloading {
			// Dry fire starts the reload instead.
			w.StartReload(s.deps.Config.Ticks(w.Tmpl.ReloadTime))
			return
		}
		if w.CanFire() {
			s.fire(c, w, dt)
		}
	}
}

func (s *CombatSystem) fire(c *world.Combatant, w *world.Weapon, dt time.Duration) {
	cfg := s.deps.Config

	// Spread is sampled from the state before this shot lands on the counters.
	firstShotTicks := cfg.Ticks(cfg.Combat.FirstShotReset)
	radius := s.accuracy.SpreadRadius(c, w, firstShotTicks)
	dir := s.accuracy.Perturb(physics.DirFromAngles(c.Yaw, c.Pitch), radius)

	w.RegisterShot(fireCooldownTicks(w.Tmpl.FireRate, dt), cfg.Combat.RecoilPerShot, cfg.Combat.RecoilMax)
	if w.Magazine == 0 {
		// Emptying the magazine reloads immediately, trigger state aside.
		w.StartReload(cfg.Ticks(w.Tmpl.ReloadTime))
	}

	hit, ok := s.deps.Caster.CastShot(c, c.EyePos(), dir, w.Tmpl.Range)
	if !ok {
		return
	}
	s.applyHit(c, hit.Target, w.Tmpl, hit.Distance, hit.Location)
}

func (s *CombatSystem) updateMelee(c *world.Combatant, w *world.Weapon, edge bool) {
	if edge && w.CanFire() {
		w.StartSwing(s.deps.Config.Ticks(w.Tmpl.SwingTime))
	}
	if w.SwingTicksLeft > 0 && !w.SwingHit && w.SwingHitWindow() {
		target, dist := s.deps.World.MeleeTarget(c, w.Tmpl.Range)
		if target != nil {
			w.SwingHit = true
			s.applyHit(c, target, w.Tmpl, dist, world.LocChest)
		}
	}
}

func (s *CombatSystem) applyHit(attacker, target *world.Combatant, tpl *data.WeaponTemplate, dist float64, loc world.HitLocation) {
	// Friendly fire is off: teammate hits resolve to nothing.
	if attacker.Side == target.Side {
		return
	}

	res := ResolveDamage(tpl, dist, loc, target.Armor)
	target.SpendArmor(res.ArmorDamage)
	target.ApplyDamage(res.HealthDamage)

	event.Emit(s.deps.Bus, event.Damage{
		AttackerID: attacker.ID,
		TargetID:   target.ID,
		Amount:     res.HealthDamage,
		Location:   loc.String(),
	})

	if !target.Alive() {
		attacker.Kills++
		s.deps.Economy.KillReward(attacker)
		s.onDeath(target)
		event.Emit(s.deps.Bus, event.Kill{
			KillerID: attacker.ID,
			VictimID: target.ID,
			WeaponID: tpl.ID,
			Headshot: loc == world.LocHead,
		})
		s.deps.Log.Info("kill",
			zap.Int64("killer", attacker.ID),
			zap.Int64("victim", target.ID),
			zap.Int32("weapon", tpl.ID),
			zap.String("location", loc.String()))
	}
}

// onDeath drops the victim's active weapon (melee stays) and clears any
// in-progress reload so the corpse holds no live timers.
func (s *CombatSystem) onDeath(victim *world.Combatant) {
	if w := victim.Inv.ActiveWeapon(); w != nil {
		w.CancelReload()
		w.Scoped = false
	}
	if dropped := victim.Inv.DropActive(); dropped != nil {
		s.deps.World.Pickups.Spawn(victim.Pos, dropped.Tmpl.ID, dropped.Magazine, dropped.Reserve)
	}
	if victim.HasBomb {
		victim.HasBomb = false
		s.deps.World.Round.BombDropped = true
		s.deps.World.Round.BombDropPos = victim.Pos
	}
}

// fireCooldownTicks converts rounds-per-second into the tick interval between
// eligible shots, never below one tick.
func fireCooldownTicks(fireRate float64, dt time.Duration) int {
	if fireRate <= 0 {
		return 1
	}
	ticks := int(math.Round(1.0 / (fireRate * dt.Seconds())))
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

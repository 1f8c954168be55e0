package system

import (
	"time"

	coresys "github.com/strikecore/server/internal/core/system"
	"github.com/strikecore/server/internal/data"
	"github.com/strikecore/server/internal/handler"
	"github.com/strikecore/server/internal/physics"
	"github.com/strikecore/server/internal/world"
)

// JoinRequest is a pending connection waiting for a combatant.
type JoinRequest struct {
	ClientKey uint64
	Name      string
}

// QueuedIntent is one client intent record addressed to a combatant.
type QueuedIntent struct {
	CombatantID int64
	Intent      world.Intent
}

// IntentSource is the input collaborator: it hands the simulation sampled
// intent records once per tick and never exposes raw devices or sockets.
// The gateway implements it; tests use a local stub.
type IntentSource interface {
	DrainJoins() []JoinRequest
	DrainLeaves() []int64
	DrainIntents() []QueuedIntent
	// Bind tells the source which combatant a client key now controls.
	Bind(clientKey uint64, combatantID int64)
}

// InputSystem drains the intent source, validates every record, and applies
// the accepted ones to combatant state. Invalid records are discarded
// whole; the combatant idles that tick.
type InputSystem struct {
	deps        *handler.Deps
	source      IntentSource
	maxPerTick  int
	pickupReach float64
}

func NewInputSystem(deps *handler.Deps, source IntentSource) *InputSystem {
	return &InputSystem{
		deps:        deps,
		source:      source,
		maxPerTick:  deps.Config.Network.MaxIntentsPerTick,
		pickupReach: 1.5,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	for _, j := range s.source.DrainJoins() {
		c := handler.HandleJoin(s.deps, j.Name)
		s.source.Bind(j.ClientKey, c.ID)
	}
	for _, id := range s.source.DrainLeaves() {
		if id != 0 {
			handler.HandleLeave(s.deps, id)
		}
	}

	// Coalesce this tick's records per combatant: analog values take the
	// latest sample, edge/command flags accumulate so a press between ticks
	// is never lost.
	merged := make(map[int64]world.Intent)
	seen := make(map[int64]int)
	for _, q := range s.source.DrainIntents() {
		if seen[q.CombatantID] >= s.maxPerTick {
			continue
		}
		in, ok := handler.SanitizeIntent(q.Intent)
		if !ok {
			continue
		}
		seen[q.CombatantID]++
		merged[q.CombatantID] = mergeIntent(merged[q.CombatantID], in, seen[q.CombatantID] == 1)
	}

	ws := s.deps.World
	ws.All(func(c *world.Combatant) {
		in, ok := merged[c.ID]
		if !ok {
			// No record this tick: hold movement, drop all edges.
			in = world.Intent{
				MoveX:    c.Intent.MoveX,
				MoveZ:    c.Intent.MoveZ,
				Run:      c.Intent.Run,
				FireHeld: c.Intent.FireHeld,
				Interact: c.Intent.Interact,
			}
		}
		s.apply(c, in)
	})
}

func (s *InputSystem) apply(c *world.Combatant, in world.Intent) {
	c.Intent = in
	if !c.Alive() {
		return
	}

	handler.ApplyLook(c, in)

	if in.CrouchToggle {
		c.Crouching = !c.Crouching
	}
	c.Running = in.Run && !c.Crouching

	if in.SwitchSlot > 0 {
		c.Inv.Switch(data.WeaponSlot(in.SwitchSlot - 1))
	}
	if in.BuyWeapon != 0 {
		handler.HandleBuyWeapon(s.deps, c, in.BuyWeapon)
	}
	if in.BuyArmor {
		handler.HandleBuyArmor(s.deps, c)
	}
	if in.Drop {
		handler.HandleDrop(s.deps, c)
	}
	if in.Interact && !s.objectiveContext(c) {
		handler.HandlePickup(s.deps, c, s.pickupReach)
	}
}

// objectiveContext reports whether the interact key currently means plant or
// defuse for this combatant; the bomb system consumes it then, not pickup.
func (s *InputSystem) objectiveContext(c *world.Combatant) bool {
	ws := s.deps.World
	if ws.Round.Phase != world.PhaseActive {
		return false
	}
	if c.Side == world.SideT && c.HasBomb && s.deps.Map.SiteAt(c.Pos.X, c.Pos.Z) != nil {
		return true
	}
	if c.Side == world.SideCT && ws.Round.BombPlanted {
		// Same horizontal metric as the bomb system's defuse check.
		if physics.DistXZ(c.Pos, ws.Round.BombPos) <= s.deps.Config.Round.DefuseRadius {
			return true
		}
	}
	return false
}

// mergeIntent folds a new record into the accumulated one.
func mergeIntent(acc, in world.Intent, first bool) world.Intent {
	if first {
		return in
	}
	out := in // analog state: latest sample wins
	out.Jump = acc.Jump || in.Jump
	out.CrouchToggle = acc.CrouchToggle || in.CrouchToggle
	out.FirePressed = acc.FirePressed || in.FirePressed
	out.Reload = acc.Reload || in.Reload
	out.ScopeToggle = acc.ScopeToggle || in.ScopeToggle
	out.BuyArmor = acc.BuyArmor || in.BuyArmor
	out.Drop = acc.Drop || in.Drop
	if in.SwitchSlot == 0 {
		out.SwitchSlot = acc.SwitchSlot
	}
	if in.BuyWeapon == 0 {
		out.BuyWeapon = acc.BuyWeapon
	}
	return out
}

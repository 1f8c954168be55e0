package system

import (
	"testing"
	"time"

	"github.com/strikecore/server/internal/config"
	"github.com/strikecore/server/internal/core/ecs"
	"github.com/strikecore/server/internal/core/event"
	"github.com/strikecore/server/internal/data"
	"github.com/strikecore/server/internal/handler"
	"github.com/strikecore/server/internal/physics"
	"github.com/strikecore/server/internal/scripting"
	"github.com/strikecore/server/internal/world"
	"go.uber.org/zap"
)

// harness assembles the full simulation against the real data catalogs and
// Lua scripts, stepped manually one tick at a time.
type harness struct {
	t       *testing.T
	deps    *handler.Deps
	economy *Economy

	input    *InputSystem
	source   *stubSource
	movement *MovementSystem
	combat   *CombatSystem
	weapons  *WeaponTickSystem
	bomb     *BombSystem
	round    *RoundSystem
	events   *EventSystem
	cleanup  *CleanupSystem
}

// stubSource feeds the input system from the test instead of a socket.
type stubSource struct {
	joins   []JoinRequest
	leaves  []int64
	intents []QueuedIntent
	bound   map[uint64]int64
}

func (s *stubSource) DrainJoins() []JoinRequest {
	out := s.joins
	s.joins = nil
	return out
}

func (s *stubSource) DrainLeaves() []int64 {
	out := s.leaves
	s.leaves = nil
	return out
}

func (s *stubSource) DrainIntents() []QueuedIntent {
	out := s.intents
	s.intents = nil
	return out
}

func (s *stubSource) Bind(clientKey uint64, combatantID int64) {
	if s.bound == nil {
		s.bound = map[uint64]int64{}
	}
	s.bound[clientKey] = combatantID
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.Defaults()
	log := zap.NewNop()

	weapons, err := data.LoadWeaponTable("../../data/yaml/weapons.yaml")
	if err != nil {
		t.Fatalf("load weapons: %v", err)
	}
	maps, err := data.LoadMapTable("../../data/yaml/maps.yaml")
	if err != nil {
		t.Fatalf("load maps: %v", err)
	}
	eng, err := scripting.NewEngine("../../scripts", log)
	if err != nil {
		t.Fatalf("scripting: %v", err)
	}
	t.Cleanup(eng.Close)

	ecsWorld := ecs.NewWorld()
	ws := world.NewState(ecsWorld)
	bus := event.NewBus()

	deps := &handler.Deps{
		Config:    cfg,
		Log:       log,
		World:     ws,
		Weapons:   weapons,
		Map:       maps.Default(),
		Scripting: eng,
		Bus:       bus,
		Caster:    ws,
	}
	economy := NewEconomy(cfg.Economy, ws, eng, bus, log)
	deps.Economy = economy

	source := &stubSource{}
	h := &harness{
		t:        t,
		deps:     deps,
		economy:  economy,
		source:   source,
		input:    NewInputSystem(deps, source),
		movement: NewMovementSystem(deps),
		combat:   NewCombatSystem(deps, NewAccuracyModel(cfg.Combat, 1)),
		weapons:  NewWeaponTickSystem(deps),
		bomb:     NewBombSystem(deps),
		round:    NewRoundSystem(deps, economy, 1),
		events:   NewEventSystem(bus),
		cleanup:  NewCleanupSystem(ecsWorld),
	}
	return h
}

func (h *harness) dt() time.Duration { return h.deps.Config.Network.TickRate }

// tick runs one full simulation step in phase order.
func (h *harness) tick() {
	dt := h.dt()
	h.events.Update(dt)
	h.input.Update(dt)
	h.movement.Update(dt)
	h.combat.Update(dt)
	h.weapons.Update(dt)
	h.bomb.Update(dt)
	h.round.Update(dt)
	h.cleanup.Update(dt)
}

func (h *harness) ticks(n int) {
	for i := 0; i < n; i++ {
		h.tick()
	}
}

// join adds a combatant through the real join path, then forces the side.
func (h *harness) join(name string, side world.Side) *world.Combatant {
	c := handler.HandleJoin(h.deps, name)
	c.Side = side
	return c
}

// startRound walks the orchestrator from waiting through freeze into the
// active phase.
func (h *harness) startRound() {
	cfg := h.deps.Config
	h.tick() // waiting -> freeze
	if h.deps.World.Round.Phase != world.PhaseFreeze {
		h.t.Fatalf("phase = %v after lobby fill, want freeze", h.deps.World.Round.Phase)
	}
	h.ticks(cfg.Ticks(cfg.Round.FreezeTime))
	if h.deps.World.Round.Phase != world.PhaseActive {
		h.t.Fatalf("phase = %v after freeze, want active", h.deps.World.Round.Phase)
	}
}

// moveTo teleports a combatant and zeroes its velocity. Fine for tests that
// exercise objective logic rather than the integrator.
func moveTo(c *world.Combatant, x, z float64) {
	c.Pos = physics.Vec3{X: x, Y: 0, Z: z}
	c.Vel = physics.Vec2{}
	c.Grounded = true
}

// holdInteract keeps the interact intent pressed for this tick.
func holdInteract(c *world.Combatant) {
	c.Intent.Interact = true
}

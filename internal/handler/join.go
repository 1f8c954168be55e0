package handler

import (
	"github.com/strikecore/server/internal/core/event"
	"github.com/strikecore/server/internal/data"
	"github.com/strikecore/server/internal/physics"
	"github.com/strikecore/server/internal/world"
	"go.uber.org/zap"
)

// DefaultMeleeID and DefaultPistolID are the loadout every combatant starts
// with. Ids match data/yaml/weapons.yaml.
const (
	DefaultMeleeID  int32 = 1
	DefaultPistolID int32 = 10
)

// HandleJoin creates a combatant, assigns the smaller team (Terrorists on a
// tie), equips the starting loadout, and places them at a spawn point. Joins
// mid-round enter dead and spawn next freeze time.
func HandleJoin(deps *Deps, name string) *world.Combatant {
	ws := deps.World

	side := world.SideT
	if len(ws.BySide(world.SideT)) > len(ws.BySide(world.SideCT)) {
		side = world.SideCT
	}

	melee := deps.Weapons.Get(DefaultMeleeID)
	pistol := deps.Weapons.Get(DefaultPistolID)

	// Joiners enter dead with zero health; ResetForRound revives them at the
	// next freeze time.
	c := &world.Combatant{
		ID:        ws.NextID(),
		Name:      name,
		Side:      side,
		Money:     deps.Config.Economy.StartMoney,
		State:     world.StateDead,
		Inv:       world.NewInventory(melee),
		Connected: true,
	}
	if pistol != nil {
		c.Inv.Add(world.NewWeapon(pistol), false)
		c.Inv.Switch(data.SlotSecondary)
	}

	spawn, yaw := SpawnFor(deps.Map, side, len(ws.BySide(side)))
	c.Pos = spawn
	c.Yaw = yaw
	c.Grounded = true

	ws.Add(c)
	event.Emit(deps.Bus, event.PlayerJoined{CombatantID: c.ID, Name: name, Team: side.String()})
	deps.Log.Info("player joined",
		zap.String("name", name),
		zap.Int64("id", c.ID),
		zap.String("team", side.String()))
	return c
}

// HandleLeave removes a combatant. A leaving bomb carrier drops the bomb
// responsibility back to the orchestrator (carrier reassigned next round;
// mid-round the bomb is simply gone with them, matching a disconnect before
// plant losing the round objective is an accepted rule here).
func HandleLeave(deps *Deps, id int64) {
	c := deps.World.Remove(id)
	if c == nil {
		return
	}
	event.Emit(deps.Bus, event.PlayerLeft{CombatantID: id, Name: c.Name})
	deps.Log.Info("player left", zap.String("name", c.Name), zap.Int64("id", id))
}

// SpawnFor picks the i-th spawn point for a side, wrapping around.
func SpawnFor(m *data.MapInfo, side world.Side, i int) (physics.Vec3, float64) {
	pts := m.TSpawns
	if side == world.SideCT {
		pts = m.CTSpawns
	}
	p := pts[i%len(pts)]
	return physics.Vec3{X: p.X, Y: p.Y, Z: p.Z}, p.Yaw
}

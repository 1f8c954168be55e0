package system

import (
	"time"

	coresys "github.com/strikecore/server/internal/core/system"
	"github.com/strikecore/server/internal/handler"
)

// CombatantSnapshot is one combatant's public state at a tick.
type CombatantSnapshot struct {
	ID       int64   `msgpack:"id"`
	Name     string  `msgpack:"name"`
	Team     string  `msgpack:"team"`
	Alive    bool    `msgpack:"alive"`
	Health   int     `msgpack:"hp"`
	Armor    int     `msgpack:"armor"`
	Money    int     `msgpack:"money"`
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	Z        float64 `msgpack:"z"`
	Yaw      float64 `msgpack:"yaw"`
	Pitch    float64 `msgpack:"pitch"`
	Crouched bool    `msgpack:"crouched"`
	HasBomb  bool    `msgpack:"has_bomb"`
	WeaponID int32   `msgpack:"weapon"`
	Magazine int     `msgpack:"mag"`
	Reserve  int     `msgpack:"reserve"`
	Kills    int     `msgpack:"kills"`
	Deaths   int     `msgpack:"deaths"`
}

// Snapshot is the full authoritative state broadcast to every client.
type Snapshot struct {
	Tick       uint64              `msgpack:"tick"`
	Round      int                 `msgpack:"round"`
	Phase      string              `msgpack:"phase"`
	PhaseTicks int                 `msgpack:"phase_ticks"`
	ScoreT     int                 `msgpack:"score_t"`
	ScoreCT    int                 `msgpack:"score_ct"`
	BombDown   bool                `msgpack:"bomb_down"`
	BombSite   string              `msgpack:"bomb_site"`
	BombTicks  int                 `msgpack:"bomb_ticks"`
	Combatants []CombatantSnapshot `msgpack:"combatants"`
}

// Broadcaster pushes snapshots to connected clients. Implemented by the
// websocket gateway; nil-safe for headless runs.
type Broadcaster interface {
	BroadcastSnapshot(*Snapshot)
}

// OutputSystem builds and broadcasts a state snapshot every few ticks
// (Phase 6). Snapshot cadence is decoupled from the simulation rate.
type OutputSystem struct {
	deps     *handler.Deps
	bcast    Broadcaster
	interval int
	tick     uint64
}

func NewOutputSystem(deps *handler.Deps, bcast Broadcaster) *OutputSystem {
	interval := deps.Config.Network.SnapshotInterval
	if interval < 1 {
		interval = 1
	}
	return &OutputSystem{deps: deps, bcast: bcast, interval: interval}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(dt time.Duration) {
	s.tick++
	if s.bcast == nil || s.tick%uint64(s.interval) != 0 {
		return
	}
	s.bcast.BroadcastSnapshot(s.build())
}

func (s *OutputSystem) build() *Snapshot {
	ws := s.deps.World
	snap := &Snapshot{
		Tick:       s.tick,
		Round:      ws.Round.Index,
		Phase:      ws.Round.Phase.String(),
		PhaseTicks: ws.Round.TicksLeft,
		ScoreT:     ws.TeamT.Score,
		ScoreCT:    ws.TeamCT.Score,
		BombDown:   ws.Round.BombPlanted,
		BombSite:   ws.Round.BombSite,
		BombTicks:  ws.Round.BombTicksLeft,
		Combatants: make([]CombatantSnapshot, 0, ws.Count()),
	}
	for _, id := range ws.SortedIDs() {
		c := ws.Get(id)
		cs := CombatantSnapshot{
			ID:       c.ID,
			Name:     c.Name,
			Team:     c.Side.String(),
			Alive:    c.Alive(),
			Health:   c.Health,
			Armor:    c.Armor,
			Money:    c.Money,
			X:        c.Pos.X,
			Y:        c.Pos.Y,
			Z:        c.Pos.Z,
			Yaw:      c.Yaw,
			Pitch:    c.Pitch,
			Crouched: c.Crouching,
			HasBomb:  c.HasBomb,
			Kills:    c.Kills,
			Deaths:   c.Deaths,
		}
		if w := c.Inv.ActiveWeapon(); w != nil {
			cs.WeaponID = w.Tmpl.ID
			cs.Magazine = w.Magazine
			cs.Reserve = w.Reserve
		}
		snap.Combatants = append(snap.Combatants, cs)
	}
	return snap
}

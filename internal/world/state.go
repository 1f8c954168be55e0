package world

import (
	"sort"

	"github.com/strikecore/server/internal/core/ecs"
	"github.com/strikecore/server/internal/physics"
)

// Phase is the top-level match state machine position.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseFreeze
	PhaseActive
	PhaseRoundEnd
	PhaseMatchEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting_for_players"
	case PhaseFreeze:
		return "freeze_time"
	case PhaseActive:
		return "round_active"
	case PhaseRoundEnd:
		return "round_end"
	case PhaseMatchEnd:
		return "match_end"
	}
	return "unknown"
}

// RoundEndReason records why a round finished.
type RoundEndReason string

const (
	ReasonBombExploded RoundEndReason = "bomb_exploded"
	ReasonBombDefused  RoundEndReason = "bomb_defused"
	ReasonTEliminated  RoundEndReason = "t_eliminated"
	ReasonCTEliminated RoundEndReason = "ct_eliminated"
	ReasonTimeExpired  RoundEndReason = "time_expired"
)

// RoundState is the per-round clock and objective state. Everything is a
// plain counter or flag so the whole thing serializes trivially for replay.
type RoundState struct {
	Index     int // 1-based round number
	Phase     Phase
	TicksLeft int // countdown for the current phase (clock, freeze, end delay)
	BuyTicks  int // remaining ticks of the buy window

	BombPlanted   bool
	BombSite      string
	BombPos       physics.Vec3
	BombTicksLeft int

	// The bomb lies on the ground here after its carrier died pre-plant.
	BombDropped bool
	BombDropPos physics.Vec3

	// Plant progress: restartable, resets to zero on any cancel condition.
	PlanterID     int64
	PlantProgress int

	// Defuse progress: single defuser holds the slot, no stacking.
	DefuserID      int64
	DefuseProgress int

	// Set when a round-end condition fires; consumed by the orchestrator.
	EndReason RoundEndReason
	Winner    Side
}

// State is the authoritative world: all combatants, both teams, the round
// state, and dropped-weapon pickups. Owned by the game loop goroutine.
type State struct {
	combatants map[int64]*Combatant
	order      []int64 // insertion order, for deterministic iteration

	TeamT  *Team
	TeamCT *Team

	Round   RoundState
	Pickups *Pickups

	nextID int64
}

func NewState(ecsWorld *ecs.World) *State {
	return &State{
		combatants: make(map[int64]*Combatant, 16),
		TeamT:      &Team{Side: SideT},
		TeamCT:     &Team{Side: SideCT},
		Round:      RoundState{Phase: PhaseWaiting},
		Pickups:    NewPickups(ecsWorld),
		nextID:     1000,
	}
}

// NextID allocates a combatant id.
func (s *State) NextID() int64 {
	s.nextID++
	return s.nextID
}

func (s *State) Add(c *Combatant) {
	s.combatants[c.ID] = c
	s.order = append(s.order, c.ID)
}

func (s *State) Remove(id int64) *Combatant {
	c, ok := s.combatants[id]
	if !ok {
		return nil
	}
	delete(s.combatants, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return c
}

func (s *State) Get(id int64) *Combatant {
	return s.combatants[id]
}

// All visits combatants in join order.
func (s *State) All(fn func(*Combatant)) {
	for _, id := range s.order {
		fn(s.combatants[id])
	}
}

// Team returns the team for a side.
func (s *State) Team(side Side) *Team {
	if side == SideT {
		return s.TeamT
	}
	if side == SideCT {
		return s.TeamCT
	}
	return nil
}

// BySide returns the combatants of one side in join order.
func (s *State) BySide(side Side) []*Combatant {
	var out []*Combatant
	for _, id := range s.order {
		if c := s.combatants[id]; c.Side == side {
			out = append(out, c)
		}
	}
	return out
}

// AliveCount counts living combatants on a side.
func (s *State) AliveCount(side Side) int {
	n := 0
	for _, id := range s.order {
		if c := s.combatants[id]; c.Side == side && c.Alive() {
			n++
		}
	}
	return n
}

// Count returns the total number of connected combatants.
func (s *State) Count() int { return len(s.combatants) }

// BombCarrier returns the Terrorist holding the bomb, or nil.
func (s *State) BombCarrier() *Combatant {
	for _, id := range s.order {
		if c := s.combatants[id]; c.HasBomb {
			return c
		}
	}
	return nil
}

// SortedIDs returns all combatant ids ascending (stable snapshot ordering).
func (s *State) SortedIDs() []int64 {
	ids := make([]int64, len(s.order))
	copy(ids, s.order)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

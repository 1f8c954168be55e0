package system

import (
	"math/rand"
	"time"

	"github.com/strikecore/server/internal/core/event"
	coresys "github.com/strikecore/server/internal/core/system"
	"github.com/strikecore/server/internal/data"
	"github.com/strikecore/server/internal/handler"
	"github.com/strikecore/server/internal/world"
	"go.uber.org/zap"
)

// RoundSystem is the top-level match orchestrator (Phase 5):
// waiting_for_players, freeze time, the active round clock, round settlement,
// half-time side swap, and the match win condition. It runs after combat and
// the objective timers, so a kill that lands on the final tick of the clock
// still counts before time expiry does.
type RoundSystem struct {
	deps    *handler.Deps
	economy *Economy
	rng     *rand.Rand
}

func NewRoundSystem(deps *handler.Deps, economy *Economy, seed int64) *RoundSystem {
	return &RoundSystem{deps: deps, economy: economy, rng: rand.New(rand.NewSource(seed))}
}

func (s *RoundSystem) Phase() coresys.Phase { return coresys.PhaseRound }

func (s *RoundSystem) Update(dt time.Duration) {
	switch s.deps.World.Round.Phase {
	case world.PhaseWaiting:
		s.updateWaiting()
	case world.PhaseFreeze:
		s.updateFreeze()
	case world.PhaseActive:
		s.updateActive()
	case world.PhaseRoundEnd:
		s.updateRoundEnd()
	case world.PhaseMatchEnd:
		s.updateMatchEnd()
	}
}

func (s *RoundSystem) updateWaiting() {
	ws := s.deps.World
	need := s.deps.Config.Round.MinPlayersPerSide
	if len(ws.BySide(world.SideT)) < need || len(ws.BySide(world.SideCT)) < need {
		return
	}

	// Fresh match: zero the scoreboard, restore purses and loadouts.
	ws.TeamT.Score, ws.TeamT.LossStreak = 0, 0
	ws.TeamCT.Score, ws.TeamCT.LossStreak = 0, 0
	ws.Round.Index = 0
	s.economy.ResetMoney()
	ws.All(func(c *world.Combatant) {
		c.Kills = 0
		c.Deaths = 0
		c.Armor = 0
		s.freshLoadout(c)
	})
	s.deps.Log.Info("match starting",
		zap.Int("terrorists", len(ws.BySide(world.SideT))),
		zap.Int("counter_terrorists", len(ws.BySide(world.SideCT))))
	s.startFreeze()
}

func (s *RoundSystem) updateFreeze() {
	round := &s.deps.World.Round
	round.TicksLeft--
	if round.TicksLeft > 0 {
		return
	}
	cfg := s.deps.Config
	round.Phase = world.PhaseActive
	round.TicksLeft = cfg.Ticks(cfg.Round.RoundTime)
	round.BuyTicks = cfg.Ticks(cfg.Round.BuyWindow)
	s.emitPhase()
}

func (s *RoundSystem) updateActive() {
	ws := s.deps.World
	round := &ws.Round

	if round.BuyTicks > 0 {
		round.BuyTicks--
	}

	// The objective system may already have settled the round this tick
	// (explosion or defuse); its verdict stands.
	if round.EndReason == "" {
		switch {
		case ws.AliveCount(world.SideT) == 0:
			round.EndReason = world.ReasonTEliminated
			round.Winner = world.SideCT
		case ws.AliveCount(world.SideCT) == 0:
			round.EndReason = world.ReasonCTEliminated
			round.Winner = world.SideT
		case !round.BombPlanted:
			// The clock only runs while the bomb is down. Defenders win
			// the draw when it expires.
			round.TicksLeft--
			if round.TicksLeft <= 0 {
				round.EndReason = world.ReasonTimeExpired
				round.Winner = world.SideCT
			}
		}
	}

	if round.EndReason != "" {
		s.endRound()
	}
}

func (s *RoundSystem) endRound() {
	ws := s.deps.World
	round := &ws.Round

	// Rewards read the loss streak before it advances.
	s.economy.ApplyRoundEnd(round.Winner, round.EndReason)
	ws.Team(round.Winner).RecordWin()
	ws.Team(round.Winner.Opponent()).RecordLoss()

	round.Phase = world.PhaseRoundEnd
	round.TicksLeft = s.deps.Config.Ticks(s.deps.Config.Round.RoundEndTime)

	event.Emit(s.deps.Bus, event.RoundEnded{
		Round:   round.Index,
		Winner:  round.Winner.String(),
		Reason:  string(round.EndReason),
		ScoreT:  ws.TeamT.Score,
		ScoreCT: ws.TeamCT.Score,
	})
	s.deps.Log.Info("round over",
		zap.Int("round", round.Index),
		zap.String("winner", round.Winner.String()),
		zap.String("reason", string(round.EndReason)),
		zap.Int("score_t", ws.TeamT.Score),
		zap.Int("score_ct", ws.TeamCT.Score))
	s.emitPhase()
}

func (s *RoundSystem) updateRoundEnd() {
	ws := s.deps.World
	round := &ws.Round
	round.TicksLeft--
	if round.TicksLeft > 0 {
		return
	}

	// The match ends only on score. A 15-15 scoreline keeps producing
	// rounds until one side reaches the winning score.
	maxRounds := s.deps.Config.Round.MaxRounds
	need := maxRounds/2 + 1
	if ws.TeamT.Score >= need || ws.TeamCT.Score >= need {
		s.endMatch()
		return
	}
	if round.Index == maxRounds/2 {
		s.halfTime()
	}
	s.startFreeze()
}

// halfTime swaps everyone to the other side. Scores and streaks follow the
// players, money and loadouts reset like a match start.
func (s *RoundSystem) halfTime() {
	ws := s.deps.World
	world.SwapSides(ws.TeamT, ws.TeamCT)
	ws.All(func(c *world.Combatant) {
		c.Side = c.Side.Opponent()
		c.Armor = 0
		s.freshLoadout(c)
	})
	s.economy.ResetMoney()
	s.deps.Log.Info("half-time side swap",
		zap.Int("score_t", ws.TeamT.Score),
		zap.Int("score_ct", ws.TeamCT.Score))
	event.Emit(s.deps.Bus, event.Notice{Text: "half-time: sides swapped"})
}

func (s *RoundSystem) endMatch() {
	ws := s.deps.World
	round := &ws.Round
	round.Phase = world.PhaseMatchEnd
	round.TicksLeft = s.deps.Config.Ticks(s.deps.Config.Round.RoundEndTime)

	// Only reachable with one side at the winning score.
	winner := world.SideT.String()
	if ws.TeamCT.Score > ws.TeamT.Score {
		winner = world.SideCT.String()
	}
	event.Emit(s.deps.Bus, event.MatchEnded{
		Winner:  winner,
		ScoreT:  ws.TeamT.Score,
		ScoreCT: ws.TeamCT.Score,
		Rounds:  round.Index,
	})
	s.deps.Log.Info("match over",
		zap.String("winner", winner),
		zap.Int("score_t", ws.TeamT.Score),
		zap.Int("score_ct", ws.TeamCT.Score),
		zap.Int("rounds", round.Index))
	s.emitPhase()
}

func (s *RoundSystem) updateMatchEnd() {
	round := &s.deps.World.Round
	round.TicksLeft--
	if round.TicksLeft > 0 {
		return
	}
	// Back to the lobby; the next full lobby starts a fresh match.
	round.Phase = world.PhaseWaiting
	s.emitPhase()
}

// startFreeze opens the next round: everyone respawns at their side's spawn
// points, dropped weapons vanish, the bomb goes to a random living Terrorist.
func (s *RoundSystem) startFreeze() {
	ws := s.deps.World
	cfg := s.deps.Config
	round := &ws.Round

	round.Index++
	round.Phase = world.PhaseFreeze
	round.TicksLeft = cfg.Ticks(cfg.Round.FreezeTime)
	round.BuyTicks = 0
	round.BombPlanted = false
	round.BombSite = ""
	round.BombTicksLeft = 0
	round.BombDropped = false
	round.PlanterID = 0
	round.PlantProgress = 0
	round.DefuserID = 0
	round.DefuseProgress = 0
	round.EndReason = ""
	round.Winner = 0

	ws.Pickups.Clear()

	for _, side := range []world.Side{world.SideT, world.SideCT} {
		for i, c := range ws.BySide(side) {
			// A combatant who died last round lost their dropped weapons;
			// they restart on the default loadout.
			if !c.Alive() {
				s.freshLoadout(c)
			}
			spawn, yaw := handler.SpawnFor(s.deps.Map, side, i)
			c.ResetForRound(spawn, yaw)
		}
	}

	ts := ws.BySide(world.SideT)
	if len(ts) > 0 {
		ts[s.rng.Intn(len(ts))].HasBomb = true
	}

	s.deps.Log.Info("round starting", zap.Int("round", round.Index))
	s.emitPhase()
}

// freshLoadout replaces the inventory with the default melee and pistol.
func (s *RoundSystem) freshLoadout(c *world.Combatant) {
	melee := s.deps.Weapons.Get(handler.DefaultMeleeID)
	pistol := s.deps.Weapons.Get(handler.DefaultPistolID)
	c.Inv = world.NewInventory(melee)
	if pistol != nil {
		c.Inv.Add(world.NewWeapon(pistol), false)
		c.Inv.Switch(data.SlotSecondary)
	}
}

func (s *RoundSystem) emitPhase() {
	round := &s.deps.World.Round
	event.Emit(s.deps.Bus, event.PhaseChanged{Round: round.Index, Phase: round.Phase.String()})
}

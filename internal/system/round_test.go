package system

import (
	"testing"

	"github.com/strikecore/server/internal/world"
)

func TestWaitingUntilBothSidesPresent(t *testing.T) {
	h := newHarness(t)
	h.join("lonely", world.SideT)

	h.ticks(10)
	if h.deps.World.Round.Phase != world.PhaseWaiting {
		t.Fatalf("phase = %v with an empty CT side, want waiting", h.deps.World.Round.Phase)
	}

	h.join("defender", world.SideCT)
	h.tick()
	if h.deps.World.Round.Phase != world.PhaseFreeze {
		t.Fatalf("phase = %v with both sides filled, want freeze", h.deps.World.Round.Phase)
	}
	if h.deps.World.Round.Index != 1 {
		t.Fatalf("round index = %d, want 1", h.deps.World.Round.Index)
	}
}

func TestMidRoundJoinerEntersDeadAtZeroHealth(t *testing.T) {
	h := newHarness(t)
	h.join("tee", world.SideT)
	victim := h.join("cee", world.SideCT)
	h.startRound()

	late := h.join("late", world.SideCT)
	if late.Alive() || late.Health != 0 {
		t.Fatalf("mid-round joiner alive=%v health=%d, want dead at 0", late.Alive(), late.Health)
	}

	// They spawn in with the next round.
	victim.ApplyDamage(200)
	h.tick()
	cfg := h.deps.Config
	h.ticks(cfg.Ticks(cfg.Round.RoundEndTime))
	if !late.Alive() || late.Health != world.MaxHealth {
		t.Fatalf("joiner alive=%v health=%d after the next freeze, want revived at full",
			late.Alive(), late.Health)
	}
}

func TestFreezeBlocksMovement(t *testing.T) {
	h := newHarness(t)
	attacker := h.join("tee", world.SideT)
	h.join("cee", world.SideCT)
	h.tick() // into freeze

	start := attacker.Pos
	attacker.Intent.MoveZ = 1
	attacker.Intent.Run = true
	h.ticks(5)

	if attacker.Pos != start {
		t.Fatalf("moved during freeze: %+v -> %+v", start, attacker.Pos)
	}
}

func TestEliminationEndsRound(t *testing.T) {
	h := newHarness(t)
	h.join("tee", world.SideT)
	victim := h.join("cee", world.SideCT)
	h.startRound()

	victim.ApplyDamage(200)
	h.tick()

	ws := h.deps.World
	if ws.Round.Phase != world.PhaseRoundEnd {
		t.Fatalf("phase = %v after elimination, want round end", ws.Round.Phase)
	}
	if ws.Round.EndReason != world.ReasonCTEliminated {
		t.Fatalf("end reason = %q, want ct_eliminated", ws.Round.EndReason)
	}
	if ws.TeamT.Score != 1 {
		t.Fatalf("terrorist score = %d, want 1", ws.TeamT.Score)
	}
}

func TestBothTeamsDownCountsTEliminated(t *testing.T) {
	h := newHarness(t)
	tee := h.join("tee", world.SideT)
	cee := h.join("cee", world.SideCT)
	h.startRound()

	tee.ApplyDamage(200)
	cee.ApplyDamage(200)
	h.tick()

	// Terrorist elimination is checked first, so the defenders take it.
	if h.deps.World.Round.EndReason != world.ReasonTEliminated {
		t.Fatalf("end reason = %q, want t_eliminated", h.deps.World.Round.EndReason)
	}
	if h.deps.World.Round.Winner != world.SideCT {
		t.Fatalf("winner = %v, want counter-terrorists", h.deps.World.Round.Winner)
	}
}

func TestClockExpiryDefendersWin(t *testing.T) {
	h := newHarness(t)
	h.join("tee", world.SideT)
	h.join("cee", world.SideCT)
	h.startRound()

	cfg := h.deps.Config
	h.ticks(cfg.Ticks(cfg.Round.RoundTime))

	ws := h.deps.World
	if ws.Round.EndReason != world.ReasonTimeExpired {
		t.Fatalf("end reason = %q, want time_expired", ws.Round.EndReason)
	}
	if ws.Round.Winner != world.SideCT {
		t.Fatalf("winner = %v, defenders win the draw", ws.Round.Winner)
	}
}

func TestNextRoundAfterEndDelay(t *testing.T) {
	h := newHarness(t)
	h.join("tee", world.SideT)
	victim := h.join("cee", world.SideCT)
	h.startRound()

	victim.ApplyDamage(200)
	h.tick()

	cfg := h.deps.Config
	h.ticks(cfg.Ticks(cfg.Round.RoundEndTime))

	ws := h.deps.World
	if ws.Round.Phase != world.PhaseFreeze {
		t.Fatalf("phase = %v after the end delay, want freeze", ws.Round.Phase)
	}
	if ws.Round.Index != 2 {
		t.Fatalf("round index = %d, want 2", ws.Round.Index)
	}
	if !victim.Alive() {
		t.Fatal("dead combatant not revived at round start")
	}
	if ws.BombCarrier() == nil {
		t.Fatal("no bomb carrier assigned for the new round")
	}
}

func TestMatchWinAtSixteen(t *testing.T) {
	h := newHarness(t)
	h.join("tee", world.SideT)
	victim := h.join("cee", world.SideCT)
	h.startRound()

	ws := h.deps.World
	ws.TeamT.Score = 15
	ws.Round.Index = 20 // past half-time, no swap on the way

	victim.ApplyDamage(200)
	h.tick()
	if ws.TeamT.Score != 16 {
		t.Fatalf("score = %d after the win, want 16", ws.TeamT.Score)
	}

	cfg := h.deps.Config
	h.ticks(cfg.Ticks(cfg.Round.RoundEndTime))
	if ws.Round.Phase != world.PhaseMatchEnd {
		t.Fatalf("phase = %v at 16 rounds, want match end", ws.Round.Phase)
	}
}

func TestFifteenAllContinues(t *testing.T) {
	h := newHarness(t)
	h.join("tee", world.SideT)
	victim := h.join("cee", world.SideCT)
	h.startRound()

	// Round 30 ends with the score level at 15-15.
	ws := h.deps.World
	ws.TeamT.Score = 14
	ws.TeamCT.Score = 15
	ws.Round.Index = 30

	victim.ApplyDamage(200)
	h.tick()
	if ws.TeamT.Score != 15 || ws.TeamCT.Score != 15 {
		t.Fatalf("score = %d-%d, want 15-15", ws.TeamT.Score, ws.TeamCT.Score)
	}

	cfg := h.deps.Config
	h.ticks(cfg.Ticks(cfg.Round.RoundEndTime))
	if ws.Round.Phase != world.PhaseFreeze {
		t.Fatalf("phase = %v at 15-15 after round 30, want freeze", ws.Round.Phase)
	}
	if ws.Round.Index != 31 {
		t.Fatalf("round index = %d, want play to continue into round 31", ws.Round.Index)
	}
}

func TestHalfTimeSwapsSides(t *testing.T) {
	h := newHarness(t)
	tee := h.join("tee", world.SideT)
	cee := h.join("cee", world.SideCT)
	h.startRound()

	ws := h.deps.World
	ws.TeamT.Score = 9
	ws.TeamCT.Score = 5
	ws.Round.Index = 15

	cee.ApplyDamage(200)
	h.tick()

	cfg := h.deps.Config
	h.ticks(cfg.Ticks(cfg.Round.RoundEndTime))

	if tee.Side != world.SideCT || cee.Side != world.SideT {
		t.Fatalf("sides not swapped: tee=%v cee=%v", tee.Side, cee.Side)
	}
	// Scores follow the players: the T-side total belongs to cee's new team.
	if ws.TeamCT.Score != 10 || ws.TeamT.Score != 5 {
		t.Fatalf("scores after swap = T %d / CT %d, want T 5 / CT 10", ws.TeamT.Score, ws.TeamCT.Score)
	}
	if tee.Money != cfg.Economy.StartMoney {
		t.Fatalf("money = %d after half-time, want reset to %d", tee.Money, cfg.Economy.StartMoney)
	}
}

// Full objective round: lobby, freeze, plant, countdown, explosion, payout.
func TestBombRoundEndToEnd(t *testing.T) {
	h := newHarness(t)
	h.join("planter", world.SideT)
	defender := h.join("defender", world.SideCT)
	h.startRound()

	ws := h.deps.World
	cfg := h.deps.Config

	carrier := h.plantBomb()
	h.ticks(cfg.Ticks(cfg.Round.BombTime))

	if ws.Round.EndReason != world.ReasonBombExploded {
		t.Fatalf("end reason = %q, want bomb_exploded", ws.Round.EndReason)
	}
	if ws.TeamT.Score != 1 || ws.TeamCT.Score != 0 {
		t.Fatalf("score = %d-%d, want 1-0", ws.TeamT.Score, ws.TeamCT.Score)
	}

	// start + plant reward + win bonus + objective bonus
	wantCarrier := cfg.Economy.StartMoney + cfg.Economy.PlantReward + 3250 + 300
	if carrier.Money != wantCarrier {
		t.Fatalf("carrier money = %d, want %d", carrier.Money, wantCarrier)
	}
	// start + first-loss bonus
	if defender.Money != cfg.Economy.StartMoney+1400 {
		t.Fatalf("defender money = %d, want %d", defender.Money, cfg.Economy.StartMoney+1400)
	}
	if ws.TeamCT.LossStreak != 1 {
		t.Fatalf("defender loss streak = %d, want 1", ws.TeamCT.LossStreak)
	}
}

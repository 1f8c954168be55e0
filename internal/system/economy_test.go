package system

import (
	"testing"

	"github.com/strikecore/server/internal/world"
)

func TestRoundEndPayouts(t *testing.T) {
	h := newHarness(t)
	tPlayer := h.join("tee", world.SideT)
	ctPlayer := h.join("cee", world.SideCT)

	tPlayer.Money = 0
	ctPlayer.Money = 0

	h.economy.ApplyRoundEnd(world.SideCT, world.ReasonTimeExpired)

	if ctPlayer.Money != 3250 {
		t.Fatalf("winner payout = %d, want 3250", ctPlayer.Money)
	}
	if tPlayer.Money != 1400 {
		t.Fatalf("loser payout at streak 0 = %d, want 1400", tPlayer.Money)
	}
}

func TestLossBonusScalesWithStreak(t *testing.T) {
	h := newHarness(t)
	tPlayer := h.join("tee", world.SideT)
	h.join("cee", world.SideCT)

	h.deps.World.TeamT.LossStreak = 2
	tPlayer.Money = 0
	h.economy.ApplyRoundEnd(world.SideCT, world.ReasonTimeExpired)

	if tPlayer.Money != 1400+2*500 {
		t.Fatalf("loser payout at streak 2 = %d, want 2400", tPlayer.Money)
	}
}

func TestLossBonusCapped(t *testing.T) {
	h := newHarness(t)
	tPlayer := h.join("tee", world.SideT)
	h.join("cee", world.SideCT)

	h.deps.World.TeamT.LossStreak = 10
	tPlayer.Money = 0
	h.economy.ApplyRoundEnd(world.SideCT, world.ReasonTimeExpired)

	if tPlayer.Money != 3400 {
		t.Fatalf("loser payout at streak 10 = %d, want capped 3400", tPlayer.Money)
	}
}

func TestObjectiveBonusOnBombResolution(t *testing.T) {
	h := newHarness(t)
	tPlayer := h.join("tee", world.SideT)
	h.join("cee", world.SideCT)

	tPlayer.Money = 0
	h.economy.ApplyRoundEnd(world.SideT, world.ReasonBombExploded)

	if tPlayer.Money != 3250+300 {
		t.Fatalf("winner payout on explosion = %d, want 3550", tPlayer.Money)
	}
}

func TestMoneyClampsAtMaximum(t *testing.T) {
	h := newHarness(t)
	tPlayer := h.join("tee", world.SideT)
	h.join("cee", world.SideCT)

	tPlayer.Money = h.deps.Config.Economy.MaxMoney - 100
	h.economy.ApplyRoundEnd(world.SideT, world.ReasonCTEliminated)

	if tPlayer.Money != h.deps.Config.Economy.MaxMoney {
		t.Fatalf("money = %d, want clamped to %d", tPlayer.Money, h.deps.Config.Economy.MaxMoney)
	}
}

func TestKillRewardImmediate(t *testing.T) {
	h := newHarness(t)
	tPlayer := h.join("tee", world.SideT)

	tPlayer.Money = 0
	h.economy.KillReward(tPlayer)
	if tPlayer.Money != h.deps.Config.Economy.KillReward {
		t.Fatalf("kill reward = %d, want %d", tPlayer.Money, h.deps.Config.Economy.KillReward)
	}
}

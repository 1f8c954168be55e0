package system

import (
	"testing"

	"github.com/strikecore/server/internal/data"
	"github.com/strikecore/server/internal/world"
)

// sendIntent queues one input record through the real intent pipeline.
func (h *harness) sendIntent(c *world.Combatant, in world.Intent) {
	h.source.intents = append(h.source.intents, QueuedIntent{CombatantID: c.ID, Intent: in})
}

// faceOff puts the attacker at the origin looking down +Z at the victim.
func faceOff(attacker, victim *world.Combatant, distance float64) {
	moveTo(attacker, 0, 0)
	attacker.Yaw = 0
	attacker.Pitch = 0
	moveTo(victim, 0, distance)
}

func TestHitscanKillPaysAndEndsRound(t *testing.T) {
	h := newHarness(t)
	attacker := h.join("attacker", world.SideT)
	victim := h.join("victim", world.SideCT)
	h.startRound()

	faceOff(attacker, victim, 5)
	moneyBefore := attacker.Money

	// A level shot from eye height lands in the head band of the capsule:
	// 30 base * 4 = 120, a one-shot kill.
	h.sendIntent(attacker, world.Intent{FirePressed: true})
	h.tick()

	if victim.Alive() {
		t.Fatalf("victim alive at %d health", victim.Health)
	}
	if victim.Health != 0 {
		t.Fatalf("victim health = %d, want 0", victim.Health)
	}
	if attacker.Kills != 1 || victim.Deaths != 1 {
		t.Fatalf("kills/deaths = %d/%d, want 1/1", attacker.Kills, victim.Deaths)
	}
	if attacker.Money != moneyBefore+h.deps.Config.Economy.KillReward {
		t.Fatalf("kill reward missing: %d -> %d", moneyBefore, attacker.Money)
	}
	if h.deps.World.Round.Phase != world.PhaseRoundEnd {
		t.Fatalf("phase = %v after the last defender died, want round end", h.deps.World.Round.Phase)
	}
}

func TestShotConsumesAmmo(t *testing.T) {
	h := newHarness(t)
	attacker := h.join("attacker", world.SideT)
	victim := h.join("victim", world.SideCT)
	h.startRound()

	faceOff(attacker, victim, 50) // out of pistol range, shot still fires
	w := attacker.Inv.ActiveWeapon()
	mag := w.Magazine

	h.sendIntent(attacker, world.Intent{FirePressed: true})
	h.tick()

	if w.Magazine != mag-1 {
		t.Fatalf("magazine = %d, want %d", w.Magazine, mag-1)
	}
	if w.CooldownTicksLeft == 0 {
		t.Fatal("no fire cooldown armed after the shot")
	}
}

func TestEmptyingMagazineAutoReloads(t *testing.T) {
	h := newHarness(t)
	attacker := h.join("attacker", world.SideT)
	victim := h.join("victim", world.SideCT)
	h.startRound()

	faceOff(attacker, victim, 50) // out of pistol range, shot still fires
	w := attacker.Inv.ActiveWeapon()
	w.Magazine = 1

	// Fire the last round, then go idle.
	h.sendIntent(attacker, world.Intent{FirePressed: true})
	h.tick()
	h.ticks(2)

	if !w.Reloading {
		t.Fatalf("not reloading after the magazine emptied (mag=%d reserve=%d)",
			w.Magazine, w.Reserve)
	}

	reserve := w.Reserve
	h.ticks(h.deps.Config.Ticks(w.Tmpl.ReloadTime))
	if w.Magazine != w.Tmpl.Magazine {
		t.Fatalf("magazine = %d after the auto-reload, want %d", w.Magazine, w.Tmpl.Magazine)
	}
	if w.Reserve != reserve-w.Tmpl.Magazine {
		t.Fatalf("reserve = %d, want %d", w.Reserve, reserve-w.Tmpl.Magazine)
	}
}

func TestSemiAutoIgnoresHeldTrigger(t *testing.T) {
	h := newHarness(t)
	attacker := h.join("attacker", world.SideT)
	victim := h.join("victim", world.SideCT)
	h.startRound()

	faceOff(attacker, victim, 50)
	w := attacker.Inv.ActiveWeapon()
	mag := w.Magazine

	h.sendIntent(attacker, world.Intent{FirePressed: true, FireHeld: true})
	h.tick()
	// Trigger stays held: a semi-auto pistol must not fire again.
	for i := 0; i < 20; i++ {
		h.sendIntent(attacker, world.Intent{FireHeld: true})
		h.tick()
	}

	if w.Magazine != mag-1 {
		t.Fatalf("held trigger fired %d extra rounds", mag-1-w.Magazine)
	}
}

func TestFriendlyFireDisabled(t *testing.T) {
	h := newHarness(t)
	attacker := h.join("attacker", world.SideT)
	teammate := h.join("teammate", world.SideT)
	h.join("defender", world.SideCT)
	h.startRound()

	faceOff(attacker, teammate, 5)
	h.sendIntent(attacker, world.Intent{FirePressed: true})
	h.tick()

	if teammate.Health != world.MaxHealth {
		t.Fatalf("teammate health = %d after a friendly shot, want %d", teammate.Health, world.MaxHealth)
	}
}

func TestDeadVictimDropsWeapon(t *testing.T) {
	h := newHarness(t)
	attacker := h.join("attacker", world.SideT)
	h.join("backup", world.SideT) // keeps the round alive after the kill
	victim := h.join("victim", world.SideCT)
	h.join("anchor", world.SideCT)
	h.startRound()

	faceOff(attacker, victim, 5)
	h.sendIntent(attacker, world.Intent{FirePressed: true})
	h.tick()

	if victim.Alive() {
		t.Fatal("victim survived the headshot")
	}
	if h.deps.World.Pickups.Count() != 1 {
		t.Fatalf("pickups = %d after death, want the dropped pistol", h.deps.World.Pickups.Count())
	}
}

func TestMeleeSwingHitsOnce(t *testing.T) {
	h := newHarness(t)
	attacker := h.join("attacker", world.SideT)
	h.join("backup", world.SideT)
	victim := h.join("victim", world.SideCT)
	h.join("anchor", world.SideCT)
	h.startRound()

	faceOff(attacker, victim, 1)
	attacker.Inv.Switch(data.SlotMelee)
	knife := attacker.Inv.ActiveWeapon()

	h.sendIntent(attacker, world.Intent{FirePressed: true})
	swingTicks := h.deps.Config.Ticks(knife.Tmpl.SwingTime)
	h.ticks(swingTicks + 2)

	want := world.MaxHealth - knife.Tmpl.Damage
	if victim.Health != want {
		t.Fatalf("victim health = %d after one swing, want exactly %d", victim.Health, want)
	}
}

func TestReloadViaIntent(t *testing.T) {
	h := newHarness(t)
	attacker := h.join("attacker", world.SideT)
	h.join("defender", world.SideCT)
	h.startRound()

	w := attacker.Inv.ActiveWeapon()
	w.Magazine = 3

	h.sendIntent(attacker, world.Intent{Reload: true})
	h.tick()
	if !w.Reloading {
		t.Fatal("reload intent ignored")
	}
	h.ticks(h.deps.Config.Ticks(w.Tmpl.ReloadTime))
	if w.Magazine != w.Tmpl.Magazine {
		t.Fatalf("magazine = %d after reload, want %d", w.Magazine, w.Tmpl.Magazine)
	}
}

func TestBuyDuringFreezeOnly(t *testing.T) {
	h := newHarness(t)
	buyer := h.join("buyer", world.SideT)
	h.join("defender", world.SideCT)
	h.tick() // into freeze
	buyer.Money = 5000

	const rifleID = 30
	h.sendIntent(buyer, world.Intent{BuyWeapon: rifleID})
	h.tick()

	rifle := buyer.Inv.Get(data.SlotPrimary)
	if rifle == nil {
		t.Fatal("freeze-time purchase failed")
	}
	price := h.deps.Weapons.Get(rifleID).Price
	if buyer.Money != 5000-price {
		t.Fatalf("money = %d after purchase, want %d", buyer.Money, 5000-price)
	}

	// Burn through freeze and the buy window, then try again.
	cfg := h.deps.Config
	h.ticks(cfg.Ticks(cfg.Round.FreezeTime) + cfg.Ticks(cfg.Round.BuyWindow))
	buyer.Inv.Remove(data.SlotPrimary)
	moneyBefore := buyer.Money

	h.sendIntent(buyer, world.Intent{BuyWeapon: rifleID})
	h.tick()
	if buyer.Inv.Get(data.SlotPrimary) != nil || buyer.Money != moneyBefore {
		t.Fatal("purchase accepted after the buy window closed")
	}
}

package world

import (
	"github.com/strikecore/server/internal/data"
)

// Weapon is the runtime state of one weapon instance. The static class data
// lives on the template; everything here is mutable per-instance state owned
// by exactly one inventory slot (or one world pickup) at a time.
//
// All timers are tick counters advanced once per tick by the weapon tick
// system, never by blocking waits.
type Weapon struct {
	Tmpl *data.WeaponTemplate

	Magazine int
	Reserve  int

	Reloading       bool
	ReloadTicksLeft int

	CooldownTicksLeft int // ticks until next eligible shot
	TicksSinceShot    int // for recoil decay and first-shot accuracy
	Recoil            float64

	Scoped bool // scoped variant only

	SwingTicksLeft  int  // melee only; 0 = no swing in progress
	SwingHit        bool // a target was already struck during this swing
	swingTotalTicks int
}

// NewWeapon creates an instance with a full magazine and full reserve.
func NewWeapon(tmpl *data.WeaponTemplate) *Weapon {
	return &Weapon{
		Tmpl:           tmpl,
		Magazine:       tmpl.Magazine,
		Reserve:        tmpl.Reserve,
		TicksSinceShot: 1 << 20,
	}
}

// NewWeaponWithAmmo restores an instance from a pickup snapshot.
func NewWeaponWithAmmo(tmpl *data.WeaponTemplate, magazine, reserve int) *Weapon {
	w := NewWeapon(tmpl)
	w.Magazine = magazine
	w.Reserve = reserve
	return w
}

// IsMelee reports the melee variant (no ammo or reload state).
func (w *Weapon) IsMelee() bool { return w.Tmpl.Variant == data.VariantMelee }

// CanFire is the full fire gate: not reloading, ammo available (melee is
// exempt), cooldown elapsed, and no swing already in progress.
func (w *Weapon) CanFire() bool {
	if w.Reloading || w.CooldownTicksLeft > 0 {
		return false
	}
	if w.IsMelee() {
		return w.SwingTicksLeft == 0
	}
	return w.Magazine > 0
}

// WantsFire applies the variant trigger rule: automatics fire on level,
// everything else on the press edge only.
func (w *Weapon) WantsFire(pressedEdge, held bool) bool {
	if w.Tmpl.Variant == data.VariantAutomatic {
		return held || pressedEdge
	}
	return pressedEdge
}

// RegisterShot commits one fired round: decrements the magazine, arms the
// fire-rate cooldown, and accumulates recoil up to the cap.
func (w *Weapon) RegisterShot(cooldownTicks int, recoilPerShot, recoilMax float64) {
	if !w.IsMelee() {
		w.Magazine--
	}
	w.CooldownTicksLeft = cooldownTicks
	w.TicksSinceShot = 0
	w.Recoil += recoilPerShot
	if w.Recoil > recoilMax {
		w.Recoil = recoilMax
	}
}

// StartReload begins a reload. No-op when already reloading, the magazine is
// full, the reserve is empty, or for melee. Returns whether a reload started.
func (w *Weapon) StartReload(reloadTicks int) bool {
	if w.IsMelee() || w.Reloading {
		return false
	}
	if w.Magazine >= w.Tmpl.Magazine || w.Reserve <= 0 {
		return false
	}
	w.Reloading = true
	w.ReloadTicksLeft = reloadTicks
	w.Scoped = false
	return true
}

// CancelReload aborts an in-progress reload with no ammo transferred.
// Used on weapon switch and death.
func (w *Weapon) CancelReload() {
	w.Reloading = false
	w.ReloadTicksLeft = 0
}

// StartSwing begins a melee swing window.
func (w *Weapon) StartSwing(swingTicks int) {
	w.SwingTicksLeft = swingTicks
	w.SwingHit = false
	w.swingTotalTicks = swingTicks
	w.CooldownTicksLeft = swingTicks
}

// SwingHitWindow reports whether the swing is inside its hit-test window,
// the middle 30% to 70% of the swing duration.
func (w *Weapon) SwingHitWindow() bool {
	if w.SwingTicksLeft == 0 || w.swingTotalTicks == 0 {
		return false
	}
	elapsed := float64(w.swingTotalTicks-w.SwingTicksLeft) / float64(w.swingTotalTicks)
	return elapsed >= 0.3 && elapsed <= 0.7
}

// Tick advances all per-weapon timers by one tick. Recoil decays linearly
// once the cooldown interval has passed since the last shot; a completed
// reload moves min(missing, reserve) rounds atomically.
func (w *Weapon) Tick(recoilDecayPerTick float64, recoilCooldownTicks int) {
	if w.CooldownTicksLeft > 0 {
		w.CooldownTicksLeft--
	}
	if w.SwingTicksLeft > 0 {
		w.SwingTicksLeft--
	}
	if w.TicksSinceShot < 1<<20 {
		w.TicksSinceShot++
	}
	if w.Recoil > 0 && w.TicksSinceShot > recoilCooldownTicks {
		w.Recoil -= recoilDecayPerTick
		if w.Recoil < 0 {
			w.Recoil = 0
		}
	}
	if w.Reloading {
		w.ReloadTicksLeft--
		if w.ReloadTicksLeft <= 0 {
			move := w.Tmpl.Magazine - w.Magazine
			if move > w.Reserve {
				move = w.Reserve
			}
			w.Magazine += move
			w.Reserve -= move
			w.Reloading = false
			w.ReloadTicksLeft = 0
		}
	}
}

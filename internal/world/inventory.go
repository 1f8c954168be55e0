package world

import (
	"github.com/strikecore/server/internal/data"
)

// Inventory is the bounded loadout of one combatant: one slot each for
// melee, secondary and primary. The melee slot is always occupied.
type Inventory struct {
	Slots  [data.SlotCount]*Weapon
	Active data.WeaponSlot
}

// NewInventory creates a loadout holding only the melee weapon.
func NewInventory(melee *data.WeaponTemplate) *Inventory {
	inv := &Inventory{Active: data.SlotMelee}
	inv.Slots[data.SlotMelee] = NewWeapon(melee)
	return inv
}

// ActiveWeapon returns the weapon in the active slot, never nil as long as
// the melee slot is populated.
func (inv *Inventory) ActiveWeapon() *Weapon {
	if w := inv.Slots[inv.Active]; w != nil {
		return w
	}
	return inv.Slots[data.SlotMelee]
}

// Get returns the weapon in a slot, or nil.
func (inv *Inventory) Get(slot data.WeaponSlot) *Weapon {
	if slot < 0 || slot >= data.SlotCount {
		return nil
	}
	return inv.Slots[slot]
}

// CanPurchase applies category exclusivity: buying into an occupied slot is
// rejected rather than replacing.
func (inv *Inventory) CanPurchase(tmpl *data.WeaponTemplate) bool {
	return inv.Slots[tmpl.Slot] == nil
}

// Add places a weapon into its slot. When the slot is occupied and force is
// set, the current occupant is returned as displaced (the caller drops it to
// the world); without force the add fails.
func (inv *Inventory) Add(w *Weapon, force bool) (displaced *Weapon, ok bool) {
	slot := w.Tmpl.Slot
	if cur := inv.Slots[slot]; cur != nil {
		if !force {
			return nil, false
		}
		displaced = cur
		displaced.CancelReload()
	}
	inv.Slots[slot] = w
	inv.Active = slot
	return displaced, true
}

// Remove takes the weapon out of a slot. The active slot falls back to melee.
func (inv *Inventory) Remove(slot data.WeaponSlot) *Weapon {
	if slot < 0 || slot >= data.SlotCount {
		return nil
	}
	w := inv.Slots[slot]
	if w == nil {
		return nil
	}
	inv.Slots[slot] = nil
	w.CancelReload()
	if inv.Active == slot {
		inv.Active = data.SlotMelee
	}
	return w
}

// Switch activates a slot. Gated only by slot occupancy: ammo and cooldown
// state never block a switch. An in-progress reload on the previous weapon
// is cancelled (restartable, no partial credit).
func (inv *Inventory) Switch(slot data.WeaponSlot) bool {
	if slot < 0 || slot >= data.SlotCount || inv.Slots[slot] == nil {
		return false
	}
	if slot == inv.Active {
		return true
	}
	if prev := inv.Slots[inv.Active]; prev != nil {
		prev.CancelReload()
		prev.Scoped = false
	}
	inv.Active = slot
	return true
}

// DropActive removes the active weapon for dropping. Melee is not droppable.
func (inv *Inventory) DropActive() *Weapon {
	if inv.Active == data.SlotMelee {
		return nil
	}
	return inv.Remove(inv.Active)
}

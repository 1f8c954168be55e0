package handler

import (
	"github.com/strikecore/server/internal/core/event"
	"github.com/strikecore/server/internal/world"
)

// BuyOpen reports whether purchases are currently accepted: freeze time, or
// the buy window at the start of the active phase.
func BuyOpen(ws *world.State) bool {
	switch ws.Round.Phase {
	case world.PhaseFreeze:
		return true
	case world.PhaseActive:
		return ws.Round.BuyTicks > 0
	}
	return false
}

// HandleBuyWeapon processes a purchase request. Rejections (window closed,
// unknown id, unaffordable, occupied category slot, dead buyer) are silent:
// the client sees only the unchanged money/loadout, plus a notice.
func HandleBuyWeapon(deps *Deps, c *world.Combatant, weaponID int32) bool {
	if !c.Alive() && deps.World.Round.Phase != world.PhaseFreeze {
		return false
	}
	if !BuyOpen(deps.World) {
		return false
	}
	tmpl := deps.Weapons.Get(weaponID)
	if tmpl == nil || tmpl.Price <= 0 {
		return false
	}
	if c.Money < tmpl.Price {
		event.Emit(deps.Bus, event.Notice{CombatantID: c.ID, Text: "not enough money"})
		return false
	}
	if !c.Inv.CanPurchase(tmpl) {
		event.Emit(deps.Bus, event.Notice{CombatantID: c.ID, Text: "already carrying one"})
		return false
	}
	c.AddMoney(-tmpl.Price, deps.Config.Economy.MaxMoney)
	c.Inv.Add(world.NewWeapon(tmpl), false)
	return true
}

// HandleBuyArmor tops armor up to full for the configured price.
func HandleBuyArmor(deps *Deps, c *world.Combatant) bool {
	if !BuyOpen(deps.World) {
		return false
	}
	if c.Armor >= world.MaxArmor {
		return false
	}
	price := deps.Config.Economy.ArmorPrice
	if c.Money < price {
		event.Emit(deps.Bus, event.Notice{CombatantID: c.ID, Text: "not enough money"})
		return false
	}
	c.AddMoney(-price, deps.Config.Economy.MaxMoney)
	c.Armor = world.MaxArmor
	return true
}

// HandleDrop throws the active weapon to the ground as a pickup entity
// carrying the current ammo snapshot. Melee cannot be dropped.
func HandleDrop(deps *Deps, c *world.Combatant) bool {
	if !c.Alive() {
		return false
	}
	w := c.Inv.DropActive()
	if w == nil {
		return false
	}
	deps.World.Pickups.Spawn(c.Pos, w.Tmpl.ID, w.Magazine, w.Reserve)
	return true
}

// HandlePickup grabs the nearest pickup in reach, force-dropping the weapon
// currently occupying that slot. Ammo comes from the snapshot, not a refill.
func HandlePickup(deps *Deps, c *world.Combatant, reach float64) bool {
	if !c.Alive() {
		return false
	}
	id, item, ok := deps.World.Pickups.Nearest(c.Pos, reach)
	if !ok {
		return false
	}
	tmpl := deps.Weapons.Get(item.WeaponID)
	if tmpl == nil {
		return false
	}
	taken := deps.World.Pickups.Take(id)
	if taken == nil {
		return false
	}
	w := world.NewWeaponWithAmmo(tmpl, taken.Magazine, taken.Reserve)
	if displaced, _ := c.Inv.Add(w, true); displaced != nil {
		deps.World.Pickups.Spawn(c.Pos, displaced.Tmpl.ID, displaced.Magazine, displaced.Reserve)
	}
	return true
}

package world

import (
	"github.com/strikecore/server/internal/core/ecs"
	"github.com/strikecore/server/internal/physics"
)

// PickupPos is the world position component of a dropped weapon.
type PickupPos struct {
	Pos physics.Vec3
}

// PickupItem carries the weapon snapshot: template id plus the ammo counts
// at the moment of the drop. Picking up restores exactly this state, never
// a full refill.
type PickupItem struct {
	WeaponID int32
	Magazine int
	Reserve  int
}

// Pickups manages dropped-weapon entities on the ECS world.
type Pickups struct {
	world *ecs.World
	pos   *ecs.Store[PickupPos]
	items *ecs.Store[PickupItem]
}

func NewPickups(w *ecs.World) *Pickups {
	p := &Pickups{
		world: w,
		pos:   ecs.NewStore[PickupPos](),
		items: ecs.NewStore[PickupItem](),
	}
	w.Registry().Register(p.pos)
	w.Registry().Register(p.items)
	return p
}

// Spawn drops a weapon snapshot at a position.
func (p *Pickups) Spawn(pos physics.Vec3, weaponID int32, magazine, reserve int) ecs.EntityID {
	id := p.world.CreateEntity()
	p.pos.Set(id, &PickupPos{Pos: pos})
	p.items.Set(id, &PickupItem{WeaponID: weaponID, Magazine: magazine, Reserve: reserve})
	return id
}

// Nearest returns the closest pickup within maxDist of a point. Entity id
// breaks distance ties so the result does not depend on map iteration order.
func (p *Pickups) Nearest(from physics.Vec3, maxDist float64) (ecs.EntityID, *PickupItem, bool) {
	var (
		bestID   ecs.EntityID
		bestItem *PickupItem
		bestDist = maxDist
		found    bool
	)
	ecs.Each2(p.pos, p.items, func(id ecs.EntityID, pp *PickupPos, it *PickupItem) {
		d := from.Sub(pp.Pos).Len()
		if d < bestDist || (found && d == bestDist && id < bestID) {
			bestID, bestItem, bestDist, found = id, it, d, true
		}
	})
	return bestID, bestItem, found
}

// Take consumes a pickup: the item component is removed immediately so a
// second combatant cannot grab it in the same tick, and the entity is queued
// for end-of-tick destruction.
func (p *Pickups) Take(id ecs.EntityID) *PickupItem {
	it, ok := p.items.Get(id)
	if !ok {
		return nil
	}
	p.items.Remove(id)
	p.world.MarkForDestruction(id)
	return it
}

// Clear destroys all pickups (round reset).
func (p *Pickups) Clear() {
	p.pos.Each(func(id ecs.EntityID, _ *PickupPos) {
		p.items.Remove(id)
		p.world.MarkForDestruction(id)
	})
}

// Count returns the number of live pickups.
func (p *Pickups) Count() int { return p.items.Len() }

// Each visits all live pickups (snapshot building).
func (p *Pickups) Each(fn func(ecs.EntityID, physics.Vec3, *PickupItem)) {
	ecs.Each2(p.pos, p.items, func(id ecs.EntityID, pp *PickupPos, it *PickupItem) {
		fn(id, pp.Pos, it)
	})
}

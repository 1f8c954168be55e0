package system

import (
	"math"

	"github.com/strikecore/server/internal/data"
	"github.com/strikecore/server/internal/world"
)

// Hit-location multipliers applied to base weapon damage.
const (
	multHead    = 4.0
	multChest   = 1.0
	multStomach = 1.25
	multLimb    = 0.75
)

// Armor penetration factors when the target has any armor left. Helmets stop
// more than vests do.
const (
	armorPenHead = 0.5
	armorPenBody = 0.7
)

// DamageResult is the outcome of resolving one hit before it is applied.
type DamageResult struct {
	HealthDamage int
	ArmorDamage  int
}

// ResolveDamage computes the final health and armor deltas for a hit.
// Falloff interpolates linearly from full damage at point blank down to the
// weapon's floor fraction at maximum range. The resolved health damage never
// drops below 1.
func ResolveDamage(tpl *data.WeaponTemplate, distance float64, loc world.HitLocation, targetArmor int) DamageResult {
	falloff := 1.0
	if tpl.Range > 0 {
		frac := distance / tpl.Range
		if frac > 1 {
			frac = 1
		}
		falloff = 1.0 - frac*(1.0-tpl.FalloffFloor)
	}

	var locMult float64
	switch loc {
	case world.LocHead:
		locMult = multHead
	case world.LocStomach:
		locMult = multStomach
	case world.LocLimb:
		locMult = multLimb
	default:
		locMult = multChest
	}

	dmg := float64(tpl.Damage) * falloff * locMult

	if targetArmor > 0 {
		if loc == world.LocHead {
			dmg *= armorPenHead
		} else {
			dmg *= armorPenBody
		}
	}

	total := int(math.Round(dmg))
	if total < 1 {
		total = 1
	}

	health, absorbed := splitArmor(total, targetArmor)
	return DamageResult{HealthDamage: health, ArmorDamage: absorbed}
}

// splitArmor divides resolved damage between armor durability and health.
// Armor soaks half the damage, capped at what is left of it; the remainder
// goes to health, never less than 1.
func splitArmor(damage, armor int) (health, absorbed int) {
	if armor > 0 {
		absorbed = int(math.Round(float64(damage) * 0.5))
		if absorbed > armor {
			absorbed = armor
		}
	}
	health = damage - absorbed
	if health < 1 {
		health = 1
	}
	return health, absorbed
}

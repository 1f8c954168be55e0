package system

import (
	"testing"

	"github.com/strikecore/server/internal/data"
	"github.com/strikecore/server/internal/world"
)

func testRifle() *data.WeaponTemplate {
	return &data.WeaponTemplate{
		ID: 30, Damage: 36, Range: 60, FalloffFloor: 0.7,
	}
}

func TestArmorSplit(t *testing.T) {
	health, absorbed := splitArmor(40, 20)
	if health != 20 || absorbed != 20 {
		t.Fatalf("split(40, armor 20) = %d/%d, want 20 health and 20 armor", health, absorbed)
	}

	// Plenty of armor: an even half each way.
	health, absorbed = splitArmor(40, 100)
	if health != 20 || absorbed != 20 {
		t.Fatalf("split(40, armor 100) = %d/%d, want 20/20", health, absorbed)
	}

	// No armor: everything to health.
	health, absorbed = splitArmor(40, 0)
	if health != 40 || absorbed != 0 {
		t.Fatalf("split(40, armor 0) = %d/%d, want 40/0", health, absorbed)
	}
}

func TestHeadshotMultiplier(t *testing.T) {
	tpl := &data.WeaponTemplate{ID: 10, Damage: 30, Range: 40, FalloffFloor: 1.0}
	res := ResolveDamage(tpl, 0, world.LocHead, 0)
	if res.HealthDamage != 120 {
		t.Fatalf("head hit = %d, want 30*4 = 120", res.HealthDamage)
	}
	if res.ArmorDamage != 0 {
		t.Fatalf("armor damage = %d on an unarmored target", res.ArmorDamage)
	}
}

func TestDamageFloor(t *testing.T) {
	// Tiny base damage, limb hit, max falloff, armored: still at least 1.
	tpl := &data.WeaponTemplate{ID: 99, Damage: 1, Range: 50, FalloffFloor: 0.5}
	res := ResolveDamage(tpl, 50, world.LocLimb, 100)
	if res.HealthDamage < 1 {
		t.Fatalf("resolved health damage %d, floor is 1", res.HealthDamage)
	}
}

func TestRangeFalloff(t *testing.T) {
	tpl := testRifle()

	near := ResolveDamage(tpl, 0, world.LocChest, 0)
	if near.HealthDamage != 36 {
		t.Fatalf("point blank = %d, want full 36", near.HealthDamage)
	}

	far := ResolveDamage(tpl, tpl.Range, world.LocChest, 0)
	want := 25 // round(36 * 0.7)
	if far.HealthDamage != want {
		t.Fatalf("at max range = %d, want %d", far.HealthDamage, want)
	}

	mid := ResolveDamage(tpl, tpl.Range/2, world.LocChest, 0)
	if mid.HealthDamage <= far.HealthDamage || mid.HealthDamage >= near.HealthDamage {
		t.Fatalf("mid range %d not between %d and %d", mid.HealthDamage, far.HealthDamage, near.HealthDamage)
	}
}

func TestLocationMultipliers(t *testing.T) {
	tpl := &data.WeaponTemplate{ID: 11, Damage: 40, Range: 40, FalloffFloor: 1.0}

	chest := ResolveDamage(tpl, 0, world.LocChest, 0).HealthDamage
	stomach := ResolveDamage(tpl, 0, world.LocStomach, 0).HealthDamage
	limb := ResolveDamage(tpl, 0, world.LocLimb, 0).HealthDamage

	if chest != 40 {
		t.Fatalf("chest = %d, want 40", chest)
	}
	if stomach != 50 {
		t.Fatalf("stomach = %d, want 40*1.25 = 50", stomach)
	}
	if limb != 30 {
		t.Fatalf("limb = %d, want 40*0.75 = 30", limb)
	}
}

func TestArmorPenetration(t *testing.T) {
	tpl := &data.WeaponTemplate{ID: 12, Damage: 40, Range: 40, FalloffFloor: 1.0}

	// Body hit on an armored target: 40 * 0.7 = 28, split 14 armor / 14 health.
	res := ResolveDamage(tpl, 0, world.LocChest, 100)
	if res.HealthDamage != 14 || res.ArmorDamage != 14 {
		t.Fatalf("armored chest = %d/%d, want 14 health and 14 armor", res.HealthDamage, res.ArmorDamage)
	}

	// Head hit on a helmet: 40 * 4 * 0.5 = 80, split evenly.
	head := ResolveDamage(tpl, 0, world.LocHead, 100)
	if head.HealthDamage != 40 || head.ArmorDamage != 40 {
		t.Fatalf("armored head = %d/%d, want 40/40", head.HealthDamage, head.ArmorDamage)
	}
}

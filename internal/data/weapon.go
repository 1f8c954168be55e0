package data

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// WeaponVariant selects the fire behavior of the weapon state machine.
type WeaponVariant int

const (
	VariantMelee WeaponVariant = iota
	VariantSemiAuto
	VariantAutomatic
	VariantScoped
)

// WeaponSlot is the inventory slot a weapon occupies.
type WeaponSlot int

const (
	SlotMelee WeaponSlot = iota
	SlotSecondary
	SlotPrimary
	SlotCount
)

var variantMap = map[string]WeaponVariant{
	"melee":  VariantMelee,
	"semi":   VariantSemiAuto,
	"auto":   VariantAutomatic,
	"scoped": VariantScoped,
}

var slotMap = map[string]WeaponSlot{
	"melee":     SlotMelee,
	"secondary": SlotSecondary,
	"primary":   SlotPrimary,
}

// WeaponTemplate holds the static class data for one weapon id.
// Runtime state (ammo, cooldowns) lives on world.Weapon.
type WeaponTemplate struct {
	ID           int32
	Name         string
	Variant      WeaponVariant
	Slot         WeaponSlot
	Damage       int           // base damage at distance 0
	FireRate     float64       // rounds per second
	Magazine     int           // magazine capacity
	Reserve      int           // reserve ammo capacity
	ReloadTime   time.Duration
	Price        int
	Range        float64       // max hit distance; beyond it the cast is bounded out
	FalloffFloor float64       // damage multiplier at exactly Range (1.0 at 0, lerp between)
	SwingTime    time.Duration // melee only: full swing duration
}

type weaponYAML struct {
	ID           int32   `yaml:"id"`
	Name         string  `yaml:"name"`
	Variant      string  `yaml:"variant"`
	Slot         string  `yaml:"slot"`
	Damage       int     `yaml:"damage"`
	FireRate     float64 `yaml:"fire_rate"`
	Magazine     int     `yaml:"magazine"`
	Reserve      int     `yaml:"reserve"`
	ReloadMS     int     `yaml:"reload_ms"`
	Price        int     `yaml:"price"`
	Range        float64 `yaml:"range"`
	FalloffFloor float64 `yaml:"falloff_floor"`
	SwingMS      int     `yaml:"swing_ms"`
}

// WeaponTable is the weapon catalog, loaded once at boot.
type WeaponTable struct {
	byID map[int32]*WeaponTemplate
	ids  []int32 // load order, for deterministic iteration
}

func LoadWeaponTable(path string) (*WeaponTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weapons %s: %w", path, err)
	}
	var entries []weaponYAML
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse weapons %s: %w", path, err)
	}

	t := &WeaponTable{byID: make(map[int32]*WeaponTemplate, len(entries))}
	for _, e := range entries {
		variant, ok := variantMap[e.Variant]
		if !ok {
			return nil, fmt.Errorf("weapon %d (%s): unknown variant %q", e.ID, e.Name, e.Variant)
		}
		slot, ok := slotMap[e.Slot]
		if !ok {
			return nil, fmt.Errorf("weapon %d (%s): unknown slot %q", e.ID, e.Name, e.Slot)
		}
		if _, dup := t.byID[e.ID]; dup {
			return nil, fmt.Errorf("weapon %d (%s): duplicate id", e.ID, e.Name)
		}
		if variant != VariantMelee && (e.Magazine <= 0 || e.FireRate <= 0) {
			return nil, fmt.Errorf("weapon %d (%s): magazine and fire_rate required", e.ID, e.Name)
		}
		t.byID[e.ID] = &WeaponTemplate{
			ID:           e.ID,
			Name:         e.Name,
			Variant:      variant,
			Slot:         slot,
			Damage:       e.Damage,
			FireRate:     e.FireRate,
			Magazine:     e.Magazine,
			Reserve:      e.Reserve,
			ReloadTime:   time.Duration(e.ReloadMS) * time.Millisecond,
			Price:        e.Price,
			Range:        e.Range,
			FalloffFloor: e.FalloffFloor,
			SwingTime:    time.Duration(e.SwingMS) * time.Millisecond,
		}
		t.ids = append(t.ids, e.ID)
	}
	return t, nil
}

func (t *WeaponTable) Get(id int32) *WeaponTemplate {
	return t.byID[id]
}

func (t *WeaponTable) Count() int { return len(t.byID) }

// Each visits templates in catalog order.
func (t *WeaponTable) Each(fn func(*WeaponTemplate)) {
	for _, id := range t.ids {
		fn(t.byID[id])
	}
}

package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWeaponTableShippedCatalog(t *testing.T) {
	table, err := LoadWeaponTable("../../data/yaml/weapons.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Count() == 0 {
		t.Fatal("empty catalog")
	}

	pistol := table.Get(10)
	if pistol == nil {
		t.Fatal("default sidearm (id 10) missing from catalog")
	}
	if pistol.Variant != VariantSemiAuto || pistol.Slot != SlotSecondary {
		t.Fatalf("sidearm variant/slot = %v/%v", pistol.Variant, pistol.Slot)
	}
	if pistol.ReloadTime != 2200*time.Millisecond {
		t.Fatalf("reload_ms not converted: %v", pistol.ReloadTime)
	}

	knife := table.Get(1)
	if knife == nil || knife.Variant != VariantMelee {
		t.Fatal("melee weapon (id 1) missing or mistyped")
	}
	if knife.Price != 0 {
		t.Fatalf("melee price = %d, want free", knife.Price)
	}

	// Every ranged entry must be fireable and purchasable data-wise.
	table.Each(func(w *WeaponTemplate) {
		if w.Variant == VariantMelee {
			return
		}
		if w.Magazine <= 0 || w.FireRate <= 0 || w.Range <= 0 {
			t.Errorf("weapon %d (%s): incomplete ranged stats", w.ID, w.Name)
		}
		if w.FalloffFloor <= 0 || w.FalloffFloor > 1 {
			t.Errorf("weapon %d (%s): falloff_floor %v outside (0,1]", w.ID, w.Name, w.FalloffFloor)
		}
	})
}

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weapons.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadWeaponTableRejectsDuplicateID(t *testing.T) {
	path := writeCatalog(t, `
- {id: 1, name: A, variant: melee, slot: melee, damage: 40}
- {id: 1, name: B, variant: melee, slot: melee, damage: 40}
`)
	if _, err := LoadWeaponTable(path); err == nil {
		t.Fatal("duplicate id accepted")
	}
}

func TestLoadWeaponTableRejectsUnknownVariant(t *testing.T) {
	path := writeCatalog(t, `
- {id: 1, name: A, variant: burst, slot: primary, damage: 30, magazine: 30, fire_rate: 10}
`)
	if _, err := LoadWeaponTable(path); err == nil {
		t.Fatal("unknown variant accepted")
	}
}

func TestLoadWeaponTableRejectsUnfireableRanged(t *testing.T) {
	path := writeCatalog(t, `
- {id: 1, name: A, variant: auto, slot: primary, damage: 30, magazine: 0, fire_rate: 10}
`)
	if _, err := LoadWeaponTable(path); err == nil {
		t.Fatal("ranged weapon without a magazine accepted")
	}
}

func TestLoadMapTableShippedCatalog(t *testing.T) {
	table, err := LoadMapTable("../../data/yaml/maps.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	m := table.Default()
	if m == nil {
		t.Fatal("no default map")
	}
	if len(m.TSpawns) == 0 || len(m.CTSpawns) == 0 {
		t.Fatal("map has empty spawn lists")
	}
	if len(m.Sites) == 0 {
		t.Fatal("map has no bomb sites")
	}

	site := m.Sites[0]
	if got := m.SiteAt(site.X, site.Z); got == nil || got.Name != site.Name {
		t.Fatalf("SiteAt(site center) = %v", got)
	}
	if got := m.SiteAt(site.X+site.Radius*2, site.Z); got != nil {
		t.Fatalf("SiteAt outside radius = %v, want nil", got)
	}
}

package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpawnPoint is a per-team spawn position with facing.
type SpawnPoint struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

// BombSite is a trigger volume (vertical cylinder) where planting is legal.
type BombSite struct {
	Name   string  `yaml:"name"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
	Radius float64 `yaml:"radius"`
}

// MapInfo is the level geometry the simulation needs: spawns and bomb sites.
// Collision geometry is the world collaborator's concern, not ours.
type MapInfo struct {
	Name     string       `yaml:"name"`
	TSpawns  []SpawnPoint `yaml:"t_spawns"`
	CTSpawns []SpawnPoint `yaml:"ct_spawns"`
	Sites    []BombSite   `yaml:"bomb_sites"`
}

type mapsYAML struct {
	Maps []MapInfo `yaml:"maps"`
}

// MapTable holds all loaded maps keyed by name.
type MapTable struct {
	byName map[string]*MapInfo
	first  string
}

func LoadMapTable(path string) (*MapTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read maps %s: %w", path, err)
	}
	var doc mapsYAML
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse maps %s: %w", path, err)
	}
	if len(doc.Maps) == 0 {
		return nil, fmt.Errorf("maps %s: no maps defined", path)
	}

	t := &MapTable{byName: make(map[string]*MapInfo, len(doc.Maps))}
	for i := range doc.Maps {
		m := &doc.Maps[i]
		if len(m.TSpawns) == 0 || len(m.CTSpawns) == 0 {
			return nil, fmt.Errorf("map %s: both teams need spawn points", m.Name)
		}
		if len(m.Sites) == 0 {
			return nil, fmt.Errorf("map %s: defusal maps need at least one bomb site", m.Name)
		}
		if _, dup := t.byName[m.Name]; dup {
			return nil, fmt.Errorf("map %s: duplicate name", m.Name)
		}
		t.byName[m.Name] = m
		if t.first == "" {
			t.first = m.Name
		}
	}
	return t, nil
}

func (t *MapTable) Get(name string) *MapInfo { return t.byName[name] }

// Default returns the first map in the file.
func (t *MapTable) Default() *MapInfo { return t.byName[t.first] }

func (t *MapTable) Count() int { return len(t.byName) }

// SiteAt returns the bomb site containing the given ground position, or nil.
func (m *MapInfo) SiteAt(x, z float64) *BombSite {
	for i := range m.Sites {
		s := &m.Sites[i]
		dx := x - s.X
		dz := z - s.Z
		if dx*dx+dz*dz <= s.Radius*s.Radius {
			return s
		}
	}
	return nil
}

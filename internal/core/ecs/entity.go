package ecs

// EntityID packs a 32-bit slot index in the low bits and a 32-bit generation
// in the high bits. The generation bumps on destroy, so a reference held
// across a pickup's removal (two players grabbing the same dropped weapon in
// one tick) goes stale instead of aliasing a recycled slot.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// EntityPool hands out generational ids, recycling slot indices through a
// free list.
type EntityPool struct {
	gens []uint32
	free []uint32
	next uint32
}

func NewEntityPool() *EntityPool {
	return &EntityPool{}
}

func (p *EntityPool) Create() EntityID {
	var idx uint32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		idx = p.next
		p.next++
		if int(idx) >= len(p.gens) {
			p.gens = append(p.gens, 0)
		}
	}
	return NewEntityID(idx, p.gens[idx])
}

// Alive reports whether the id still names a live entity: the slot must be
// allocated and the generation current.
func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	return idx < p.next && p.gens[idx] == id.Generation()
}

// Destroy releases the entity's slot. Stale ids are ignored, so double
// destroy in one tick is harmless.
func (p *EntityPool) Destroy(id EntityID) {
	idx := id.Index()
	if idx >= p.next || p.gens[idx] != id.Generation() {
		return
	}
	p.gens[idx]++
	p.free = append(p.free, idx)
}

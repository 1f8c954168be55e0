package ecs

// Registry fans entity destruction out to every component store, so a
// destroyed pickup entity sheds its weapon snapshot and position in one call.
// Stores register once at boot; the set never changes afterward.
type Registry struct {
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a component store to the destruction fan-out.
func (r *Registry) Register(store Removable) {
	r.stores = append(r.stores, store)
}

// RemoveAll evicts the entity from every registered store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}

package ecs

// World is the ECS container for transient world objects (dropped weapons,
// the planted bomb marker). Destruction is deferred: entities marked during
// a tick stay queryable until CleanupSystem flushes the queue at tick end,
// so a pickup consumed during input handling is still visible to later
// systems in the same tick.
type World struct {
	pool     *EntityPool
	registry *Registry
	doomed   []EntityID
}

func NewWorld() *World {
	return &World{
		pool:     NewEntityPool(),
		registry: NewRegistry(),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID { return w.pool.Create() }
func (w *World) Alive(id EntityID) bool { return w.pool.Alive(id) }

// MarkForDestruction queues the entity for end-of-tick destruction.
func (w *World) MarkForDestruction(id EntityID) {
	w.doomed = append(w.doomed, id)
}

// FlushDestroyQueue destroys every queued entity and strips its components.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.doomed {
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
	}
	w.doomed = w.doomed[:0]
}

package system

import (
	"time"

	"github.com/strikecore/server/internal/core/ecs"
	coresys "github.com/strikecore/server/internal/core/system"
)

// CleanupSystem destroys queued entities at end of tick (Phase 8).
// Pickups taken mid-tick disappear here, after every system has run.
type CleanupSystem struct {
	world *ecs.World
}

func NewCleanupSystem(w *ecs.World) *CleanupSystem {
	return &CleanupSystem{world: w}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.FlushDestroyQueue()
}

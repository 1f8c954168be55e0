package system

import (
	"time"

	"github.com/strikecore/server/internal/core/event"
	coresys "github.com/strikecore/server/internal/core/system"
)

// EventSystem rotates and dispatches the event bus at tick start (Phase 0).
// Everything emitted during tick N reaches its subscribers here in tick N+1,
// after tick N has fully settled.
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

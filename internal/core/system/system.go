package system

import "time"

// Phase defines execution ordering within a single tick. The ordering is the
// same-tick resolution contract: intents are applied before movement, movement
// before fire resolution, fire before objective timers, and round evaluation
// sees all of the above, so a kill is never shadowed by a clock expiry that
// lands in the same tick.
type Phase int

const (
	PhaseEvents   Phase = iota // 0: swap + dispatch last tick's events
	PhaseInput                 // 1: drain and validate client intents
	PhaseMovement              // 2: integrate velocities and positions
	PhaseCombat                // 3: resolve fire requests and damage
	PhaseTimers                // 4: reload, plant, defuse, bomb countdown
	PhaseRound                 // 5: round-end evaluation + phase transitions
	PhaseOutput                // 6: build + send snapshots
	PhasePersist               // 7: match history writes
	PhaseCleanup               // 8: destroy queued entities
)

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

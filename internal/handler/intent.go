package handler

import (
	"math"

	"github.com/strikecore/server/internal/data"
	"github.com/strikecore/server/internal/world"
)

// maxLookDelta bounds a single tick's look rotation. Anything larger is a
// corrupt or hostile packet, not human input.
const maxLookDelta = math.Pi

// SanitizeIntent validates a client-submitted intent record. Invalid input
// is discarded wholesale (the combatant idles for the tick) rather than
// partially applied. Returns the cleaned intent and whether it was accepted.
func SanitizeIntent(in world.Intent) (world.Intent, bool) {
	for _, f := range [4]float64{in.MoveX, in.MoveZ, in.LookYaw, in.LookPitch} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return world.Intent{}, false
		}
	}
	if math.Abs(in.LookYaw) > maxLookDelta || math.Abs(in.LookPitch) > maxLookDelta {
		return world.Intent{}, false
	}

	// Move vector is a direction request: clamp magnitude to 1, the
	// integrator owns actual speeds.
	if mag := math.Hypot(in.MoveX, in.MoveZ); mag > 1 {
		in.MoveX /= mag
		in.MoveZ /= mag
	}
	if in.SwitchSlot < 0 || in.SwitchSlot > int(data.SlotCount) {
		in.SwitchSlot = 0
	}
	return in, true
}

// ApplyLook integrates look deltas into the combatant's orientation, with
// pitch clamped to straight up/down.
func ApplyLook(c *world.Combatant, in world.Intent) {
	c.Yaw += in.LookYaw
	// Keep yaw in (-π, π] to stop unbounded growth over long sessions.
	for c.Yaw > math.Pi {
		c.Yaw -= 2 * math.Pi
	}
	for c.Yaw <= -math.Pi {
		c.Yaw += 2 * math.Pi
	}
	c.Pitch += in.LookPitch
	const maxPitch = math.Pi/2 - 0.01
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

package physics

import "math"

// Tuning holds the movement constants. Values come from config; the functions
// below are pure over (state, intent, tuning, dt) so trajectories replay
// bit-for-bit.
type Tuning struct {
	RunSpeed        float64
	WalkSpeed       float64
	CrouchSpeed     float64
	Acceleration    float64
	AirAcceleration float64
	Friction        float64
	StopSpeed       float64
	Gravity         float64 // negative
	JumpHeight      float64
	GroundSnap      float64 // small residual downward speed while grounded
}

// TargetSpeed picks the stance speed. Running is disabled while crouching.
func (t Tuning) TargetSpeed(crouching, running bool) float64 {
	if crouching {
		return t.CrouchSpeed
	}
	if running {
		return t.RunSpeed
	}
	return t.WalkSpeed
}

// StepVelocity advances horizontal velocity by one tick.
//
// Grounded with intent: accelerate toward intent*targetSpeed. The rate scales
// with the target speed (accel * target / runSpeed) so faster stances also
// reach their speed faster, and the step never overshoots the target.
//
// Grounded without intent: friction. Above StopSpeed the speed loses
// |v|*friction*dt per tick; at or below it the velocity snaps to zero so a
// stopping player never creeps asymptotically.
//
// Airborne: acceleration toward intent at the fixed air rate, no friction.
// Momentum is preserved: there is no way to stop dead mid-air.
func (t Tuning) StepVelocity(vel Vec2, intent Vec2, targetSpeed float64, grounded bool, dt float64) Vec2 {
	wish := intent.Normalized()
	if !grounded {
		if wish.Len() == 0 {
			return vel // no air friction: momentum carries
		}
		return moveToward(vel, wish.Scale(targetSpeed), t.AirAcceleration*dt)
	}
	if wish.Len() == 0 {
		speed := vel.Len()
		if speed <= t.StopSpeed {
			return Vec2{}
		}
		drop := speed * t.Friction * dt
		newSpeed := speed - drop
		if newSpeed < 0 {
			newSpeed = 0
		}
		return vel.Scale(newSpeed / speed)
	}
	accel := t.Acceleration
	if t.RunSpeed > 0 {
		accel = t.Acceleration * targetSpeed / t.RunSpeed
	}
	return moveToward(vel, wish.Scale(targetSpeed), accel*dt)
}

// StepVertical advances vertical velocity by one tick. Jumping requires
// ground contact and an upright stance. While grounded, residual downward
// velocity is clamped to a small negative value instead of zero to keep
// ground contact stable against floating-point drift.
func (t Tuning) StepVertical(vy float64, grounded, jump, crouching bool, dt float64) float64 {
	if grounded {
		if jump && !crouching {
			return t.JumpSpeed()
		}
		return -t.GroundSnap
	}
	return vy + t.Gravity*dt
}

// JumpSpeed is the takeoff speed that reaches JumpHeight at the apex.
func (t Tuning) JumpSpeed() float64 {
	return math.Sqrt(t.JumpHeight * -2 * t.Gravity)
}

// moveToward shifts v toward target by at most maxStep, without overshooting.
func moveToward(v, target Vec2, maxStep float64) Vec2 {
	delta := target.Sub(v)
	dist := delta.Len()
	if dist <= maxStep || dist == 0 {
		return target
	}
	return v.Add(delta.Scale(maxStep / dist))
}

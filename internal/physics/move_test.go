package physics

import (
	"math"
	"testing"
)

func testTuning() Tuning {
	return Tuning{
		RunSpeed:        6.5,
		WalkSpeed:       4.5,
		CrouchSpeed:     2.5,
		Acceleration:    60,
		AirAcceleration: 8,
		Friction:        6,
		StopSpeed:       0.5,
		Gravity:         -19.6,
		JumpHeight:      1.1,
		GroundSnap:      0.1,
	}
}

const dt = 0.05

func TestStepVelocityReachesTargetSpeed(t *testing.T) {
	tun := testTuning()
	vel := Vec2{}
	wish := Vec2{X: 0, Z: 1}

	for i := 0; i < 100; i++ {
		vel = tun.StepVelocity(vel, wish, tun.RunSpeed, true, dt)
	}
	if math.Abs(vel.Len()-tun.RunSpeed) > 1e-9 {
		t.Fatalf("speed = %v, want %v", vel.Len(), tun.RunSpeed)
	}
	// No overshoot at any step.
	vel = Vec2{}
	for i := 0; i < 100; i++ {
		vel = tun.StepVelocity(vel, wish, tun.RunSpeed, true, dt)
		if vel.Len() > tun.RunSpeed+1e-9 {
			t.Fatalf("step %d overshot: %v", i, vel.Len())
		}
	}
}

func TestStepVelocityFrictionSnapsToZero(t *testing.T) {
	tun := testTuning()
	vel := Vec2{X: 3, Z: 4} // speed 5

	steps := 0
	for vel.Len() > 0 {
		vel = tun.StepVelocity(vel, Vec2{}, tun.RunSpeed, true, dt)
		steps++
		if steps > 1000 {
			t.Fatal("velocity never reached zero")
		}
	}
	// Exactly zero, not a tiny residue.
	if vel.X != 0 || vel.Z != 0 {
		t.Fatalf("velocity = %+v, want exact zero", vel)
	}
}

func TestStepVelocityAirPreservesMomentum(t *testing.T) {
	tun := testTuning()
	vel := Vec2{X: 6, Z: 0}

	for i := 0; i < 50; i++ {
		got := tun.StepVelocity(vel, Vec2{}, tun.RunSpeed, false, dt)
		if got != vel {
			t.Fatalf("airborne velocity changed with no input: %+v -> %+v", vel, got)
		}
	}
}

func TestStepVelocityAirControlIsWeak(t *testing.T) {
	tun := testTuning()
	vel := Vec2{X: 6, Z: 0}
	next := tun.StepVelocity(vel, Vec2{X: -1, Z: 0}, tun.RunSpeed, false, dt)

	maxDelta := tun.AirAcceleration * dt
	if d := next.Sub(vel).Len(); d > maxDelta+1e-9 {
		t.Fatalf("air step moved velocity by %v, cap is %v", d, maxDelta)
	}
}

func TestStepVerticalJumpApexHeight(t *testing.T) {
	tun := testTuning()

	// Integrate the jump arc with the same explicit Euler step the game uses.
	vy := tun.StepVertical(0, true, true, false, dt)
	y, peak := 0.0, 0.0
	for i := 0; i < 200; i++ {
		y += vy * dt
		if y > peak {
			peak = y
		}
		vy = tun.StepVertical(vy, false, false, false, dt)
	}
	// Discrete integration lands near the analytic height, never wildly off.
	if peak < tun.JumpHeight*0.9 || peak > tun.JumpHeight*1.2 {
		t.Fatalf("jump peak = %v, want about %v", peak, tun.JumpHeight)
	}
}

func TestStepVerticalCrouchBlocksJump(t *testing.T) {
	tun := testTuning()
	vy := tun.StepVertical(0, true, true, true, dt)
	if vy > 0 {
		t.Fatalf("crouching jump produced upward velocity %v", vy)
	}
}

func TestStepVerticalGroundedClampsDownward(t *testing.T) {
	tun := testTuning()
	vy := tun.StepVertical(-5, true, false, false, dt)
	if vy != -tun.GroundSnap {
		t.Fatalf("grounded vy = %v, want %v", vy, -tun.GroundSnap)
	}
}

func TestIntegrationIsDeterministic(t *testing.T) {
	tun := testTuning()

	run := func() (Vec2, float64) {
		vel := Vec2{}
		vy := 0.0
		grounded := true
		y := 0.0
		for i := 0; i < 400; i++ {
			wish := Vec2{X: math.Sin(float64(i) * 0.1), Z: math.Cos(float64(i) * 0.07)}
			jump := i%60 == 0
			vel = tun.StepVelocity(vel, wish, tun.RunSpeed, grounded, dt)
			vy = tun.StepVertical(vy, grounded, jump, false, dt)
			y += vy * dt
			if y <= 0 {
				y = 0
				grounded = true
			} else {
				grounded = false
			}
		}
		return vel, y
	}

	v1, y1 := run()
	v2, y2 := run()
	if v1 != v2 || y1 != y2 {
		t.Fatalf("identical input streams diverged: (%+v,%v) vs (%+v,%v)", v1, y1, v2, y2)
	}
}

func TestTargetSpeedStances(t *testing.T) {
	tun := testTuning()
	if got := tun.TargetSpeed(true, true); got != tun.CrouchSpeed {
		t.Fatalf("crouch+run = %v, crouch wins, want %v", got, tun.CrouchSpeed)
	}
	if got := tun.TargetSpeed(false, true); got != tun.RunSpeed {
		t.Fatalf("run = %v, want %v", got, tun.RunSpeed)
	}
	if got := tun.TargetSpeed(false, false); got != tun.WalkSpeed {
		t.Fatalf("walk = %v, want %v", got, tun.WalkSpeed)
	}
}

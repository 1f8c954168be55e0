package system

import (
	"time"

	coresys "github.com/strikecore/server/internal/core/system"
	"github.com/strikecore/server/internal/handler"
	"github.com/strikecore/server/internal/physics"
	"github.com/strikecore/server/internal/world"
)

const groundLevel = 0.0

// MovementSystem integrates velocities and positions for every living
// combatant (Phase 2). Movement is frozen during freeze time; everything the
// system does is a call into the pure integrator in internal/physics, so
// identical inputs yield identical trajectories.
type MovementSystem struct {
	deps   *handler.Deps
	tuning physics.Tuning
}

func NewMovementSystem(deps *handler.Deps) *MovementSystem {
	m := deps.Config.Movement
	return &MovementSystem{
		deps: deps,
		tuning: physics.Tuning{
			RunSpeed:        m.RunSpeed,
			WalkSpeed:       m.WalkSpeed,
			CrouchSpeed:     m.CrouchSpeed,
			Acceleration:    m.Acceleration,
			AirAcceleration: m.AirAcceleration,
			Friction:        m.Friction,
			StopSpeed:       m.StopSpeed,
			Gravity:         m.Gravity,
			JumpHeight:      m.JumpHeight,
			GroundSnap:      m.GroundSnap,
		},
	}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *MovementSystem) Update(dt time.Duration) {
	ws := s.deps.World
	if ws.Round.Phase == world.PhaseFreeze || ws.Round.Phase == world.PhaseMatchEnd {
		return
	}
	dtSec := dt.Seconds()
	ws.All(func(c *world.Combatant) {
		if c.Alive() {
			s.step(c, dtSec)
		}
	})
}

func (s *MovementSystem) step(c *world.Combatant, dt float64) {
	in := c.Intent

	// Raw 2D input rotated into world space by the current facing.
	forward := physics.DirFromYaw(c.Yaw)
	right := physics.Vec2{X: forward.Z, Z: -forward.X}
	wish := forward.Scale(in.MoveZ).Add(right.Scale(in.MoveX))

	target := s.tuning.TargetSpeed(c.Crouching, c.Running)
	c.Vel = s.tuning.StepVelocity(c.Vel, wish, target, c.Grounded, dt)
	c.VelY = s.tuning.StepVertical(c.VelY, c.Grounded, in.Jump, c.Crouching, dt)

	c.Pos.X += c.Vel.X * dt
	c.Pos.Z += c.Vel.Z * dt
	c.Pos.Y += c.VelY * dt

	if c.Pos.Y <= groundLevel {
		c.Pos.Y = groundLevel
		c.Grounded = true
	} else {
		c.Grounded = false
	}
}

package world

import (
	"github.com/strikecore/server/internal/physics"
)

// Side is the team a combatant fights for.
type Side int

const (
	SideNone Side = iota
	SideT
	SideCT
)

func (s Side) String() string {
	switch s {
	case SideT:
		return "terrorist"
	case SideCT:
		return "counter_terrorist"
	}
	return "none"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	switch s {
	case SideT:
		return SideCT
	case SideCT:
		return SideT
	}
	return SideNone
}

// AliveState tracks the combatant lifecycle within a round.
type AliveState int

const (
	StateAlive AliveState = iota
	StateDead
	StateSpectating
)

const (
	MaxHealth = 100
	MaxArmor  = 100

	StandHeight  = 1.8
	CrouchHeight = 1.3
	BodyRadius   = 0.4
)

// Intent is the per-tick input record for one combatant, as sampled by the
// input collaborator. All fields are advisory; the simulation validates
// everything before acting on it.
type Intent struct {
	MoveX         float64 // raw 2D input, forward/strafe in [-1,1]
	MoveZ         float64
	LookYaw       float64 // look deltas, radians
	LookPitch     float64
	Jump          bool
	CrouchToggle  bool
	Run           bool
	FirePressed   bool
	FireHeld      bool
	Reload        bool
	Interact      bool
	ScopeToggle   bool
	SwitchSlot    int   // 0 = no switch, otherwise data.WeaponSlot value + 1
	BuyWeapon     int32 // 0 = nothing
	BuyArmor      bool
	Drop          bool
}

// Combatant holds in-memory state for a connected player. Mutated only from
// the game loop goroutine, so no locks.
type Combatant struct {
	ID   int64
	Name string
	Side Side

	Health int
	Armor  int
	Money  int
	State  AliveState

	Pos      physics.Vec3
	Vel      physics.Vec2 // horizontal velocity
	VelY     float64
	Yaw      float64
	Pitch    float64
	Grounded bool

	Crouching bool
	Running   bool

	Inv     *Inventory
	HasBomb bool // objective carrier flag, at most one Terrorist per round

	Kills  int
	Deaths int

	// Intent accepted for the current tick. Zero value = idle.
	Intent       Intent
	PrevFireHeld bool // previous tick's trigger level, for edge detection

	Connected bool
}

// Alive reports whether the combatant takes part in the current round.
func (c *Combatant) Alive() bool { return c.State == StateAlive }

// Height is the current capsule height by stance.
func (c *Combatant) Height() float64 {
	if c.Crouching {
		return CrouchHeight
	}
	return StandHeight
}

// EyePos is the fire origin.
func (c *Combatant) EyePos() physics.Vec3 {
	return physics.Vec3{X: c.Pos.X, Y: c.Pos.Y + c.Height()*0.9, Z: c.Pos.Z}
}

// ApplyDamage subtracts health, clamping into [0,MaxHealth]. A combatant
// reaching zero health is Dead in the same tick.
func (c *Combatant) ApplyDamage(amount int) {
	if amount <= 0 || c.State != StateAlive {
		return
	}
	c.Health -= amount
	if c.Health <= 0 {
		c.Health = 0
		c.State = StateDead
		c.Deaths++
	}
}

// SpendArmor depletes armor by the given amount, clamped at zero.
func (c *Combatant) SpendArmor(amount int) {
	c.Armor -= amount
	if c.Armor < 0 {
		c.Armor = 0
	}
}

// AddMoney credits (or debits) money, clamped into [0,maxMoney].
func (c *Combatant) AddMoney(delta, maxMoney int) {
	c.Money += delta
	if c.Money < 0 {
		c.Money = 0
	}
	if c.Money > maxMoney {
		c.Money = maxMoney
	}
}

// Speed is the current horizontal speed.
func (c *Combatant) Speed() float64 { return c.Vel.Len() }

// ResetForRound restores round-start state at a spawn point. Inventory and
// money persist across rounds; health, armor purchases do not refill.
func (c *Combatant) ResetForRound(spawn physics.Vec3, yaw float64) {
	c.Health = MaxHealth
	c.State = StateAlive
	c.Pos = spawn
	c.Vel = physics.Vec2{}
	c.VelY = 0
	c.Yaw = yaw
	c.Pitch = 0
	c.Grounded = true
	c.Crouching = false
	c.Running = false
	c.HasBomb = false
	c.Intent = Intent{}
	c.PrevFireHeld = false
}

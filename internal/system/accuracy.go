package system

import (
	"math"
	"math/rand"

	"github.com/strikecore/server/internal/config"
	"github.com/strikecore/server/internal/physics"
	"github.com/strikecore/server/internal/world"
)

// scopedSpread overrides stance spread entirely while aiming down a scope.
const scopedSpread = 0.0005

// AccuracyModel turns a combatant's stance and recent fire history into a
// spread cone and samples perturbed shot directions from it. The generator is
// seeded once so that a replayed input stream reproduces the exact same shots.
type AccuracyModel struct {
	cfg config.CombatConfig
	rng *rand.Rand
}

func NewAccuracyModel(cfg config.CombatConfig, seed int64) *AccuracyModel {
	return &AccuracyModel{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// SpreadRadius returns the cone half-angle in radians for the shooter's
// current state. Stance picks the base value, accumulated recoil widens it,
// and a first shot after a long pause tightens it sharply.
func (a *AccuracyModel) SpreadRadius(c *world.Combatant, w *world.Weapon, firstShotTicks int) float64 {
	var base float64
	switch {
	case !c.Grounded:
		base = a.cfg.SpreadAir
	case c.Vel.Len() > a.cfg.MoveSpreadThresh:
		base = a.cfg.SpreadMove
	case c.Crouching:
		base = a.cfg.SpreadCrouch
	default:
		base = a.cfg.SpreadStand
	}

	spread := base + w.Recoil

	if w.Scoped {
		return scopedSpread
	}
	if w.TicksSinceShot >= firstShotTicks {
		spread *= a.cfg.FirstShotFactor
	}
	return spread
}

// Perturb returns dir rotated by a uniformly distributed offset inside a cone
// of the given half-angle. A zero radius returns dir unchanged.
func (a *AccuracyModel) Perturb(dir physics.Vec3, radius float64) physics.Vec3 {
	if radius <= 0 {
		return dir
	}
	// Uniform sample over the disk: r = R*sqrt(u) keeps density even.
	r := radius * math.Sqrt(a.rng.Float64())
	theta := 2 * math.Pi * a.rng.Float64()
	dx := r * math.Cos(theta)
	dy := r * math.Sin(theta)

	// Orthonormal basis around dir.
	up := physics.Vec3{X: 0, Y: 1, Z: 0}
	if math.Abs(dir.Y) > 0.99 {
		up = physics.Vec3{X: 1, Y: 0, Z: 0}
	}
	side := dir.Cross(up).Normalized()
	vert := side.Cross(dir)

	out := dir.Add(side.Scale(dx)).Add(vert.Scale(dy))
	return out.Normalized()
}

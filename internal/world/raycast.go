package world

import (
	"math"

	"github.com/strikecore/server/internal/physics"
)

// HitLocation is the body region a shot struck, derived from the hit height
// on the target capsule.
type HitLocation int

const (
	LocLimb HitLocation = iota
	LocStomach
	LocChest
	LocHead
)

func (l HitLocation) String() string {
	switch l {
	case LocHead:
		return "head"
	case LocChest:
		return "chest"
	case LocStomach:
		return "stomach"
	}
	return "limb"
}

// ShotHit is the result of a hitscan query.
type ShotHit struct {
	Target   *Combatant
	Location HitLocation
	Distance float64
}

// Caster is the world/physics collaborator contract: a pure cast query used
// by weapon fire. State provides a built-in implementation over combatant
// capsules; a full physics backend can replace it without touching combat.
type Caster interface {
	CastShot(shooter *Combatant, origin, dir physics.Vec3, maxDist float64) (ShotHit, bool)
}

// CastShot intersects a ray against all living enemy and neutral capsules,
// approximated as vertical cylinders, and returns the nearest hit within
// maxDist. The shooter is always excluded.
func (s *State) CastShot(shooter *Combatant, origin, dir physics.Vec3, maxDist float64) (ShotHit, bool) {
	var best ShotHit
	best.Distance = maxDist
	found := false

	for _, id := range s.order {
		c := s.combatants[id]
		if c == shooter || !c.Alive() {
			continue
		}
		t, hitY, ok := rayCylinder(origin, dir, c.Pos, BodyRadius, c.Height())
		if !ok || t > best.Distance {
			continue
		}
		best = ShotHit{
			Target:   c,
			Location: locationFromHeight(hitY-c.Pos.Y, c.Height()),
			Distance: t,
		}
		found = true
	}
	return best, found
}

// MeleeTarget finds a melee victim: nearest living combatant within reach
// and inside a wide frontal cone (the swing is a capsule sweep, not a ray).
func (s *State) MeleeTarget(attacker *Combatant, reach float64) (*Combatant, float64) {
	facing := physics.DirFromYaw(attacker.Yaw)
	var best *Combatant
	bestDist := reach + BodyRadius

	for _, id := range s.order {
		c := s.combatants[id]
		if c == attacker || !c.Alive() {
			continue
		}
		to := c.Pos.Sub(attacker.Pos).Horizontal()
		d := to.Len()
		if d >= bestDist {
			continue
		}
		if d > 0 {
			n := to.Normalized()
			if n.X*facing.X+n.Z*facing.Z < 0.5 { // outside the ±60° swing arc
				continue
			}
		}
		best = c
		bestDist = d
	}
	return best, bestDist
}

// rayCylinder intersects a ray with a vertical cylinder (base at basePos,
// given radius and height). Returns the ray parameter of the entry point and
// the world Y at the hit.
func rayCylinder(origin, dir physics.Vec3, basePos physics.Vec3, radius, height float64) (t float64, hitY float64, ok bool) {
	ox := origin.X - basePos.X
	oz := origin.Z - basePos.Z
	dx := dir.X
	dz := dir.Z

	a := dx*dx + dz*dz
	if a < 1e-12 {
		// Shooting straight up/down: hit only if inside the circle.
		if ox*ox+oz*oz > radius*radius {
			return 0, 0, false
		}
		// Entry at whichever cap faces the ray.
		if dir.Y == 0 {
			return 0, 0, false
		}
		var capY float64
		if dir.Y < 0 {
			capY = basePos.Y + height
		} else {
			capY = basePos.Y
		}
		t = (capY - origin.Y) / dir.Y
		if t < 0 {
			return 0, 0, false
		}
		return t, capY, true
	}

	b := 2 * (ox*dx + oz*dz)
	cc := ox*ox + oz*oz - radius*radius
	disc := b*b - 4*a*cc
	if disc < 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)
	if t1 < 0 {
		return 0, 0, false
	}
	if t0 < 0 {
		t0 = 0 // ray starts inside the cylinder
	}
	// Walk from entry to exit looking for a parameter whose height is in range.
	for _, tc := range [2]float64{t0, t1} {
		y := origin.Y + dir.Y*tc
		if y >= basePos.Y && y <= basePos.Y+height {
			return tc, y, true
		}
	}
	// Entry above/below but segment may cross a cap between t0 and t1.
	if dir.Y != 0 {
		for _, capY := range [2]float64{basePos.Y + height, basePos.Y} {
			tc := (capY - origin.Y) / dir.Y
			if tc >= t0 && tc <= t1 && tc >= 0 {
				return tc, capY, true
			}
		}
	}
	return 0, 0, false
}

// locationFromHeight maps a hit height fraction to a body region.
func locationFromHeight(offset, height float64) HitLocation {
	if height <= 0 {
		return LocLimb
	}
	frac := offset / height
	switch {
	case frac >= 0.85:
		return LocHead
	case frac >= 0.55:
		return LocChest
	case frac >= 0.40:
		return LocStomach
	}
	return LocLimb
}

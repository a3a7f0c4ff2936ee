package game

import "math"

// Vec3 is a world-space vector. Z is the forward axis, Y is vertical and is
// close to zero for everything on the ground.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{v.X * k, v.Y * k, v.Z * k}
}

// Len returns the euclidean length.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Dist returns the straight-line 3D distance between two points.
func (v Vec3) Dist(o Vec3) float64 {
	return v.Sub(o).Len()
}

// Normalize returns the unit vector, or the zero vector for a zero input.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Planar drops the vertical component.
func (v Vec3) Planar() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// headingOf returns the heading whose forward vector is (sin h, 0, cos h).
func headingOf(dir Vec3) float64 {
	return math.Atan2(dir.X, dir.Z)
}

// forward is the unit vector a tank with heading h drives along.
func forward(h float64) Vec3 {
	return Vec3{X: math.Sin(h), Z: math.Cos(h)}
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// turnToward rotates heading toward target by at most rate radians.
func turnToward(heading, target, rate float64) float64 {
	diff := normalizeAngle(target - heading)
	if math.Abs(diff) <= rate {
		return target
	}
	if diff > 0 {
		return heading + rate
	}
	return heading - rate
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

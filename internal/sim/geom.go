package sim

import "math"

// Vec2 is an integer grid coordinate. The continuous interpolated
// position used for drawing is owned by the renderer, not the core.
type Vec2 struct {
	X, Y int
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// IsOpposite reports whether o points exactly the other way.
// Only meaningful for unit direction vectors.
func (v Vec2) IsOpposite(o Vec2) bool {
	return v.X == -o.X && v.Y == -o.Y && (v.X != 0 || v.Y != 0)
}

func manhattan(a, b Vec2) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// dirAngle maps a unit direction to a rotation hint in radians for the
// renderer. Gameplay never reads it.
func dirAngle(d Vec2) float64 {
	return math.Atan2(float64(d.Y), float64(d.X))
}

// Cardinal directions.
var (
	DirUp    = Vec2{X: 0, Y: -1}
	DirDown  = Vec2{X: 0, Y: 1}
	DirLeft  = Vec2{X: -1, Y: 0}
	DirRight = Vec2{X: 1, Y: 0}
)

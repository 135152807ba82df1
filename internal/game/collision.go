package game

import "math"

// Position represents a 2D coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Clamp pulls p inside the rectangle.
func (r Rect) Clamp(p Position) Position {
	p.X = math.Max(r.MinX, math.Min(r.MaxX, p.X))
	p.Y = math.Max(r.MinY, math.Min(r.MaxY, p.Y))
	return p
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Overlaps reports whether two circles are closer than the sum of their radii.
func Overlaps(a Position, ra float64, b Position, rb float64) bool {
	return Distance(a, b) < ra+rb
}

// MoveToward steps from toward target by at most step and reports whether
// the target was reached (within ArrivalEpsilon).
func MoveToward(from, target Position, step float64) (Position, bool) {
	d := Distance(from, target)
	if d <= step || d <= ArrivalEpsilon {
		return target, true
	}
	from.X += (target.X - from.X) / d * step
	from.Y += (target.Y - from.Y) / d * step
	return from, Distance(from, target) <= ArrivalEpsilon
}

// trail places a follower gap pixels behind leader, keeping the follower's
// current bearing from the leader. A coincident follower is put behind on -X.
func trail(leader, follower Position, gap float64) Position {
	d := Distance(leader, follower)
	if d == 0 {
		return Position{X: leader.X - gap, Y: leader.Y}
	}
	return Position{
		X: leader.X + (follower.X-leader.X)/d*gap,
		Y: leader.Y + (follower.Y-leader.Y)/d*gap,
	}
}

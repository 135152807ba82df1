package game

import (
	"math/rand"
	"time"
)

// GenerateWaypointPath builds a path that crosses the arena from the left
// edge to the right edge. X strictly increases along the path so evaders
// never backtrack; Y wanders inside the vertical margins. The path always
// has at least two points.
func GenerateWaypointPath(rng *rand.Rand, width, height float64, points int) []Position {
	if points < 2 {
		points = 2
	}
	minY := PathEdgeMargin
	maxY := height - PathEdgeMargin
	if maxY < minY {
		minY, maxY = height/2, height/2
	}

	path := make([]Position, points)
	step := width / float64(points-1)
	for i := range path {
		path[i] = Position{
			X: float64(i) * step,
			Y: minY + rng.Float64()*(maxY-minY),
		}
	}
	// Leave from just outside the arena so the exit is unambiguous.
	path[points-1].X = width + PathEdgeMargin
	return path
}

// Spawner gates evader spawns to a fixed interval of simulation time.
type Spawner struct {
	Interval time.Duration
	next     time.Duration
}

// NewSpawner creates a spawner whose first spawn is due immediately.
func NewSpawner(interval time.Duration) *Spawner {
	return &Spawner{Interval: interval}
}

// Due reports whether a spawn is due at now and, if so, schedules the next one.
func (s *Spawner) Due(now time.Duration) bool {
	if now < s.next {
		return false
	}
	s.next = now + s.Interval
	return true
}

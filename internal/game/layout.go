package game

import "math/rand"

// GenerateZoneLayout picks n zone centers inside the arena, away from the
// spawn and exit edges and at least ZoneMinDistance apart.
func GenerateZoneLayout(rng *rand.Rand, n int, width, height float64) []Position {
	area := Rect{
		MinX: ZoneEdgeMargin,
		MinY: PathEdgeMargin,
		MaxX: width - ZoneEdgeMargin,
		MaxY: height - PathEdgeMargin,
	}
	placed := make([]Position, 0, n)
	for i := 0; i < n; i++ {
		placed = append(placed, placeZone(rng, area, placed))
	}
	return placed
}

func placeZone(rng *rand.Rand, area Rect, placed []Position) Position {
	const maxAttempts = 100
	for i := 0; i < maxAttempts; i++ {
		p := randomIn(rng, area)
		if isFarEnough(p, placed, ZoneMinDistance) {
			return p
		}
	}

	// Fallback: place anyway
	return randomIn(rng, area)
}

func randomIn(rng *rand.Rand, area Rect) Position {
	return Position{
		X: area.MinX + rng.Float64()*(area.MaxX-area.MinX),
		Y: area.MinY + rng.Float64()*(area.MaxY-area.MinY),
	}
}

// isFarEnough checks if p is at least minDist from all existing positions.
func isFarEnough(p Position, existing []Position, minDist float64) bool {
	for _, q := range existing {
		if Distance(p, q) < minDist {
			return false
		}
	}
	return true
}

// PursuerStarts spreads n pursuer start points along the horizontal center
// line of the patrol area.
func PursuerStarts(n int, area Rect) []Position {
	starts := make([]Position, n)
	midY := (area.MinY + area.MaxY) / 2
	for i := range starts {
		starts[i] = Position{
			X: area.MinX + (area.MaxX-area.MinX)*float64(i+1)/float64(n+1),
			Y: midY,
		}
	}
	return starts
}

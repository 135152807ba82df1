package game

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidConfig is returned when tuning values cannot produce a working simulation.
	ErrInvalidConfig = errors.New("invalid simulation config")
	// ErrEmptyPath is returned when an evader is spawned without waypoints.
	ErrEmptyPath = errors.New("waypoint path is empty")
	// ErrZoneIndex is returned when a zone command names a zone that does not exist.
	ErrZoneIndex = errors.New("zone index out of range")
)

// ZoneTuning configures an illumination zone.
type ZoneTuning struct {
	Radius          float64
	BoostMultiplier float64
	BoostDuration   time.Duration
	BoostCooldown   time.Duration
}

// EvaderTuning configures evaders spawned into an arena.
type EvaderTuning struct {
	Speed            float64
	Radius           float64
	CaptureThreshold time.Duration
}

// PursuerTuning configures a pursuer.
type PursuerTuning struct {
	Speed          float64
	HuntMultiplier float64
	VisionRange    float64
	Radius         float64
	Capacity       int
	DropOff        Position
	DropOffRange   float64
	TrailDistance  float64
	PatrolArea     Rect
	MinDwell       time.Duration
	MaxDwell       time.Duration
}

// Tuning groups every knob of a simulation run.
type Tuning struct {
	Width   float64
	Height  float64
	Zone    ZoneTuning
	Evader  EvaderTuning
	Pursuer PursuerTuning
}

// DefaultTuning returns the stock arena setup. The drop-off sits at the
// bottom-left corner and pursuers patrol the middle band of the arena.
func DefaultTuning() Tuning {
	return Tuning{
		Width:  ArenaWidth,
		Height: ArenaHeight,
		Zone: ZoneTuning{
			Radius:          ZoneRadius,
			BoostMultiplier: ZoneBoostMultiplier,
			BoostDuration:   ZoneBoostDuration,
			BoostCooldown:   ZoneBoostCooldown,
		},
		Evader: EvaderTuning{
			Speed:            EvaderSpeed,
			Radius:           EvaderRadius,
			CaptureThreshold: EvaderCaptureThreshold,
		},
		Pursuer: PursuerTuning{
			Speed:          PursuerSpeed,
			HuntMultiplier: PursuerHuntMultiplier,
			VisionRange:    PursuerVisionRange,
			Radius:         PursuerRadius,
			Capacity:       PursuerCapacity,
			DropOff:        Position{X: 60, Y: ArenaHeight - 60},
			DropOffRange:   PursuerDropOffRange,
			TrailDistance:  DefaultFollowGap,
			PatrolArea:     Rect{MinX: ZoneEdgeMargin, MinY: PathEdgeMargin, MaxX: ArenaWidth - ZoneEdgeMargin, MaxY: ArenaHeight - PathEdgeMargin},
			MinDwell:       PursuerMinDwell,
			MaxDwell:       PursuerMaxDwell,
		},
	}
}

// Validate reports the first tuning value that would break an invariant.
func (t Tuning) Validate() error {
	switch {
	case t.Width <= 0 || t.Height <= 0:
		return fmt.Errorf("%w: arena must have positive size", ErrInvalidConfig)
	case t.Zone.Radius <= 0:
		return fmt.Errorf("%w: zone radius must be positive", ErrInvalidConfig)
	case t.Zone.BoostMultiplier < 1:
		return fmt.Errorf("%w: boost multiplier must be >= 1", ErrInvalidConfig)
	case t.Evader.Speed <= 0:
		return fmt.Errorf("%w: evader speed must be positive", ErrInvalidConfig)
	case t.Evader.Radius <= 0:
		return fmt.Errorf("%w: evader radius must be positive", ErrInvalidConfig)
	case t.Evader.CaptureThreshold < 0:
		return fmt.Errorf("%w: capture threshold must not be negative", ErrInvalidConfig)
	case t.Pursuer.Speed <= 0:
		return fmt.Errorf("%w: pursuer speed must be positive", ErrInvalidConfig)
	case t.Pursuer.HuntMultiplier <= 1:
		return fmt.Errorf("%w: hunt multiplier must be > 1", ErrInvalidConfig)
	case t.Pursuer.Capacity <= 0:
		return fmt.Errorf("%w: pursuer capacity must be positive", ErrInvalidConfig)
	case t.Pursuer.Radius <= 0:
		return fmt.Errorf("%w: pursuer radius must be positive", ErrInvalidConfig)
	case t.Pursuer.VisionRange <= 0:
		return fmt.Errorf("%w: vision range must be positive", ErrInvalidConfig)
	case t.Pursuer.DropOffRange < 0:
		return fmt.Errorf("%w: drop-off range must not be negative", ErrInvalidConfig)
	case t.Pursuer.TrailDistance < 0:
		return fmt.Errorf("%w: trail distance must not be negative", ErrInvalidConfig)
	case t.Pursuer.PatrolArea.MaxX < t.Pursuer.PatrolArea.MinX ||
		t.Pursuer.PatrolArea.MaxY < t.Pursuer.PatrolArea.MinY:
		return fmt.Errorf("%w: patrol area is inverted", ErrInvalidConfig)
	case t.Pursuer.MinDwell < 0:
		return fmt.Errorf("%w: dwell must not be negative", ErrInvalidConfig)
	case t.Pursuer.MaxDwell < t.Pursuer.MinDwell:
		return fmt.Errorf("%w: max dwell below min dwell", ErrInvalidConfig)
	}
	return nil
}

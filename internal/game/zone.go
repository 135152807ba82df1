package game

import (
	"encoding/json"
	"time"
)

type BoostState int

const (
	BoostIdle BoostState = iota
	BoostActive
	BoostCooldown
)

func (s BoostState) String() string {
	switch s {
	case BoostIdle:
		return "idle"
	case BoostActive:
		return "active"
	case BoostCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes BoostState as a string.
func (s BoostState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes BoostState from a string.
func (s *BoostState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "active":
		*s = BoostActive
	case "cooldown":
		*s = BoostCooldown
	default:
		*s = BoostIdle
	}
	return nil
}

// Zone is a stationary circular catch area. Evaders inside an active zone freeze.
type Zone struct {
	Index  int
	Center Position
	Active bool
	Boost  BoostState

	tuning      ZoneTuning
	activatedAt time.Duration
	revertedAt  time.Duration
}

// NewZone creates an inactive zone with an idle boost.
func NewZone(index int, center Position, tuning ZoneTuning) *Zone {
	if tuning.BoostMultiplier < 1 {
		tuning.BoostMultiplier = 1
	}
	return &Zone{
		Index:  index,
		Center: center,
		tuning: tuning,
	}
}

// SetActive switches the zone on or off.
func (z *Zone) SetActive(on bool) {
	z.Active = on
}

// BaseRadius returns the unboosted catch radius.
func (z *Zone) BaseRadius() float64 {
	return z.tuning.Radius
}

// Radius returns the current catch radius.
func (z *Zone) Radius() float64 {
	if z.Boost == BoostActive {
		return z.tuning.Radius * z.tuning.BoostMultiplier
	}
	return z.tuning.Radius
}

// RequestBoost starts a boost if none is running and the previous cooldown
// has fully elapsed. Requests during the boost or cooldown are dropped.
func (z *Zone) RequestBoost(now time.Duration) bool {
	switch z.Boost {
	case BoostActive:
		return false
	case BoostCooldown:
		if now-z.revertedAt < z.tuning.BoostCooldown {
			return false
		}
	}
	z.Boost = BoostActive
	z.activatedAt = now
	return true
}

// Tick advances the boost timer. A boost reverts once its duration is
// exceeded; cooldown is measured from the moment it reverts.
func (z *Zone) Tick(now time.Duration) {
	switch z.Boost {
	case BoostActive:
		if now-z.activatedAt > z.tuning.BoostDuration {
			z.Boost = BoostCooldown
			z.revertedAt = now
		}
	case BoostCooldown:
		if now-z.revertedAt >= z.tuning.BoostCooldown {
			z.Boost = BoostIdle
		}
	}
}

// Contains reports whether p is caught by the zone. Inactive zones catch nothing.
func (z *Zone) Contains(p Position) bool {
	return z.Active && Distance(p, z.Center) <= z.Radius()
}

// Reset turns the zone off and clears any boost.
func (z *Zone) Reset() {
	z.Active = false
	z.Boost = BoostIdle
	z.activatedAt = 0
	z.revertedAt = 0
}

package game

import "time"

// Arena dimensions (pixels)
const (
	ArenaWidth  = 1000
	ArenaHeight = 600
)

// Simulation timing
const (
	TickRate      = 60 // ticks per second
	TickInterval  = time.Second / TickRate
	SpawnInterval = 2 * time.Second
	StartingLives = 5
)

// Layout
const (
	ZoneCount        = 3
	PursuerCount     = 1
	WaypointCount    = 6
	ZoneMinDistance  = 220.0 // minimum distance between zone centers
	ZoneEdgeMargin   = 140.0 // zones stay clear of the spawn and exit edges
	PathEdgeMargin   = 40.0
	ArrivalEpsilon   = 1.0 // pixels
	DefaultFollowGap = 28.0
)

// Zone defaults
const (
	ZoneRadius          = 120.0
	ZoneBoostMultiplier = 1.5
	ZoneBoostDuration   = 3 * time.Second
	ZoneBoostCooldown   = 10 * time.Second
)

// Evader defaults
const (
	EvaderSpeed            = 60.0 // pixels per second
	EvaderRadius           = 10.0
	EvaderCaptureThreshold = 5 * time.Second // continuous frozen time
)

// Pursuer defaults
const (
	PursuerSpeed          = 90.0 // pixels per second
	PursuerHuntMultiplier = 1.6
	PursuerVisionRange    = 150.0
	PursuerRadius         = 14.0
	PursuerCapacity       = 10
	PursuerDropOffRange   = 30.0
	PursuerMinDwell       = 2 * time.Second
	PursuerMaxDwell       = 6 * time.Second
)

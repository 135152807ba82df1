package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Arena owns every zone and agent of one simulation and advances them in a
// fixed order. It is not safe for concurrent use; callers serialize Step and
// the zone commands.
type Arena struct {
	tuning   Tuning
	zones    []*Zone
	evaders  []*Evader
	pursuers []*Pursuer
	starts   map[string]Position
	rng      *rand.Rand
	now      time.Duration
}

// NewArena creates an empty arena. rng drives pursuer patrol choices.
func NewArena(tuning Tuning, rng *rand.Rand) (*Arena, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Arena{
		tuning: tuning,
		starts: make(map[string]Position),
		rng:    rng,
	}, nil
}

// Now returns the simulation clock.
func (a *Arena) Now() time.Duration {
	return a.now
}

// Tuning returns the arena's configuration.
func (a *Arena) Tuning() Tuning {
	return a.tuning
}

// AddZone registers a zone centered at center and returns it.
func (a *Arena) AddZone(center Position) *Zone {
	z := NewZone(len(a.zones), center, a.tuning.Zone)
	a.zones = append(a.zones, z)
	return z
}

// AddPursuer registers a pursuer at start. Registration order decides which
// pursuer wins when two touch the same evader in one tick.
func (a *Arena) AddPursuer(start Position) *Pursuer {
	p := NewPursuer(start, a.tuning.Pursuer, rand.New(rand.NewSource(a.rng.Int63())))
	a.pursuers = append(a.pursuers, p)
	a.starts[p.ID] = start
	return p
}

// SpawnEvader creates an evader on path and registers it. A non-positive
// speed falls back to the tuned evader speed.
func (a *Arena) SpawnEvader(path []Position, speed float64) (*Evader, error) {
	e, err := NewEvader(path, speed, a.tuning.Evader)
	if err != nil {
		return nil, err
	}
	a.evaders = append(a.evaders, e)
	return e, nil
}

// SetZoneActive switches zone index on or off.
func (a *Arena) SetZoneActive(index int, on bool) error {
	z, err := a.zone(index)
	if err != nil {
		return err
	}
	z.SetActive(on)
	return nil
}

// RequestZoneBoost asks zone index for a boost and reports whether it started.
func (a *Arena) RequestZoneBoost(index int) (bool, error) {
	z, err := a.zone(index)
	if err != nil {
		return false, err
	}
	return z.RequestBoost(a.now), nil
}

func (a *Arena) zone(index int) (*Zone, error) {
	if index < 0 || index >= len(a.zones) {
		return nil, fmt.Errorf("%w: %d", ErrZoneIndex, index)
	}
	return a.zones[index], nil
}

// Zones returns the registered zones.
func (a *Arena) Zones() []*Zone {
	return a.zones
}

// Evaders returns the live evaders, captured ones included.
func (a *Arena) Evaders() []*Evader {
	return a.evaders
}

// Pursuers returns the registered pursuers.
func (a *Arena) Pursuers() []*Pursuer {
	return a.pursuers
}

// Step advances the clock by dt and runs one tick:
//  1. zone boost timers
//  2. zone containment freezes or thaws every free evader; evaders frozen
//     past their threshold are announced once
//  3. evaders walk
//  4. pursuers tick against the live evader list
//  5. escaped evaders are removed
//  6. delivered evaders are removed
func (a *Arena) Step(dt time.Duration) []Event {
	a.now += dt
	now := a.now
	seconds := dt.Seconds()
	var events []Event

	for _, z := range a.zones {
		z.Tick(now)
	}

	for _, e := range a.evaders {
		if !e.IsFree() {
			continue
		}
		if a.anyZoneContains(e.Pos) {
			e.Freeze(now)
		} else {
			e.Unfreeze()
		}
		if !e.spotted && e.IsCapturable(now) {
			e.spotted = true
			events = append(events, Event{Kind: EventCaughtBySpotlight, EvaderID: e.ID})
		}
	}

	for _, e := range a.evaders {
		e.Advance(seconds)
	}

	delivered := make(map[*Evader]bool)
	for _, p := range a.pursuers {
		report := p.Tick(now, seconds, a.evaders)
		for _, e := range report.Captured {
			events = append(events, Event{Kind: EventPursuerCaptured, EvaderID: e.ID, PursuerID: p.ID})
		}
		if len(report.Delivered) > 0 {
			ids := make([]string, 0, len(report.Delivered))
			for _, e := range report.Delivered {
				delivered[e] = true
				ids = append(ids, e.ID)
			}
			events = append(events, Event{
				Kind:      EventPrisonersDelivered,
				PursuerID: p.ID,
				EvaderIDs: ids,
				Count:     len(ids),
			})
		}
	}

	kept := a.evaders[:0]
	for _, e := range a.evaders {
		if e.Escaped {
			events = append(events, Event{Kind: EventEvaderEscaped, EvaderID: e.ID})
			continue
		}
		if delivered[e] {
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(a.evaders); i++ {
		a.evaders[i] = nil
	}
	a.evaders = kept

	return events
}

func (a *Arena) anyZoneContains(p Position) bool {
	for _, z := range a.zones {
		if z.Contains(p) {
			return true
		}
	}
	return false
}

// Reset drops every evader, turns zones off and returns pursuers to their
// starting points. The clock restarts at zero.
func (a *Arena) Reset() {
	a.now = 0
	a.evaders = nil
	for _, z := range a.zones {
		z.Reset()
	}
	for _, p := range a.pursuers {
		p.Reset(a.starts[p.ID])
	}
}

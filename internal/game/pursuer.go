package game

import (
	"encoding/json"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

type Mode int

const (
	ModePatrol Mode = iota
	ModeHunt
	ModeReturn
)

func (m Mode) String() string {
	switch m {
	case ModePatrol:
		return "patrol"
	case ModeHunt:
		return "hunt"
	case ModeReturn:
		return "return"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes Mode as a string.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON deserializes Mode from a string.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "hunt":
		*m = ModeHunt
	case "return":
		*m = ModeReturn
	default:
		*m = ModePatrol
	}
	return nil
}

// PursuerReport lists what happened to a pursuer's escort chain during one tick.
type PursuerReport struct {
	Captured  []*Evader
	Delivered []*Evader
}

// Pursuer patrols its area, hunts frozen evaders, escorts the ones it
// catches and ferries them to the drop-off once the chain is full.
type Pursuer struct {
	ID     string
	Pos    Position
	Mode   Mode
	Target *Evader
	Escort []*Evader

	tuning       PursuerTuning
	patrolTarget Position
	dwellUntil   time.Duration
	rng          *rand.Rand
}

// NewPursuer creates a patrolling pursuer at start.
func NewPursuer(start Position, tuning PursuerTuning, rng *rand.Rand) *Pursuer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Pursuer{
		ID:           uuid.New().String(),
		Pos:          start,
		Mode:         ModePatrol,
		tuning:       tuning,
		patrolTarget: start,
		rng:          rng,
	}
}

// Capacity returns the maximum escort chain length.
func (p *Pursuer) Capacity() int {
	return p.tuning.Capacity
}

// DropOff returns the point where the escort chain is unloaded.
func (p *Pursuer) DropOff() Position {
	return p.tuning.DropOff
}

// PatrolTarget returns the point the pursuer walks toward while patrolling.
func (p *Pursuer) PatrolTarget() Position {
	return p.patrolTarget
}

func (p *Pursuer) full() bool {
	return len(p.Escort) >= p.tuning.Capacity
}

// Tick runs one simulation step: target selection, mode derivation,
// movement, collision capture, escort positioning and drop-off.
func (p *Pursuer) Tick(now time.Duration, dt float64, evaders []*Evader) PursuerReport {
	var report PursuerReport

	// Target is recomputed every tick; a target that thawed, got caught by
	// someone else or left vision range is simply not found again.
	p.Target = nil
	if !p.full() {
		p.Target = p.nearestFrozen(evaders)
	}

	p.Mode = p.deriveMode()

	switch p.Mode {
	case ModeReturn:
		p.Pos, _ = MoveToward(p.Pos, p.tuning.DropOff, p.tuning.Speed*dt)
	case ModeHunt:
		p.Pos, _ = MoveToward(p.Pos, p.Target.Pos, p.tuning.Speed*p.tuning.HuntMultiplier*dt)
	default:
		p.patrol(now, dt)
	}

	for _, e := range evaders {
		if p.full() {
			break
		}
		if !e.IsCapturable(now) {
			continue
		}
		if !Overlaps(p.Pos, p.tuning.Radius, e.Pos, e.Radius) {
			continue
		}
		if e.MarkCaptured(p.ID) {
			p.Escort = append(p.Escort, e)
			report.Captured = append(report.Captured, e)
		}
	}
	if p.Target != nil && p.Target.State == StateCaptured {
		p.Target = nil
	}
	p.Mode = p.deriveMode()

	leader := p.Pos
	for _, e := range p.Escort {
		e.follow(leader, p.tuning.TrailDistance)
		leader = e.Pos
	}

	if p.Mode == ModeReturn && Distance(p.Pos, p.tuning.DropOff) <= p.tuning.DropOffRange {
		report.Delivered = p.Escort
		p.Escort = nil
		p.Target = nil
		p.Mode = ModePatrol
		p.dwellUntil = now
	}

	return report
}

func (p *Pursuer) deriveMode() Mode {
	switch {
	case p.full():
		return ModeReturn
	case p.Target != nil:
		return ModeHunt
	default:
		return ModePatrol
	}
}

// nearestFrozen returns the closest frozen evader within vision range.
// Equidistant candidates resolve to the first one in slice order.
func (p *Pursuer) nearestFrozen(evaders []*Evader) *Evader {
	var best *Evader
	bestDist := math.Inf(1)
	for _, e := range evaders {
		if e.State != StateFrozen || e.Escaped {
			continue
		}
		d := Distance(p.Pos, e.Pos)
		if d > p.tuning.VisionRange || d >= bestDist {
			continue
		}
		best = e
		bestDist = d
	}
	return best
}

func (p *Pursuer) patrol(now time.Duration, dt float64) {
	if now >= p.dwellUntil || !p.tuning.PatrolArea.Contains(p.patrolTarget) {
		p.pickPatrolTarget(now)
	}
	var arrived bool
	p.Pos, arrived = MoveToward(p.Pos, p.patrolTarget, p.tuning.Speed*dt)
	if arrived {
		p.pickPatrolTarget(now)
	}
}

func (p *Pursuer) pickPatrolTarget(now time.Duration) {
	area := p.tuning.PatrolArea
	p.patrolTarget = Position{
		X: area.MinX + p.rng.Float64()*(area.MaxX-area.MinX),
		Y: area.MinY + p.rng.Float64()*(area.MaxY-area.MinY),
	}
	dwell := p.tuning.MinDwell
	if spread := p.tuning.MaxDwell - p.tuning.MinDwell; spread > 0 {
		dwell += time.Duration(p.rng.Int63n(int64(spread)))
	}
	p.dwellUntil = now + dwell
}

// Reset empties the escort chain and puts the pursuer back on patrol at start.
func (p *Pursuer) Reset(start Position) {
	p.Pos = start
	p.Mode = ModePatrol
	p.Target = nil
	p.Escort = nil
	p.patrolTarget = start
	p.dwellUntil = 0
}

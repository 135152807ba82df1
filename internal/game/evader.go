package game

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type FreezeState int

const (
	StateMoving FreezeState = iota
	StateFrozen
	StateCaptured
)

func (s FreezeState) String() string {
	switch s {
	case StateMoving:
		return "moving"
	case StateFrozen:
		return "frozen"
	case StateCaptured:
		return "captured"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes FreezeState as a string.
func (s FreezeState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes FreezeState from a string.
func (s *FreezeState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "frozen":
		*s = StateFrozen
	case "captured":
		*s = StateCaptured
	default:
		*s = StateMoving
	}
	return nil
}

// Evader walks a fixed waypoint path and tries to leave the arena on the far side.
type Evader struct {
	ID               string
	Pos              Position
	Waypoints        []Position
	Target           int
	Speed            float64
	Radius           float64
	CaptureThreshold time.Duration
	State            FreezeState
	CapturedBy       string
	Escaped          bool

	frozenAt time.Duration
	spotted  bool
}

// NewEvader creates an evader standing on the first waypoint of path.
func NewEvader(path []Position, speed float64, tuning EvaderTuning) (*Evader, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	if speed <= 0 {
		speed = tuning.Speed
	}
	waypoints := make([]Position, len(path))
	copy(waypoints, path)
	return &Evader{
		ID:               uuid.New().String(),
		Pos:              waypoints[0],
		Waypoints:        waypoints,
		Speed:            speed,
		Radius:           tuning.Radius,
		CaptureThreshold: tuning.CaptureThreshold,
		State:            StateMoving,
	}, nil
}

// Advance walks toward the current waypoint. Frozen, captured and escaped
// evaders do not move on their own.
func (e *Evader) Advance(dt float64) {
	if e.State != StateMoving || e.Escaped {
		return
	}
	pos, arrived := MoveToward(e.Pos, e.Waypoints[e.Target], e.Speed*dt)
	e.Pos = pos
	if !arrived {
		return
	}
	e.Target++
	if e.Target >= len(e.Waypoints) {
		e.Target = len(e.Waypoints) - 1
		e.Escaped = true
	}
}

// Freeze stops the evader. Freezing an already frozen evader keeps the
// original start time so re-entering a zone never restarts the countdown.
func (e *Evader) Freeze(now time.Duration) {
	if e.State != StateMoving || e.Escaped {
		return
	}
	e.State = StateFrozen
	e.frozenAt = now
}

// Unfreeze lets a frozen evader walk again.
func (e *Evader) Unfreeze() {
	if e.State != StateFrozen {
		return
	}
	e.State = StateMoving
	e.frozenAt = 0
}

// FrozenFor returns how long the evader has been continuously frozen.
func (e *Evader) FrozenFor(now time.Duration) time.Duration {
	if e.State != StateFrozen {
		return 0
	}
	return now - e.frozenAt
}

// IsCapturable reports whether the evader has been frozen for at least its capture threshold.
func (e *Evader) IsCapturable(now time.Duration) bool {
	return e.State == StateFrozen && now-e.frozenAt >= e.CaptureThreshold
}

// MarkCaptured hands the evader to a pursuer. Returns false if it was already
// captured or has escaped.
func (e *Evader) MarkCaptured(pursuerID string) bool {
	if e.State == StateCaptured || e.Escaped {
		return false
	}
	e.State = StateCaptured
	e.CapturedBy = pursuerID
	e.frozenAt = 0
	return true
}

// IsFree reports whether the evader can still be frozen or caught.
func (e *Evader) IsFree() bool {
	return e.State != StateCaptured && !e.Escaped
}

// follow repositions a captured evader behind its leader in an escort chain.
// Only the captor calls this.
func (e *Evader) follow(leader Position, gap float64) {
	e.Pos = trail(leader, e.Pos, gap)
}

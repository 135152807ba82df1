package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stepDT = 100 * time.Millisecond

func newTestArena(t *testing.T, mutate func(*Tuning)) *Arena {
	t.Helper()
	tuning := DefaultTuning()
	tuning.Zone = testZoneTuning()
	tuning.Evader = testEvaderTuning()
	tuning.Pursuer = testPursuerTuning()
	if mutate != nil {
		mutate(&tuning)
	}
	a, err := NewArena(tuning, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	return a
}

func eventsOfKind(events []Event, kind EventKind) []Event {
	var out []Event
	for _, ev := range events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func TestNewArena_InvalidTuning(t *testing.T) {
	tuning := DefaultTuning()
	tuning.Pursuer.Capacity = 0

	_, err := NewArena(tuning, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestArena_ZoneFreezesEvaderUntilCapturable(t *testing.T) {
	a := newTestArena(t, nil)
	a.AddZone(Position{X: 500, Y: 300})
	require.NoError(t, a.SetZoneActive(0, true))

	e, err := a.SpawnEvader([]Position{{X: 550, Y: 300}, {X: 560, Y: 300}}, 10)
	require.NoError(t, err)

	a.Step(stepDT)
	require.Equal(t, StateFrozen, e.State)
	frozenAt := a.Now()
	assert.True(t, e.IsCapturable(frozenAt+5*time.Second))
	assert.False(t, e.IsCapturable(frozenAt+5*time.Second-time.Millisecond))

	var spotted []Event
	for a.Now() < frozenAt+5*time.Second {
		spotted = append(spotted, eventsOfKind(a.Step(stepDT), EventCaughtBySpotlight)...)
	}
	assert.Equal(t, Position{X: 550, Y: 300}, e.Pos)
	assert.True(t, e.IsCapturable(a.Now()))
	require.Len(t, spotted, 1)
	assert.Equal(t, e.ID, spotted[0].EvaderID)

	// Announced once only.
	assert.Empty(t, eventsOfKind(a.Step(stepDT), EventCaughtBySpotlight))
}

func TestArena_SpotlightWithoutCaptureScoresNothing(t *testing.T) {
	a := newTestArena(t, nil)
	a.AddZone(Position{X: 500, Y: 300})
	require.NoError(t, a.SetZoneActive(0, true))
	e, err := a.SpawnEvader([]Position{{X: 550, Y: 300}, {X: 900, Y: 300}}, 10)
	require.NoError(t, err)

	score := NewScoreboard(3)
	for a.Now() < 5500*time.Millisecond {
		score.Apply(a.Step(stepDT))
	}
	require.True(t, e.IsCapturable(a.Now()))

	require.NoError(t, a.SetZoneActive(0, false))
	score.Apply(a.Step(stepDT))

	assert.Equal(t, StateMoving, e.State)
	assert.Equal(t, 1, score.Spotted)
	assert.Equal(t, 0, score.Captured)
	assert.Equal(t, 0, score.Score)
}

func TestArena_ZoneOffThawsEvader(t *testing.T) {
	a := newTestArena(t, nil)
	a.AddZone(Position{X: 500, Y: 300})
	require.NoError(t, a.SetZoneActive(0, true))
	e, err := a.SpawnEvader([]Position{{X: 500, Y: 300}, {X: 900, Y: 300}}, 10)
	require.NoError(t, err)

	a.Step(stepDT)
	require.Equal(t, StateFrozen, e.State)

	require.NoError(t, a.SetZoneActive(0, false))
	a.Step(stepDT)
	assert.Equal(t, StateMoving, e.State)

	// First step reaches the starting waypoint, the next one walks on.
	a.Step(stepDT)
	assert.Greater(t, e.Pos.X, 500.0)
}

func TestArena_OverlappingZonesDoNotRestartCountdown(t *testing.T) {
	a := newTestArena(t, nil)
	a.AddZone(Position{X: 500, Y: 300})
	a.AddZone(Position{X: 560, Y: 300})
	require.NoError(t, a.SetZoneActive(0, true))
	require.NoError(t, a.SetZoneActive(1, true))
	e, err := a.SpawnEvader([]Position{{X: 530, Y: 300}, {X: 900, Y: 300}}, 10)
	require.NoError(t, err)

	a.Step(stepDT)
	first := e.frozenAt

	require.NoError(t, a.SetZoneActive(0, false))
	a.Step(stepDT)
	assert.Equal(t, StateFrozen, e.State)
	assert.Equal(t, first, e.frozenAt)
}

func TestArena_EscapedEvaderRemoved(t *testing.T) {
	a := newTestArena(t, nil)
	e, err := a.SpawnEvader([]Position{{X: 0, Y: 0}, {X: 5, Y: 0}}, 100)
	require.NoError(t, err)

	var escaped []Event
	for i := 0; i < 5 && len(a.Evaders()) > 0; i++ {
		escaped = append(escaped, eventsOfKind(a.Step(stepDT), EventEvaderEscaped)...)
	}

	require.Len(t, escaped, 1)
	assert.Equal(t, e.ID, escaped[0].EvaderID)
	assert.Empty(t, a.Evaders())
}

func TestArena_SpawnEvaderEmptyPath(t *testing.T) {
	a := newTestArena(t, nil)
	_, err := a.SpawnEvader(nil, 10)
	assert.ErrorIs(t, err, ErrEmptyPath)
	assert.Empty(t, a.Evaders())
}

func TestArena_FirstPursuerWinsSimultaneousCapture(t *testing.T) {
	a := newTestArena(t, func(tu *Tuning) {
		tu.Evader.CaptureThreshold = stepDT
	})
	a.AddZone(Position{X: 500, Y: 300})
	require.NoError(t, a.SetZoneActive(0, true))
	first := a.AddPursuer(Position{X: 500, Y: 300})
	second := a.AddPursuer(Position{X: 505, Y: 300})

	e, err := a.SpawnEvader([]Position{{X: 500, Y: 300}, {X: 900, Y: 300}}, 10)
	require.NoError(t, err)

	var captures []Event
	for i := 0; i < 5 && e.State != StateCaptured; i++ {
		captures = append(captures, eventsOfKind(a.Step(stepDT), EventPursuerCaptured)...)
	}

	require.Len(t, captures, 1)
	assert.Equal(t, first.ID, captures[0].PursuerID)
	assert.Equal(t, first.ID, e.CapturedBy)
	assert.Len(t, first.Escort, 1)
	assert.Empty(t, second.Escort)
}

func TestArena_DeliveredEvadersRemoved(t *testing.T) {
	a := newTestArena(t, func(tu *Tuning) {
		tu.Evader.CaptureThreshold = stepDT
		tu.Pursuer.Capacity = 1
		tu.Pursuer.DropOff = Position{X: 500, Y: 300}
		tu.Pursuer.DropOffRange = 50
	})
	a.AddZone(Position{X: 500, Y: 300})
	require.NoError(t, a.SetZoneActive(0, true))
	p := a.AddPursuer(Position{X: 500, Y: 300})

	e, err := a.SpawnEvader([]Position{{X: 500, Y: 300}, {X: 900, Y: 300}}, 10)
	require.NoError(t, err)

	var events []Event
	for i := 0; i < 5 && len(a.Evaders()) > 0; i++ {
		events = append(events, a.Step(stepDT)...)
	}

	delivered := eventsOfKind(events, EventPrisonersDelivered)
	require.Len(t, delivered, 1)
	assert.Equal(t, 1, delivered[0].Count)
	assert.Equal(t, []string{e.ID}, delivered[0].EvaderIDs)
	assert.Equal(t, p.ID, delivered[0].PursuerID)
	assert.Len(t, eventsOfKind(events, EventPursuerCaptured), 1)
	assert.Empty(t, a.Evaders())
	assert.Empty(t, p.Escort)
	assert.Equal(t, ModePatrol, p.Mode)
}

func TestArena_ZoneCommands(t *testing.T) {
	a := newTestArena(t, nil)
	a.AddZone(Position{X: 500, Y: 300})

	assert.ErrorIs(t, a.SetZoneActive(1, true), ErrZoneIndex)
	assert.ErrorIs(t, a.SetZoneActive(-1, true), ErrZoneIndex)
	_, err := a.RequestZoneBoost(3)
	assert.ErrorIs(t, err, ErrZoneIndex)

	ok, err := a.RequestZoneBoost(0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.RequestZoneBoost(0)
	require.NoError(t, err)
	assert.False(t, ok)

	for a.Now() <= a.Tuning().Zone.BoostDuration {
		a.Step(stepDT)
	}
	assert.InDelta(t, a.Tuning().Zone.Radius, a.Zones()[0].Radius(), 0.001)
}

func TestArena_Snapshot(t *testing.T) {
	a := newTestArena(t, nil)
	a.AddZone(Position{X: 500, Y: 300})
	require.NoError(t, a.SetZoneActive(0, true))
	a.AddPursuer(Position{X: 100, Y: 100})
	e, err := a.SpawnEvader([]Position{{X: 500, Y: 300}, {X: 900, Y: 300}}, 10)
	require.NoError(t, err)

	a.Step(stepDT)
	a.Step(stepDT)

	snap := a.Snapshot()
	require.Len(t, snap.Zones, 1)
	require.Len(t, snap.Evaders, 1)
	require.Len(t, snap.Pursuers, 1)
	assert.True(t, snap.Zones[0].Active)
	assert.Equal(t, StateFrozen, snap.Evaders[0].State)
	assert.InDelta(t, float64(stepDT)/float64(5*time.Second), snap.Evaders[0].FreezeGauge, 0.001)
	assert.Equal(t, 10, snap.Pursuers[0].Capacity)

	snap.Evaders[0].X = -1
	assert.Equal(t, 500.0, e.Pos.X)
}

func TestArena_Reset(t *testing.T) {
	a := newTestArena(t, nil)
	a.AddZone(Position{X: 500, Y: 300})
	require.NoError(t, a.SetZoneActive(0, true))
	p := a.AddPursuer(Position{X: 100, Y: 100})
	_, err := a.SpawnEvader([]Position{{X: 500, Y: 300}}, 10)
	require.NoError(t, err)
	a.Step(stepDT)

	a.Reset()

	assert.Zero(t, a.Now())
	assert.Empty(t, a.Evaders())
	assert.False(t, a.Zones()[0].Active)
	assert.Equal(t, Position{X: 100, Y: 100}, p.Pos)
}

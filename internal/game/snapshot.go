package game

// ZoneView is the read-only state of a zone handed to renderers.
type ZoneView struct {
	Index  int        `json:"index"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Radius float64    `json:"radius"`
	Active bool       `json:"active"`
	Boost  BoostState `json:"boost"`
}

// EvaderView is the read-only state of an evader handed to renderers.
type EvaderView struct {
	ID          string      `json:"id"`
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	State       FreezeState `json:"state"`
	CapturedBy  string      `json:"captured_by,omitempty"`
	FreezeGauge float64     `json:"freeze_gauge"` // 0..1 progress toward capturable
}

// PursuerView is the read-only state of a pursuer handed to renderers.
type PursuerView struct {
	ID       string   `json:"id"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Mode     Mode     `json:"mode"`
	TargetID string   `json:"target_id,omitempty"`
	Escort   []string `json:"escort"`
	Capacity int      `json:"capacity"`
}

// Snapshot is a copy of the arena at one instant. Mutating it does not
// affect the simulation.
type Snapshot struct {
	Time     float64       `json:"time"`
	Zones    []ZoneView    `json:"zones"`
	Evaders  []EvaderView  `json:"evaders"`
	Pursuers []PursuerView `json:"pursuers"`
}

// Snapshot copies the current state of every zone and agent.
func (a *Arena) Snapshot() Snapshot {
	s := Snapshot{
		Time:     a.now.Seconds(),
		Zones:    make([]ZoneView, 0, len(a.zones)),
		Evaders:  make([]EvaderView, 0, len(a.evaders)),
		Pursuers: make([]PursuerView, 0, len(a.pursuers)),
	}
	for _, z := range a.zones {
		s.Zones = append(s.Zones, ZoneView{
			Index:  z.Index,
			X:      z.Center.X,
			Y:      z.Center.Y,
			Radius: z.Radius(),
			Active: z.Active,
			Boost:  z.Boost,
		})
	}
	for _, e := range a.evaders {
		gauge := 0.0
		if e.CaptureThreshold > 0 {
			gauge = min(1, float64(e.FrozenFor(a.now))/float64(e.CaptureThreshold))
		}
		s.Evaders = append(s.Evaders, EvaderView{
			ID:          e.ID,
			X:           e.Pos.X,
			Y:           e.Pos.Y,
			State:       e.State,
			CapturedBy:  e.CapturedBy,
			FreezeGauge: gauge,
		})
	}
	for _, p := range a.pursuers {
		escort := make([]string, 0, len(p.Escort))
		for _, e := range p.Escort {
			escort = append(escort, e.ID)
		}
		view := PursuerView{
			ID:       p.ID,
			X:        p.Pos.X,
			Y:        p.Pos.Y,
			Mode:     p.Mode,
			Escort:   escort,
			Capacity: p.Capacity(),
		}
		if p.Target != nil {
			view.TargetID = p.Target.ID
		}
		s.Pursuers = append(s.Pursuers, view)
	}
	return s
}

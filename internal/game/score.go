package game

// Points per event. Spotlight notifications are tallied but not scored;
// an evader only pays out once a pursuer takes it.
const (
	PointsCapture  = 5
	PointsDelivery = 10 // per delivered evader
)

// Scoreboard tallies arena events into a score and remaining lives.
type Scoreboard struct {
	Score     int `json:"score"`
	Lives     int `json:"lives"`
	Escaped   int `json:"escaped"`
	Spotted   int `json:"spotted"`
	Captured  int `json:"captured"`
	Delivered int `json:"delivered"`
}

// NewScoreboard creates a scoreboard with the given lives.
func NewScoreboard(lives int) *Scoreboard {
	return &Scoreboard{Lives: lives}
}

// Apply folds a batch of events into the tally.
func (s *Scoreboard) Apply(events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case EventEvaderEscaped:
			s.Escaped++
			if s.Lives > 0 {
				s.Lives--
			}
		case EventCaughtBySpotlight:
			s.Spotted++
		case EventPursuerCaptured:
			s.Captured++
			s.Score += PointsCapture
		case EventPrisonersDelivered:
			s.Delivered += ev.Count
			s.Score += PointsDelivery * ev.Count
		}
	}
}

// IsOver returns true once every life is spent.
func (s *Scoreboard) IsOver() bool {
	return s.Lives <= 0
}

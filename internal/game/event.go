package game

import (
	"encoding/json"
	"fmt"
)

type EventKind int

const (
	EventEvaderEscaped EventKind = iota
	EventCaughtBySpotlight
	EventPursuerCaptured
	EventPrisonersDelivered
)

func (k EventKind) String() string {
	switch k {
	case EventEvaderEscaped:
		return "evader_escaped"
	case EventCaughtBySpotlight:
		return "caught_by_spotlight"
	case EventPursuerCaptured:
		return "pursuer_captured"
	case EventPrisonersDelivered:
		return "prisoners_delivered"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes EventKind as a string.
func (k EventKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON deserializes EventKind from a string.
func (k *EventKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "evader_escaped":
		*k = EventEvaderEscaped
	case "caught_by_spotlight":
		*k = EventCaughtBySpotlight
	case "pursuer_captured":
		*k = EventPursuerCaptured
	case "prisoners_delivered":
		*k = EventPrisonersDelivered
	default:
		return fmt.Errorf("unknown event kind %q", str)
	}
	return nil
}

// Event is a discrete notification produced by one arena step.
type Event struct {
	Kind      EventKind `json:"kind"`
	EvaderID  string    `json:"evader_id,omitempty"`
	PursuerID string    `json:"pursuer_id,omitempty"`
	// EvaderIDs and Count are set on deliveries.
	EvaderIDs []string `json:"evader_ids,omitempty"`
	Count     int      `json:"count,omitempty"`
}

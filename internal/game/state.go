package game

type RoomState int

const (
	RoomWaiting RoomState = iota
	RoomPlaying
	RoomEnded
)

func (s RoomState) String() string {
	switch s {
	case RoomWaiting:
		return "waiting"
	case RoomPlaying:
		return "playing"
	case RoomEnded:
		return "ended"
	default:
		return "unknown"
	}
}

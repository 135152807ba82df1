package room

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/ugaemi/searchlight-server/internal/game"
	"github.com/ugaemi/searchlight-server/internal/ws"
)

const MaxMembers = 8

var (
	ErrNotPlaying     = errors.New("game is not in progress")
	ErrAlreadyPlaying = errors.New("game already in progress")
	ErrNotHost        = errors.New("only the host can start the game")
)

// Settings describes how every game in a room is set up.
type Settings struct {
	Tuning        game.Tuning
	TickInterval  time.Duration
	SpawnInterval time.Duration
	Lives         int
	ZoneCount     int
	PursuerCount  int
}

// DefaultSettings returns the stock game setup.
func DefaultSettings() Settings {
	return Settings{
		Tuning:        game.DefaultTuning(),
		TickInterval:  game.TickInterval,
		SpawnInterval: game.SpawnInterval,
		Lives:         game.StartingLives,
		ZoneCount:     game.ZoneCount,
		PursuerCount:  game.PursuerCount,
	}
}

// Room represents a game room: its members and, while playing, one arena.
type Room struct {
	Code    string             `json:"code"`
	State   game.RoomState     `json:"state"`
	Members map[string]*Member `json:"members"`
	HostID  string             `json:"host_id"`

	// Client mapping: member ID -> ws client
	clients map[string]*ws.Client

	settings Settings
	arena    *game.Arena
	score    *game.Scoreboard
	spawner  *game.Spawner
	rng      *rand.Rand

	// Game loop control
	stopCh chan struct{}

	mu sync.RWMutex
}

// NewRoom creates a new room with the given code.
func NewRoom(code string, settings Settings) *Room {
	return &Room{
		Code:     code,
		State:    game.RoomWaiting,
		Members:  make(map[string]*Member),
		clients:  make(map[string]*ws.Client),
		settings: settings,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// AddMember adds a member to the room. Returns false if the room is full.
func (r *Room) AddMember(member *Member, client *ws.Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Members) >= MaxMembers {
		return false
	}

	r.Members[member.ID] = member
	r.clients[member.ID] = client

	if len(r.Members) == 1 {
		r.HostID = member.ID
	}
	return true
}

// RemoveMember removes a member from the room.
func (r *Room) RemoveMember(memberID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.Members, memberID)
	delete(r.clients, memberID)

	// Transfer host if the host left
	if r.HostID == memberID && len(r.Members) > 0 {
		for id := range r.Members {
			r.HostID = id
			break
		}
	}
}

// HasMember reports whether memberID is in the room.
func (r *Room) HasMember(memberID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.Members[memberID]
	return ok
}

// MemberCount returns the number of members.
func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Members)
}

// IsEmpty returns true if the room has no members.
func (r *Room) IsEmpty() bool {
	return r.MemberCount() == 0
}

// GetMemberList returns a slice of all members.
func (r *Room) GetMemberList() []*Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := make([]*Member, 0, len(r.Members))
	for _, m := range r.Members {
		members = append(members, m)
	}
	return members
}

// CurrentState returns the room state.
func (r *Room) CurrentState() game.RoomState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.State
}

// Host returns the host member ID.
func (r *Room) Host() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.HostID
}

// BroadcastMessage sends a message to all members in the room.
// The message is encoded once and the same bytes go to every client.
func (r *Room) BroadcastMessage(msg ws.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal broadcast", "room", r.Code, "type", msg.Type, "error", err)
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, client := range r.clients {
		client.SendRaw(data)
	}
}

// SendToMember sends a message to a specific member.
func (r *Room) SendToMember(memberID string, msg ws.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if client, ok := r.clients[memberID]; ok {
		client.SendMessage(msg)
	}
}

// Reset returns an ended room to waiting, keeping its members.
func (r *Room) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State == game.RoomPlaying {
		return
	}
	r.State = game.RoomWaiting
	if r.arena != nil {
		r.arena.Reset()
	}
	r.arena = nil
	r.score = nil
	r.spawner = nil
}

type gameStartMessage struct {
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	DropOff  game.Position `json:"drop_off"`
	Lives    int           `json:"lives"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// PrepareGame builds a fresh arena with zones and pursuers and transitions
// to playing. Must be called before StartGameLoop.
func (r *Room) PrepareGame(memberID string) (ws.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State == game.RoomPlaying {
		return ws.Message{}, ErrAlreadyPlaying
	}
	if memberID != r.HostID {
		return ws.Message{}, ErrNotHost
	}

	tuning := r.settings.Tuning
	arena, err := game.NewArena(tuning, rand.New(rand.NewSource(r.rng.Int63())))
	if err != nil {
		return ws.Message{}, err
	}
	for _, c := range game.GenerateZoneLayout(r.rng, r.settings.ZoneCount, tuning.Width, tuning.Height) {
		arena.AddZone(c)
	}
	for _, s := range game.PursuerStarts(r.settings.PursuerCount, tuning.Pursuer.PatrolArea) {
		arena.AddPursuer(s)
	}

	r.arena = arena
	r.score = game.NewScoreboard(r.settings.Lives)
	r.spawner = game.NewSpawner(r.settings.SpawnInterval)
	r.State = game.RoomPlaying
	r.stopCh = make(chan struct{})

	slog.Info("game prepared", "room", r.Code, "members", len(r.Members),
		"zones", len(arena.Zones()), "pursuers", len(arena.Pursuers()))

	return ws.NewMessage(ws.TypeGameStart, gameStartMessage{
		Width:    tuning.Width,
		Height:   tuning.Height,
		DropOff:  tuning.Pursuer.DropOff,
		Lives:    r.settings.Lives,
		Snapshot: arena.Snapshot(),
	})
}

// StartGameLoop starts the tick loop. Must be called after PrepareGame and broadcasting game_start.
func (r *Room) StartGameLoop() {
	go r.gameLoop()
}

// SetZoneActive forwards a zone on/off command to the arena.
func (r *Room) SetZoneActive(index int, on bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != game.RoomPlaying {
		return ErrNotPlaying
	}
	return r.arena.SetZoneActive(index, on)
}

// RequestZoneBoost forwards a boost request to the arena and reports whether it started.
func (r *Room) RequestZoneBoost(index int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != game.RoomPlaying {
		return false, ErrNotPlaying
	}
	return r.arena.RequestZoneBoost(index)
}

// Score returns a copy of the current scoreboard.
func (r *Room) Score() game.Scoreboard {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.score == nil {
		return game.Scoreboard{}
	}
	return *r.score
}

type gameOverMessage struct {
	Score game.Scoreboard `json:"score"`
}

// StopGame stops the game loop and transitions to ended state.
func (r *Room) StopGame() {
	r.mu.Lock()

	if r.State != game.RoomPlaying {
		r.mu.Unlock()
		return
	}

	r.State = game.RoomEnded

	// Signal the game loop to stop
	select {
	case <-r.stopCh:
		// Already closed
	default:
		close(r.stopCh)
	}

	score := *r.score
	r.mu.Unlock()

	msg, _ := ws.NewMessage(ws.TypeGameOver, gameOverMessage{Score: score})
	r.BroadcastMessage(msg)

	slog.Info("game ended", "room", r.Code, "score", score.Score, "delivered", score.Delivered, "escaped", score.Escaped)
}

type gameStateMessage struct {
	game.Snapshot
	Score game.Scoreboard `json:"score"`
}

type gameEventMessage struct {
	Events []game.Event `json:"events"`
}

// tick spawns due evaders, steps the arena once and returns what to broadcast.
// Caller must hold r.mu.
func (r *Room) tick(dt time.Duration) (gameStateMessage, []game.Event) {
	tuning := r.arena.Tuning()
	if r.spawner.Due(r.arena.Now()) {
		path := game.GenerateWaypointPath(r.rng, tuning.Width, tuning.Height, game.WaypointCount)
		if e, err := r.arena.SpawnEvader(path, 0); err != nil {
			slog.Warn("spawn failed", "room", r.Code, "error", err)
		} else {
			slog.Debug("evader spawned", "room", r.Code, "evader", e.ID)
		}
	}

	events := r.arena.Step(dt)
	r.score.Apply(events)
	for _, ev := range events {
		slog.Debug("arena event", "room", r.Code, "kind", ev.Kind.String(), "evader", ev.EvaderID, "pursuer", ev.PursuerID, "count", ev.Count)
	}

	return gameStateMessage{Snapshot: r.arena.Snapshot(), Score: *r.score}, events
}

// gameLoop steps the arena once per tick interval. The room lock keeps
// ticks and zone commands strictly sequential.
func (r *Room) gameLoop() {
	r.mu.RLock()
	stopCh := r.stopCh
	interval := r.settings.TickInterval
	r.mu.RUnlock()

	if interval <= 0 {
		slog.Warn("invalid tick interval, using default", "room", r.Code, "interval", interval)
		interval = game.TickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			r.mu.Lock()
			if r.State != game.RoomPlaying {
				r.mu.Unlock()
				return
			}
			state, events := r.tick(interval)
			over := r.score.IsOver()
			r.mu.Unlock()

			msg, _ := ws.NewMessage(ws.TypeGameState, state)
			r.BroadcastMessage(msg)
			if len(events) > 0 {
				evMsg, _ := ws.NewMessage(ws.TypeGameEvent, gameEventMessage{Events: events})
				r.BroadcastMessage(evMsg)
			}

			if over {
				r.StopGame()
				return
			}
		}
	}
}

package room

import (
	"log/slog"
	"sync"

	"github.com/ugaemi/searchlight-server/internal/game"
)

// Manager manages all active rooms.
type Manager struct {
	rooms    map[string]*Room // code -> room
	settings Settings
	mu       sync.RWMutex
}

// NewManager creates a room manager whose rooms all use settings.
func NewManager(settings Settings) *Manager {
	return &Manager{
		rooms:    make(map[string]*Room),
		settings: settings,
	}
}

// CreateRoom creates a new room and returns it.
func (m *Manager) CreateRoom() *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := GenerateCode(func(c string) bool {
		_, ok := m.rooms[c]
		return ok
	})
	room := NewRoom(code, m.settings)
	m.rooms[code] = room

	slog.Info("room created", "code", code)
	return room
}

// GetRoom returns a room by its code.
func (m *Manager) GetRoom(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[code]
}

// RemoveRoom stops any running game and removes the room.
func (m *Manager) RemoveRoom(code string) {
	m.mu.Lock()
	room := m.rooms[code]
	delete(m.rooms, code)
	m.mu.Unlock()

	if room != nil {
		room.StopGame()
	}
	slog.Info("room removed", "code", code)
}

// RoomCount returns the number of active rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// FindRoomByMemberID finds the room containing a member.
func (m *Manager) FindRoomByMemberID(memberID string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, room := range m.rooms {
		if room.HasMember(memberID) {
			return room
		}
	}
	return nil
}

// PlayingCount returns how many rooms have a game in progress.
func (m *Manager) PlayingCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, r := range m.rooms {
		if r.CurrentState() == game.RoomPlaying {
			n++
		}
	}
	return n
}

// StopAll ends every running game. Rooms and members are kept.
func (m *Manager) StopAll() {
	m.mu.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()

	for _, r := range rooms {
		r.StopGame()
	}
}

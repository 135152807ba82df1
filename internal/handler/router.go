package handler

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ugaemi/searchlight-server/internal/room"
	"github.com/ugaemi/searchlight-server/internal/ws"
)

// Router dispatches incoming messages to the appropriate handler.
type Router struct {
	lobby   *LobbyHandler
	control *ControlHandler

	// memberMap tracks client ID -> member ID mapping, shared across handlers.
	memberMap map[string]string
	mu        sync.RWMutex
}

// NewRouter creates a new message router.
func NewRouter(rm *room.Manager) *Router {
	r := &Router{
		memberMap: make(map[string]string),
	}
	r.lobby = NewLobbyHandler(rm, r)
	r.control = NewControlHandler(rm, r)
	return r
}

// RegisterMember maps a client ID to a member ID.
func (r *Router) RegisterMember(clientID, memberID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.memberMap[clientID] = memberID
}

// UnregisterMember removes a client's member mapping.
func (r *Router) UnregisterMember(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.memberMap, clientID)
}

// GetMemberID returns the member ID for a client, or empty string if not found.
func (r *Router) GetMemberID(clientID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.memberMap[clientID]
}

// HandleMessage parses and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	var msg ws.Message
	if err := json.Unmarshal(cm.Data, &msg); err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	switch msg.Type {
	// Lobby messages
	case ws.TypeCreateRoom:
		r.lobby.HandleCreateRoom(cm.Client, msg)
	case ws.TypeJoinRoom:
		r.lobby.HandleJoinRoom(cm.Client, msg)
	case ws.TypeLeaveRoom:
		r.lobby.HandleLeaveRoom(cm.Client, msg)
	case ws.TypeStartGame:
		r.lobby.HandleStartGame(cm.Client, msg)
	case ws.TypeReturnToLobby:
		r.lobby.HandleReturnToLobby(cm.Client, msg)

	// Zone control
	case ws.TypeToggleZone:
		r.control.HandleToggleZone(cm.Client, msg)
	case ws.TypeBoostZone:
		r.control.HandleBoostZone(cm.Client, msg)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// HandleDisconnect handles client disconnection.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.lobby.HandleDisconnect(client)
}

// roomOf returns the room the client's member is in, or nil.
func (r *Router) roomOf(rm *room.Manager, client *ws.Client) (string, *room.Room) {
	memberID := r.GetMemberID(client.ID)
	if memberID == "" {
		return "", nil
	}
	return memberID, rm.FindRoomByMemberID(memberID)
}

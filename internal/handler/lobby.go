package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/ugaemi/searchlight-server/internal/room"
	"github.com/ugaemi/searchlight-server/internal/ws"
)

// LobbyHandler handles lobby-related messages.
type LobbyHandler struct {
	rm     *room.Manager
	router *Router
}

// NewLobbyHandler creates a new lobby handler.
func NewLobbyHandler(rm *room.Manager, router *Router) *LobbyHandler {
	return &LobbyHandler{
		rm:     rm,
		router: router,
	}
}

type createRoomRequest struct {
	Nickname string `json:"nickname"`
}

type joinRoomResponse struct {
	Code     string `json:"code"`
	MemberID string `json:"member_id"`
}

// HandleCreateRoom handles room creation.
func (h *LobbyHandler) HandleCreateRoom(client *ws.Client, msg ws.Message) {
	var req createRoomRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Nickname == "" {
		client.SendMessage(ws.NewErrorMessage("nickname is required"))
		return
	}
	if h.router.GetMemberID(client.ID) != "" {
		client.SendMessage(ws.NewErrorMessage("already in a room"))
		return
	}

	r := h.rm.CreateRoom()
	member := room.NewMember(req.Nickname)
	r.AddMember(member, client)
	h.router.RegisterMember(client.ID, member.ID)

	resp, _ := ws.NewMessage(ws.TypeCreateRoom, joinRoomResponse{
		Code:     r.Code,
		MemberID: member.ID,
	})
	client.SendMessage(resp)

	slog.Info("member created room", "member", member.Nickname, "room", r.Code)
}

type joinRoomRequest struct {
	Code     string `json:"code"`
	Nickname string `json:"nickname"`
}

// HandleJoinRoom handles joining an existing room.
func (h *LobbyHandler) HandleJoinRoom(client *ws.Client, msg ws.Message) {
	var req joinRoomRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Code == "" || req.Nickname == "" {
		client.SendMessage(ws.NewErrorMessage("code and nickname are required"))
		return
	}
	if h.router.GetMemberID(client.ID) != "" {
		client.SendMessage(ws.NewErrorMessage("already in a room"))
		return
	}

	r := h.rm.GetRoom(req.Code)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("room not found"))
		return
	}

	member := room.NewMember(req.Nickname)
	if !r.AddMember(member, client) {
		client.SendMessage(ws.NewErrorMessage("room is full"))
		return
	}
	h.router.RegisterMember(client.ID, member.ID)

	resp, _ := ws.NewMessage(ws.TypeJoinRoom, joinRoomResponse{
		Code:     r.Code,
		MemberID: member.ID,
	})
	client.SendMessage(resp)

	h.broadcastRoomInfo(r)

	slog.Info("member joined room", "member", member.Nickname, "room", r.Code)
}

// HandleStartGame builds the arena and starts the tick loop. Host only.
func (h *LobbyHandler) HandleStartGame(client *ws.Client, _ ws.Message) {
	memberID, r := h.router.roomOf(h.rm, client)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
		return
	}

	startMsg, err := r.PrepareGame(memberID)
	if err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}

	// Broadcast game_start before starting the loop
	r.BroadcastMessage(startMsg)
	r.StartGameLoop()
	slog.Info("game starting", "room", r.Code, "host", memberID)
}

// HandleReturnToLobby moves an ended room back to waiting.
func (h *LobbyHandler) HandleReturnToLobby(client *ws.Client, _ ws.Message) {
	_, r := h.router.roomOf(h.rm, client)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
		return
	}

	r.Reset()
	h.broadcastRoomInfo(r)
}

// HandleLeaveRoom handles a member leaving a room.
func (h *LobbyHandler) HandleLeaveRoom(client *ws.Client, _ ws.Message) {
	h.removeMember(client)
}

// HandleDisconnect handles client disconnection.
func (h *LobbyHandler) HandleDisconnect(client *ws.Client) {
	h.removeMember(client)
}

func (h *LobbyHandler) removeMember(client *ws.Client) {
	memberID, r := h.router.roomOf(h.rm, client)
	if memberID == "" {
		return
	}

	if r != nil {
		r.RemoveMember(memberID)
		if r.IsEmpty() {
			h.rm.RemoveRoom(r.Code)
		} else {
			h.broadcastRoomInfo(r)
		}
	}

	h.router.UnregisterMember(client.ID)
	slog.Info("member left", "member", memberID)
}

type roomInfoResponse struct {
	Code    string         `json:"code"`
	State   string         `json:"state"`
	Members []*room.Member `json:"members"`
	HostID  string         `json:"host_id"`
}

func (h *LobbyHandler) broadcastRoomInfo(r *room.Room) {
	resp, _ := ws.NewMessage(ws.TypeRoomInfo, roomInfoResponse{
		Code:    r.Code,
		State:   r.CurrentState().String(),
		Members: r.GetMemberList(),
		HostID:  r.Host(),
	})
	r.BroadcastMessage(resp)
}

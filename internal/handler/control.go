package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/ugaemi/searchlight-server/internal/room"
	"github.com/ugaemi/searchlight-server/internal/ws"
)

// ControlHandler maps zone key bindings sent by clients onto the arena.
type ControlHandler struct {
	rm     *room.Manager
	router *Router
}

// NewControlHandler creates a new zone control handler.
func NewControlHandler(rm *room.Manager, router *Router) *ControlHandler {
	return &ControlHandler{rm: rm, router: router}
}

type toggleZoneRequest struct {
	Zone   *int `json:"zone"`
	Active bool `json:"active"`
}

type boostZoneRequest struct {
	Zone *int `json:"zone"`
}

type boostZoneResponse struct {
	Zone    int  `json:"zone"`
	Boosted bool `json:"boosted"`
}

// HandleToggleZone switches a zone on or off.
func (h *ControlHandler) HandleToggleZone(client *ws.Client, msg ws.Message) {
	var req toggleZoneRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Zone == nil {
		client.SendMessage(ws.NewErrorMessage("invalid zone command"))
		return
	}

	memberID, r := h.router.roomOf(h.rm, client)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
		return
	}

	if err := r.SetZoneActive(*req.Zone, req.Active); err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}

	slog.Debug("zone toggled", "room", r.Code, "member", memberID, "zone", *req.Zone, "active", req.Active)
}

// HandleBoostZone requests a radius boost and tells the client whether it started.
func (h *ControlHandler) HandleBoostZone(client *ws.Client, msg ws.Message) {
	var req boostZoneRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Zone == nil {
		client.SendMessage(ws.NewErrorMessage("invalid zone command"))
		return
	}

	memberID, r := h.router.roomOf(h.rm, client)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
		return
	}

	boosted, err := r.RequestZoneBoost(*req.Zone)
	if err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}

	resp, _ := ws.NewMessage(ws.TypeBoostZone, boostZoneResponse{Zone: *req.Zone, Boosted: boosted})
	client.SendMessage(resp)

	slog.Debug("zone boost requested", "room", r.Code, "member", memberID, "zone", *req.Zone, "boosted", boosted)
}

package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"radcase-engine/internal/app"
	"radcase-engine/internal/domain"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.AttemptService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.AttemptService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type casePayload struct {
	CaseID string `json:"caseId"`
}

type eliminatePayload struct {
	CaseID       string `json:"caseId"`
	FreeInReview bool   `json:"freeInReview"`
}

type submitPayload struct {
	CaseID        string `json:"caseId"`
	SelectedIndex int    `json:"selectedIndex"`
}

type eventPayload struct {
	EventID string `json:"eventId"`
}

type caseOrder struct {
	EventID string   `json:"eventId"`
	CaseIDs []string `json:"caseIds"`
}

type helpDenied struct {
	Action string                 `json:"action"`
	Reason domain.RejectionReason `json:"reason"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the
// attempt use cases. One connection serves one user; each case attempt is
// addressed by its caseId so a client can interleave event cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		h.dispatch(conn, r, userID, inbound)
	}
}

func (h *WSHandler) dispatch(conn *websocket.Conn, r *http.Request, userID string, inbound inboundMessage) {
	ctx := r.Context()
	switch inbound.Type {
	case "start":
		var payload casePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			writeError(conn, "invalid start payload")
			return
		}
		view, err := h.service.Start(ctx, userID, payload.CaseID)
		if err != nil {
			writeError(conn, err.Error())
			return
		}
		write(conn, "caseStarted", view)

	case "eliminate":
		var payload eliminatePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			writeError(conn, "invalid eliminate payload")
			return
		}
		result, err := h.service.Eliminate(ctx, userID, payload.CaseID, payload.FreeInReview)
		if err != nil {
			writeError(conn, err.Error())
			return
		}
		if !result.Applied {
			write(conn, "helpDenied", helpDenied{Action: "eliminate", Reason: result.Reason})
			return
		}
		write(conn, "eliminated", result)

	case "skip":
		h.help(ctx, conn, userID, inbound.Payload, "skip", h.service.Skip, "skipped")

	case "hint":
		h.help(ctx, conn, userID, inbound.Payload, "hint", h.service.Hint, "hintGranted")

	case "submit":
		var payload submitPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			writeError(conn, "invalid submit payload")
			return
		}
		result, err := h.service.Submit(ctx, userID, payload.CaseID, payload.SelectedIndex)
		if err != nil {
			writeError(conn, err.Error())
			return
		}
		write(conn, "result", result)

	case "eventOrder":
		var payload eventPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			writeError(conn, "invalid eventOrder payload")
			return
		}
		ids, err := h.service.EventOrder(ctx, payload.EventID)
		if err != nil {
			writeError(conn, err.Error())
			return
		}
		write(conn, "caseOrder", caseOrder{EventID: payload.EventID, CaseIDs: ids})

	default:
		writeError(conn, "unsupported message type")
	}
}

type helpFn func(ctx context.Context, userID, caseID string) (domain.HelpResult, error)

func (h *WSHandler) help(ctx context.Context, conn *websocket.Conn, userID string, raw json.RawMessage, action string, fn helpFn, okType string) {
	var payload casePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		writeError(conn, "invalid "+action+" payload")
		return
	}
	result, err := fn(ctx, userID, payload.CaseID)
	if err != nil {
		writeError(conn, err.Error())
		return
	}
	if !result.Applied {
		write(conn, "helpDenied", helpDenied{Action: action, Reason: result.Reason})
		return
	}
	write(conn, okType, result)
}

func write[T any](conn *websocket.Conn, typ string, payload T) {
	if err := conn.WriteJSON(outboundMessage[T]{Type: typ, Payload: payload}); err != nil {
		log.Printf("ws write error: %v", err)
	}
}

func writeError(conn *websocket.Conn, message string) {
	write(conn, "error", errorPayload{Message: message})
}

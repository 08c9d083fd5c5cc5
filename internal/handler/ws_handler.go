package handler

import (
	"net/http"
	"strings"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/middleware"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/service"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WSHandler handles WebSocket connections for live board feeds
type WSHandler struct {
	hub            *ws.Hub
	access         service.AccessService
	allowedOrigins []string
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *ws.Hub, access service.AccessService, allowedOrigins string) *WSHandler {
	h := &WSHandler{
		hub:            hub,
		access:         access,
		allowedOrigins: parseOrigins(allowedOrigins),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// parseOrigins parses comma-separated origins string
func parseOrigins(origins string) []string {
	if origins == "" {
		return nil
	}
	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// checkOrigin validates the request origin against allowed origins
func (h *WSHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true // Same-origin requests don't have Origin header
	}

	// If no allowed origins configured, allow all (development mode)
	if len(h.allowedOrigins) == 0 {
		return true
	}

	for _, allowed := range h.allowedOrigins {
		if origin == allowed {
			return true
		}
	}

	return false
}

// Connect handles GET /ws/boards/:board_id, upgrading to WebSocket.
// The caller must be able to view the board.
func (h *WSHandler) Connect(c *gin.Context) {
	boardID, err := paramID(c, "board_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid board ID", err)
		return
	}

	userID := middleware.GetUserID(c)
	if _, err := h.access.Require(service.ActionView, boardID, userID); err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, boardID, userID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

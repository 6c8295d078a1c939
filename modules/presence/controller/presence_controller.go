package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"venuehub/core/logger"
	"venuehub/core/middleware"
	"venuehub/core/realtime"
	"venuehub/modules/presence/service"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 45 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// inboundMessage is what a connected client may send over the socket.
type inboundMessage struct {
	Type     string `json:"type"` // "typing" | "heartbeat"
	IsTyping bool   `json:"isTyping"`
}

type PresenceController struct {
	presence service.PresenceService
}

func NewPresenceController(presence service.PresenceService) *PresenceController {
	return &PresenceController{presence: presence}
}

// GetMembers lists who is currently present in a room.
// GET /api/rooms/:id/members
func (c *PresenceController) GetMembers(ctx echo.Context) error {
	room := ctx.Param("id")
	members, appErr := c.presence.Members(ctx.Request().Context(), room)
	if appErr != nil {
		return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": appErr.Message})
	}
	if members == nil {
		members = []string{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"members": members})
}

// Connect upgrades to a websocket, joins the room and relays room events
// until the client disconnects.
// GET /api/rooms/:id/ws
func (c *PresenceController) Connect(ctx echo.Context) error {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid user"})
	}
	room := ctx.Param("id")
	member := userID.String()

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		logger.Error("PresenceController:Connect:Upgrade:Error", "error", err, "room", room)
		return err
	}
	defer conn.Close()

	reqCtx := ctx.Request().Context()
	sub, appErr := c.presence.Join(reqCtx, room, member)
	if appErr != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, appErr.Message),
			time.Now().Add(writeWait))
		return nil
	}
	defer func() {
		_ = sub.Close()
		if appErr := c.presence.Leave(reqCtx, room, member); appErr != nil {
			logger.Warn("PresenceController:Connect:Leave:Error", "room", room, "member", member)
		}
	}()

	done := make(chan struct{})
	defer close(done)
	go c.writePump(conn, sub, done)

	c.readPump(reqCtx, conn, room, member)
	return nil
}

// writePump forwards room events to the client and keeps the connection
// alive with pings.
func (c *PresenceController) writePump(conn *websocket.Conn, sub realtime.Subscription, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// readPump consumes client messages until the socket closes. Any inbound
// traffic counts as activity for presence purposes.
func (c *PresenceController) readPump(ctx context.Context, conn *websocket.Conn, room, member string) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("PresenceController:ReadPump:Error", "error", err, "room", room, "member", member)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "typing":
			if appErr := c.presence.Typing(ctx, room, member, msg.IsTyping); appErr != nil {
				logger.Warn("PresenceController:ReadPump:Typing:Error", "room", room, "member", member)
			}
		default:
			if appErr := c.presence.Heartbeat(ctx, room, member); appErr != nil {
				logger.Warn("PresenceController:ReadPump:Heartbeat:Error", "room", room, "member", member)
			}
		}
	}
}

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/riceguard/riceguard-go/internal/errors"
)

// ChatRequest is the payload of POST /chatbot.
type ChatRequest struct {
	Message string `json:"message"`
}

// HandleChatbot answers a single chatbot question.
func (c *Controller) HandleChatbot(ctx echo.Context) error {
	var req ChatRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid chatbot payload", http.StatusBadRequest)
	}

	if strings.TrimSpace(req.Message) == "" {
		return c.HandleError(ctx, errors.ValidationError("empty message"),
			"message is required", http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"response": c.Chatbot.Reply(req.Message),
	})
}

// HandleChatSocket upgrades to a websocket and answers each text frame with
// the chatbot engine. The connection closes when the client disconnects or a
// read fails.
func (c *Controller) HandleChatSocket(ctx echo.Context) error {
	conn, err := c.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return c.HandleError(ctx, err, "Websocket upgrade failed", http.StatusBadRequest)
	}
	defer conn.Close()

	remote := ctx.RealIP()
	c.logger.Info("chat websocket connected", "ip", remote)

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("chat websocket read failed", "ip", remote, "error", err)
			}
			return nil
		}
		if messageType != websocket.TextMessage {
			continue
		}

		reply := c.Chatbot.Reply(string(payload))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
			c.logger.Warn("chat websocket write failed", "ip", remote, "error", err)
			return nil
		}
	}
}

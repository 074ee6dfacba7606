package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/PleasantH/NutriPal-Chatbot/services"
)

type ChatController struct {
	Chat *services.ChatService
}

func NewChatController(chat *services.ChatService) *ChatController {
	return &ChatController{Chat: chat}
}

// SendMessage streams the assistant reply as server-sent events:
// "chunk" events while the model talks, then a terminal "done" (or
// "error") event carrying the full reply.
func (cc *ChatController) SendMessage(c *gin.Context) {
	var body struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sid := body.SessionID
	if sid == "" {
		sid = c.GetString("sessionID")
	}
	sess := cc.Chat.Session(sid)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("X-Session-ID", sess.ID)

	type result struct {
		reply string
		err   error
	}
	ctx := c.Request.Context()
	chunks := make(chan string, 16)
	done := make(chan result, 1)
	go func() {
		reply, err := cc.Chat.Send(ctx, sess.ID, body.Message, func(ch string) {
			select {
			case chunks <- ch:
			case <-ctx.Done():
			}
		})
		close(chunks)
		done <- result{reply, err}
	}()

	for {
		select {
		case ch, ok := <-chunks:
			if !ok {
				res := <-done
				if res.err != nil {
					// the error text is also the recorded assistant turn
					c.SSEvent("error", res.reply)
				} else {
					c.SSEvent("done", res.reply)
				}
				c.Writer.Flush()
				return
			}
			c.SSEvent("chunk", ch)
			c.Writer.Flush()
		case <-ctx.Done():
			return
		}
	}
}

func (cc *ChatController) History(c *gin.Context) {
	id := c.Param("sessionID")
	messages, ok := cc.Chat.History(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": id, "messages": messages})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind a proxy if needed
}

// ChatWS is the websocket variant of SendMessage: the client sends
// {"message": ...} frames; each reply streams back as "chunk" frames
// followed by "done" (or "error") with the full text.
func (cc *ChatController) ChatWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sess := cc.Chat.Session(c.GetString("sessionID"))

	for {
		var msg struct {
			Message string `json:"message"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			return // client closed or bad frame
		}
		if strings.TrimSpace(msg.Message) == "" {
			_ = conn.WriteJSON(gin.H{"type": "error", "error": "empty message"})
			continue
		}

		reply, err := cc.Chat.Send(c.Request.Context(), sess.ID, msg.Message, func(ch string) {
			_ = conn.WriteJSON(gin.H{"type": "chunk", "text": ch})
		})
		if err != nil {
			_ = conn.WriteJSON(gin.H{"type": "error", "error": reply, "session_id": sess.ID})
			continue
		}
		_ = conn.WriteJSON(gin.H{"type": "done", "reply": reply, "session_id": sess.ID})
	}
}

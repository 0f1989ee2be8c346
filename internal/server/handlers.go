package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/glasspane-dev/glasspane/internal/domain/values"
	"github.com/glasspane-dev/glasspane/internal/preview"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Preview documents run in sandboxed frames with an opaque
		// origin, so origin checks cannot identify them.
		return true
	},
	ReadBufferSize:  64 * 1024,
	WriteBufferSize: 64 * 1024,
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRender(c *gin.Context) {
	var req preview.Request
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := s.renderer.Render(req)
	if err != nil {
		slog.Warn("Render rejected", "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	s.store.Put(result.ID, result.Document)
	slog.Info("Rendered document",
		"renderID", result.ID,
		"entry", result.EntryPath,
		"stubbed", len(result.Stubbed))

	c.JSON(http.StatusOK, gin.H{
		"result":      result,
		"preview_url": "/preview/" + result.ID.String(),
	})
}

func (s *Server) handlePreview(c *gin.Context) {
	id, err := values.ParseRenderID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid render ID"})
		return
	}

	doc, ok := s.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Render not found or expired"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

// handleEvents upgrades the connection and relays preview events. The
// peer sends the same JSON the sandbox posts to its parent; every other
// connected peer receives it.
func (s *Server) handleEvents(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Failed to upgrade the websocket", "error", err)
		return
	}
	defer ws.Close()

	clientID := uuid.New().String()

	// The hello must go out before the hub can see this connection:
	// gorilla/websocket allows only one concurrent writer, and a broadcast
	// from another client's read loop would race this write.
	if err := ws.WriteJSON(gin.H{"action": "subscribed", "clientId": clientID}); err != nil {
		return
	}

	s.events.add(clientID, ws)
	defer s.events.remove(clientID)
	slog.Info("Event client connected", "clientID", clientID)

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			slog.Info("Event client disconnected", "clientID", clientID, "error", err.Error())
			return
		}

		ev, err := preview.ParseEvent(data)
		if err != nil {
			slog.Warn("Dropping malformed preview event", "clientID", clientID, "error", err)
			continue
		}

		switch ev.Type {
		case preview.EventError:
			slog.Warn("Preview reported an error",
				"message", ev.Error.Message,
				"source", ev.Error.Source,
				"line", ev.Error.Line)
		case preview.EventNavigation:
			slog.Info("Preview navigated", "path", ev.Path)
		}

		s.events.broadcast(clientID, ev)
	}
}

package stream

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/ashishpawar00/KeywordResearchTool/internal/domain/models"
	applogger "github.com/ashishpawar00/KeywordResearchTool/pkg/logger"
)

// Hub broadcasts fetch events to connected websocket clients so a dashboard
// can watch analyses complete live.
type Hub struct {
	logger   *applogger.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	// Serializes Broadcast calls. gorilla/websocket allows at most one
	// concurrent writer per connection, and the advisory rate gate means
	// overlapping requests can broadcast at the same time.
	writeMu sync.Mutex
}

func NewHub(l *applogger.Logger) *Hub {
	return &Hub{
		logger: l,
		upgrader: websocket.Upgrader{
			// Browser clients post the form from the same origin; the page
			// is unauthenticated so cross-origin reads leak nothing.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Serve upgrades the request and keeps the connection registered until the
// peer goes away.
func (h *Hub) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("ws client connected", applogger.Int("clients", n))

	// Drain reads so close frames are processed; the stream is one-way.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return nil
}

// Broadcast sends the event to every connected client, dropping clients
// whose writes fail.
func (h *Hub) Broadcast(ev *models.FetchEvent) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	for _, conn := range conns {
		if err := conn.WriteJSON(ev); err != nil {
			h.logger.Debug("ws write failed, dropping client", applogger.Error(err))
			h.drop(conn)
		}
	}
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
	}
	h.clients = make(map[*websocket.Conn]struct{})
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

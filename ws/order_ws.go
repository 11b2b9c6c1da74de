package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"lattelane/services"
)

// OrderHub fans order lifecycle events out to connected staff clients
// (the kitchen display). Customers poll the REST API instead.
type OrderHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan services.OrderEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
	log        *zap.Logger
}

func NewOrderHub(log *zap.Logger) *OrderHub {
	return &OrderHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan services.OrderEvent, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		log:        log,
	}
}

// PublishOrderEvent implements services.OrderEventPublisher. Drops the
// event when the hub's queue is full rather than blocking a webhook.
func (h *OrderHub) PublishOrderEvent(evt services.OrderEvent) {
	select {
	case h.broadcast <- evt:
	default:
		h.log.Warn("order feed queue full, event dropped",
			zap.String("orderNumber", evt.OrderNumber))
	}
}

func (h *OrderHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case evt := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(evt); err != nil {
					h.log.Warn("order feed write failed", zap.Error(err))
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// auth happens in the middleware chain before the upgrade
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve upgrades the connection and keeps it registered until the
// client goes away. Inbound messages are discarded; the feed is
// one-way.
func (h *OrderHub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("order feed upgrade failed", zap.Error(err))
		return
	}
	h.register <- conn

	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

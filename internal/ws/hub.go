package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventType string

const (
	EventSaleCommitted EventType = "sale_committed"
	EventSaleVoided    EventType = "sale_voided"
	EventSaleRestored  EventType = "sale_restored"
	EventStockChanged  EventType = "stock_changed"
)

// StockChange reports a product's new quantity-on-hand after a commit,
// void, restore or catalog edit.
type StockChange struct {
	ProductID uuid.UUID `json:"product_id"`
	Stock     int       `json:"stock"`
}

// Event is the payload broadcast to connected POS terminals.
type Event struct {
	Type    EventType     `json:"type"`
	SaleID  *uuid.UUID    `json:"sale_id,omitempty"`
	Stock   []StockChange `json:"stock,omitempty"`
	Message string        `json:"message,omitempty"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
		logger:     logger,
	}
}

// Publish marshals the event and hands it to the broadcast loop without
// blocking the caller's request.
func (h *Hub) Publish(event Event) {
	go func() {
		msg, err := json.Marshal(event)
		if err != nil {
			h.logger.Error("marshal ws event", zap.Error(err))
			return
		}
		h.Broadcast <- msg
	}()
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.logger.Info("ws client connected", zap.Int("clients", len(h.Clients)))

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Event is the broadcast payload shape shared by all services: stock
// updates, ledger appends and user presence all go out in this envelope so
// front-ends switch on Type/Action.
type Event struct {
	Type    string                 `json:"type"`
	Action  string                 `json:"action,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
	User    EventUser              `json:"user,omitempty"`
	Message string                 `json:"message,omitempty"`
}

type EventUser struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

// BroadcastEvent marshals and queues an event without blocking the caller's
// request path.
func (h *Hub) BroadcastEvent(ev Event) {
	go func() {
		msg, err := json.Marshal(ev)
		if err != nil {
			log.Printf("ws: failed to marshal event: %v", err)
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
			log.Println("New WS client connected")

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

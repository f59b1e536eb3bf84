package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Server message types
const (
	MsgSnapshot    MessageType = "snapshot"
	MsgTableClosed MessageType = "table_closed"
	MsgError       MessageType = "error"
)

// Host message types
const (
	MsgCommand MessageType = "command"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Hub manages WebSocket connections for tables
type Hub struct {
	// table code -> connections
	conns map[string]map[*Connection]bool

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	TableCode string
	HostID    string // Empty for viewers
	IsHost    bool
	Send      chan []byte
	Hub       *Hub

	registered chan struct{}

	mu     sync.Mutex
	closed bool
}

// BroadcastMessage is a message to broadcast to every connection of a table.
// Disconnect closes the table's connections once earlier messages are queued.
type BroadcastMessage struct {
	TableCode  string
	Message    *Message
	Disconnect bool
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

// NewConnection creates a connection with a buffered send queue
func NewConnection(hub *Hub, tableCode, hostID string) *Connection {
	return &Connection{
		TableCode: tableCode,
		HostID:    hostID,
		IsHost:    hostID != "",
		Send:      make(chan []byte, 256),
		Hub:       hub,

		registered: make(chan struct{}),
	}
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.TableCode] == nil {
				h.conns[conn.TableCode] = make(map[*Connection]bool)
			}
			h.conns[conn.TableCode][conn] = true
			h.mu.Unlock()
			close(conn.registered)
			if conn.IsHost {
				log.Printf("Host %s connected to table %s", conn.HostID, conn.TableCode)
			} else {
				log.Printf("Viewer connected to table %s", conn.TableCode)
			}

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.conns[conn.TableCode]; ok && conns[conn] {
				delete(conns, conn)
				if len(conns) == 0 {
					delete(h.conns, conn.TableCode)
				}
				conn.close()
				log.Printf("Connection left table %s", conn.TableCode)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			if msg.Disconnect {
				h.mu.Lock()
				for conn := range h.conns[msg.TableCode] {
					conn.close()
				}
				delete(h.conns, msg.TableCode)
				h.mu.Unlock()
				log.Printf("Disconnected all clients of table %s", msg.TableCode)
				continue
			}

			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.TableCode] {
				// Drop message if buffer full
				conn.trySend(data)
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection. Broadcasts queued after it returns reach conn.
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
	<-conn.registered
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Count returns the number of clients connected to a table
func (h *Hub) Count(tableCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[tableCode])
}

// BroadcastToTable sends a message to every client of a table (implements service.Broadcaster)
func (h *Hub) BroadcastToTable(tableCode string, msgType string, payload interface{}) {
	h.broadcast <- &BroadcastMessage{
		TableCode: tableCode,
		Message:   newMessage(MessageType(msgType), payload),
	}
}

// DisconnectTable closes every connection of a table (implements service.Broadcaster)
func (h *Hub) DisconnectTable(tableCode string) {
	h.broadcast <- &BroadcastMessage{TableCode: tableCode, Disconnect: true}
}

// SendTo queues a message for a single connection
func (c *Connection) SendTo(msgType MessageType, payload interface{}) bool {
	data, _ := json.Marshal(newMessage(msgType, payload))
	return c.trySend(data)
}

func (c *Connection) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

func (c *Connection) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

func newMessage(msgType MessageType, payload interface{}) *Message {
	msg := &Message{Type: msgType}
	if payload != nil {
		msg.Payload, _ = json.Marshal(payload)
	}
	return msg
}

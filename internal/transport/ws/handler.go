package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"pokerclock/internal/model"
	"pokerclock/internal/service"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	commandTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler handles WebSocket connections
type Handler struct {
	hub      *Hub
	authSvc  *service.AuthService
	tableSvc *service.TableService
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, authSvc *service.AuthService, tableSvc *service.TableService) *Handler {
	return &Handler{
		hub:      hub,
		authSvc:  authSvc,
		tableSvc: tableSvc,
	}
}

// ViewerWS handles GET /v1/ws/tables/{code}
func (h *Handler) ViewerWS(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	state, err := h.tableSvc.Get(r.Context(), code)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	conn := NewConnection(h.hub, code, "")
	h.start(wsConn, conn, state)
}

// HostWS handles GET /v1/ws/tables/{code}/host
func (h *Handler) HostWS(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	token := r.URL.Query().Get("token")

	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.authSvc.ValidateHostToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	state, err := h.tableSvc.Get(r.Context(), code)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	if state.Table.HostID != claims.HostID {
		http.Error(w, "not the host of this table", http.StatusForbidden)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	conn := NewConnection(h.hub, code, claims.HostID)
	h.start(wsConn, conn, state)
}

// start joins the client to the table's broadcasts, then queues the current
// clock, so no change made in between is lost. Clients of a closed table get
// the final clock and are sent away.
func (h *Handler) start(wsConn *websocket.Conn, conn *Connection, state *service.TableState) {
	if state.Table.Status != model.TableClosed {
		h.hub.Register(conn)

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		fresh, err := h.tableSvc.Get(ctx, conn.TableCode)
		cancel()
		if err != nil {
			log.Printf("Table %s lookup failed after register: %v", conn.TableCode, err)
		} else {
			state = fresh
		}
	}

	if state.Snapshot != nil {
		conn.SendTo(MsgSnapshot, state.Snapshot)
	}
	if state.Table.Status == model.TableClosed {
		conn.SendTo(MsgTableClosed, state.Snapshot)
		h.hub.Unregister(conn)
		conn.close()
		go h.writePump(wsConn, conn)
		return
	}

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		// Viewers are read only; their frames just keep the connection alive
		if conn.IsHost {
			h.handleHostMessage(conn, data)
		}
	}
}

func (h *Handler) handleHostMessage(conn *Connection, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		conn.SendTo(MsgError, map[string]string{"error": "invalid message"})
		return
	}
	if msg.Type != MsgCommand {
		conn.SendTo(MsgError, map[string]string{"error": "unsupported message type " + string(msg.Type)})
		return
	}

	var cmd model.Command
	if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
		conn.SendTo(MsgError, map[string]string{"error": "invalid command"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	// The resulting snapshot reaches this client through the table broadcast
	if _, err := h.tableSvc.Execute(ctx, conn.TableCode, conn.HostID, cmd); err != nil {
		conn.SendTo(MsgError, map[string]string{"error": err.Error()})
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrTableNotFound) {
		http.Error(w, "table not found", http.StatusNotFound)
		return
	}
	log.Printf("Table lookup failed: %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

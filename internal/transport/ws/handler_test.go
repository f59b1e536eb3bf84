package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"pokerclock/internal/cache"
	"pokerclock/internal/game"
	"pokerclock/internal/model"
	"pokerclock/internal/repository/repotest"
	"pokerclock/internal/service"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

type wsFixture struct {
	server   *httptest.Server
	hub      *Hub
	handler  *Handler
	tableSvc *service.TableService
	token    string
	code     string
}

func newWSFixture(t *testing.T) *wsFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	authSvc := service.NewAuthService("admin", "secret", "key", 0)
	login, err := authSvc.Login("admin", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	structures := repotest.NewStructureRepo()
	id, _ := structures.Create(context.Background(), &model.BlindStructure{
		HostID: login.HostID,
		Title:  "Turbo",
		Levels: []model.BlindLevel{{Minutes: 1, SmallBlind: 1, BigBlind: 2}, {Minutes: 1, SmallBlind: 2, BigBlind: 4}},
	})

	hub := NewHub()
	tableSvc := service.NewTableService(structures, repotest.NewEventRepo(),
		cache.NewTableCache(rdb), cache.NewSnapshotCache(rdb, time.Hour), 10*time.Millisecond)
	tableSvc.SetBroadcaster(hub)

	state, err := tableSvc.OpenTable(context.Background(), login.HostID, id, "")
	if err != nil {
		t.Fatalf("open table: %v", err)
	}

	h := NewHandler(hub, authSvc, tableSvc)
	r := mux.NewRouter()
	r.HandleFunc("/v1/ws/tables/{code}", h.ViewerWS)
	r.HandleFunc("/v1/ws/tables/{code}/host", h.HostWS)
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		tableSvc.Shutdown(context.Background())
		srv.Close()
	})

	return &wsFixture{server: srv, hub: hub, handler: h, tableSvc: tableSvc, token: login.Token, code: state.Table.Code}
}

func (f *wsFixture) url(path string) string {
	return "ws" + strings.TrimPrefix(f.server.URL, "http") + path
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads frames until match accepts one.
func readUntil(t *testing.T, conn *websocket.Conn, match func(Message) bool) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if match(msg) {
			return msg
		}
	}
}

func snapshotOf(t *testing.T, msg Message) game.Snapshot {
	t.Helper()
	var snap game.Snapshot
	if err := json.Unmarshal(msg.Payload, &snap); err != nil {
		t.Fatalf("bad snapshot: %v", err)
	}
	return snap
}

func TestViewerGetsSnapshotThenUpdates(t *testing.T) {
	f := newWSFixture(t)

	viewer := dial(t, f.url("/v1/ws/tables/"+f.code))
	first := readUntil(t, viewer, func(m Message) bool { return m.Type == MsgSnapshot })
	if snap := snapshotOf(t, first); snap.Running || len(snap.Blinds) != 2 {
		t.Fatalf("expected paused two level clock, got %+v", snap)
	}

	host := dial(t, f.url("/v1/ws/tables/"+f.code+"/host?token="+f.token))
	if err := host.WriteJSON(map[string]interface{}{
		"type":    "command",
		"payload": model.Command{Action: model.ActionStart},
	}); err != nil {
		t.Fatalf("write command: %v", err)
	}

	readUntil(t, viewer, func(m Message) bool {
		return m.Type == MsgSnapshot && snapshotOf(t, m).Running
	})
}

func TestViewerStartsFromCurrentClock(t *testing.T) {
	f := newWSFixture(t)

	// A state read before the host paused the clock.
	stale, err := f.tableSvc.Get(context.Background(), f.code)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	stale.Snapshot.Running = true

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wsConn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		f.handler.start(wsConn, NewConnection(f.hub, f.code, ""), stale)
	}))
	t.Cleanup(srv.Close)

	viewer := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http"))
	first := readUntil(t, viewer, func(m Message) bool { return m.Type == MsgSnapshot })
	if snapshotOf(t, first).Running {
		t.Error("expected the first snapshot to be read after joining, got the stale running clock")
	}
	if n := f.hub.Count(f.code); n != 1 {
		t.Errorf("expected viewer registered before its first snapshot, got %d connections", n)
	}
}

func TestHostCommandErrorsGoToHost(t *testing.T) {
	f := newWSFixture(t)

	host := dial(t, f.url("/v1/ws/tables/"+f.code+"/host?token="+f.token))
	host.WriteJSON(map[string]interface{}{
		"type":    "command",
		"payload": map[string]string{"action": "shuffle"},
	})

	msg := readUntil(t, host, func(m Message) bool { return m.Type == MsgError })
	if !strings.Contains(string(msg.Payload), "unknown command action") {
		t.Errorf("unexpected error payload %s", msg.Payload)
	}
}

func TestTableCloseDisconnectsViewers(t *testing.T) {
	f := newWSFixture(t)

	viewer := dial(t, f.url("/v1/ws/tables/"+f.code))
	readUntil(t, viewer, func(m Message) bool { return m.Type == MsgSnapshot })

	f.tableSvc.Shutdown(context.Background())

	readUntil(t, viewer, func(m Message) bool { return m.Type == MsgTableClosed })
	viewer.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		if _, _, err := viewer.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				t.Logf("connection ended with %v", err)
			}
			break
		}
	}
}

func TestWSRejects(t *testing.T) {
	f := newWSFixture(t)

	other := service.NewAuthService("other", "pw", "key", 0)
	foreign, _ := other.Login("other", "pw")

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"unknown table", "/v1/ws/tables/no-such-table", http.StatusNotFound},
		{"missing token", "/v1/ws/tables/" + f.code + "/host", http.StatusUnauthorized},
		{"bad token", "/v1/ws/tables/" + f.code + "/host?token=nope", http.StatusUnauthorized},
		{"not the host", "/v1/ws/tables/" + f.code + "/host?token=" + foreign.Token, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp, err := websocket.DefaultDialer.Dial(f.url(tt.path), nil)
			if err == nil {
				t.Fatal("expected handshake to fail")
			}
			if resp == nil || resp.StatusCode != tt.status {
				t.Errorf("expected status %d, got %v", tt.status, resp)
			}
		})
	}
}

package service

import (
	"sync"
	"testing"
	"time"
)

type broadcast struct {
	code    string
	msgType string
	payload interface{}
}

type fakeBroadcaster struct {
	mu           sync.Mutex
	messages     []broadcast
	disconnected []string
}

func (b *fakeBroadcaster) BroadcastToTable(code string, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, broadcast{code: code, msgType: msgType, payload: payload})
}

func (b *fakeBroadcaster) DisconnectTable(code string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disconnected = append(b.disconnected, code)
}

func (b *fakeBroadcaster) count(msgType string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, m := range b.messages {
		if m.msgType == msgType {
			n++
		}
	}
	return n
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

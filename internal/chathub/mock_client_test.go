package chathub_test

import (
	"sync/atomic"
	"testing"
	"time"

	"anonchat/backend/internal/chathub"
	"anonchat/backend/internal/models"
)

// mockClient is a minimal in-memory implementation of the chathub.Client
// interface. Messages the hub sends land in Recv; Close flips the open flag
// without closing the channel so tests can still drain it.
type mockClient struct {
	anonID string
	Recv   chan models.ServerMessage
	open   atomic.Bool
}

func newMockClient() *mockClient {
	m := &mockClient{
		anonID: chathub.NewAnonID(),
		Recv:   make(chan models.ServerMessage, 16),
	}
	m.open.Store(true)
	return m
}

func (m *mockClient) GetAnonID() string { return m.anonID }
func (m *mockClient) IsOpen() bool      { return m.open.Load() }

func (m *mockClient) GetSendChannel() chan<- models.ServerMessage { return m.Recv }

func (m *mockClient) Run()   {}
func (m *mockClient) Close() { m.open.Store(false) }

// recvMessage waits for the next message delivered to the client.
func recvMessage(t *testing.T, m *mockClient) models.ServerMessage {
	t.Helper()
	select {
	case msg := <-m.Recv:
		return msg
	case <-time.After(time.Second):
		t.Fatalf("client %s: timed out waiting for message", m.anonID)
		return models.ServerMessage{}
	}
}

// noMessage asserts that nothing is waiting in the client's receive buffer.
func noMessage(t *testing.T, m *mockClient) {
	t.Helper()
	select {
	case msg := <-m.Recv:
		t.Fatalf("client %s: unexpected message %+v", m.anonID, msg)
	default:
	}
}

// countType drains the receive buffer and counts messages of the given type.
func countType(m *mockClient, msgType string) int {
	n := 0
	for {
		select {
		case msg := <-m.Recv:
			if msg.Type == msgType {
				n++
			}
		default:
			return n
		}
	}
}

// poolContains reports whether the pool currently holds an entry for the ID.
func poolContains(m *chathub.MatcherService, anonID string) bool {
	for _, e := range m.Entries {
		if e.AnonID == anonID {
			return true
		}
	}
	return false
}

// registerClient registers a mock client directly on the registry (bypassing
// the hub goroutine) and drains the hello greeting.
func registerClient(t *testing.T, hub *chathub.HubService) (*mockClient, *chathub.Connection) {
	t.Helper()
	client := newMockClient()
	conn := hub.Registry.Register(client)
	hello := recvMessage(t, client)
	if hello.Type != models.TypeHello {
		t.Fatalf("expected hello, got %+v", hello)
	}
	return client, conn
}

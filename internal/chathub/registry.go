package chathub

import (
	"log"

	"github.com/google/uuid"

	"anonchat/backend/internal/models"
)

// Connection — запис реєстру для одного живого з'єднання. Реєстр є єдиним
// власником запису; пул та кімнати тримають лише посилання.
type Connection struct {
	AnonID string
	State  string // models.StateIdle | StateSearching | StateChatting
	Prefs  models.Preferences
	RoomID string
	Client Client
}

// RegistryService tracks every live connection's identity, lifecycle state
// and preferences. All other hub components depend on it.
type RegistryService struct {
	Conns map[string]*Connection
}

func NewRegistryService() *RegistryService {
	return &RegistryService{Conns: make(map[string]*Connection)}
}

// NewAnonID mints a fresh anonymous identifier (UUID, unguessable — never a
// counter). Transports assign it before starting their pumps and before
// handing the client to the hub, so no pump ever reads a half-written ID.
func NewAnonID() string {
	return uuid.NewString()
}

// Register creates the record in state idle with wildcard preferences and
// greets the client with its identifier. The client must already carry the
// anon ID it obtained from NewAnonID.
func (r *RegistryService) Register(c Client) *Connection {
	anonID := c.GetAnonID()

	conn := &Connection{
		AnonID: anonID,
		State:  models.StateIdle,
		Prefs:  models.DefaultPreferences(),
		Client: c,
	}
	r.Conns[anonID] = conn

	trySend(c, models.ServerMessage{Type: models.TypeHello, ID: anonID})
	log.Printf("Client registered: %s", anonID)
	return conn
}

// Lookup returns the record for an anon ID, or false after disconnect or
// before registration.
func (r *RegistryService) Lookup(anonID string) (*Connection, bool) {
	conn, ok := r.Conns[anonID]
	return conn, ok
}

// Unregister removes the record. The caller must already have torn down any
// pool entry and room membership; after this the ID is permanently invalid.
func (r *RegistryService) Unregister(anonID string) {
	delete(r.Conns, anonID)
}

package chathub

import (
	"log"
	"time"

	"github.com/google/uuid"

	"anonchat/backend/internal/models"
)

// Загальний опис партнера, що надсилається з "matched". Жодна реальна
// ідентичність не перетинає межу кімнати.
const partnerName = "Stranger"

// RelayService owns the active rooms: it creates them from matched pairs,
// forwards chat text between members and propagates departures.
type RelayService struct {
	Registry *RegistryService
	Rooms    map[string]*models.ChatRoom
}

func NewRelayService(registry *RegistryService) *RelayService {
	return &RelayService{
		Registry: registry,
		Rooms:    make(map[string]*models.ChatRoom),
	}
}

// CreateRoom allocates a room for a matched pair, moves both connections to
// the chatting state and notifies both sides.
func (r *RelayService) CreateRoom(anonA, anonB string) string {
	roomID := uuid.NewString()
	room := &models.ChatRoom{
		RoomID:    roomID,
		User1ID:   anonA,
		User2ID:   anonB,
		StartedAt: time.Now(),
	}
	r.Rooms[roomID] = room

	connA, okA := r.Registry.Lookup(anonA)
	connB, okB := r.Registry.Lookup(anonB)

	if okA {
		connA.State = models.StateChatting
		connA.RoomID = roomID
	}
	if okB {
		connB.State = models.StateChatting
		connB.RoomID = roomID
	}

	// Кожна сторона бачить бейдж, похідний від заявленого рівня партнера.
	if okA {
		trySend(connA.Client, matchedMessage(roomID, connB))
	}
	if okB {
		trySend(connB.Client, matchedMessage(roomID, connA))
	}

	return roomID
}

func matchedMessage(roomID string, partner *Connection) models.ServerMessage {
	badge := models.PrefAny
	if partner != nil {
		badge = partner.Prefs.Level
	}
	return models.ServerMessage{
		Type:    models.TypeMatched,
		RoomID:  roomID,
		Partner: &models.PartnerInfo{Name: partnerName, Badge: badge},
	}
}

// Relay forwards chat text to the sender's partner. A partner whose transport
// is already closed is treated as having left: the sender is notified and the
// room is torn down instead of relaying. Undelivered text is dropped, never
// queued.
func (r *RelayService) Relay(from *Connection, text string) {
	room, ok := r.Rooms[from.RoomID]
	if from.RoomID == "" || !ok {
		return
	}

	partner, ok := r.Registry.Lookup(room.OtherMember(from.AnonID))
	if !ok {
		// Запис партнера зник — прибираємо кімнату як при виході.
		trySend(from.Client, models.ServerMessage{Type: models.TypePartnerLeft})
		delete(r.Rooms, room.RoomID)
		from.State = models.StateIdle
		from.RoomID = ""
		return
	}

	if !partner.Client.IsOpen() {
		r.LeaveRoom(partner)
		return
	}

	trySend(partner.Client, models.ServerMessage{Type: models.TypeChat, Text: text})
}

// LeaveRoom tears down the connection's room, if any: the other member is
// notified (when still reachable) and reset to idle, the room is deleted and
// the leaving connection is reset to idle. Idempotent — a second call is a
// no-op and emits no duplicate notification.
func (r *RelayService) LeaveRoom(conn *Connection) {
	if conn.RoomID == "" {
		return
	}

	room, ok := r.Rooms[conn.RoomID]
	if !ok {
		conn.State = models.StateIdle
		conn.RoomID = ""
		return
	}

	if other, ok := r.Registry.Lookup(room.OtherMember(conn.AnonID)); ok {
		trySend(other.Client, models.ServerMessage{Type: models.TypePartnerLeft})
		other.State = models.StateIdle
		other.RoomID = ""
	}

	delete(r.Rooms, room.RoomID)
	conn.State = models.StateIdle
	conn.RoomID = ""
	log.Printf("Room %s closed", room.RoomID)
}

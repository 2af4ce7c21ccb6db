package models

import "time"

// ChatRoom represents a 1-on-1 chat session between two matched connections.
// Rooms live only in the hub's memory and always hold exactly two members
// until the room is destroyed.
type ChatRoom struct {
	// RoomID is the unique identifier for the chat room (UUID).
	RoomID string
	// User1ID is the anonymous ID of the first member.
	User1ID string
	// User2ID is the anonymous ID of the second member.
	User2ID string
	// StartedAt is the timestamp when the room was created.
	StartedAt time.Time
}

// OtherMember returns the partner's anon ID for a given member, or "" if the
// given ID is not a member of the room.
func (r *ChatRoom) OtherMember(anonID string) string {
	switch anonID {
	case r.User1ID:
		return r.User2ID
	case r.User2ID:
		return r.User1ID
	}
	return ""
}

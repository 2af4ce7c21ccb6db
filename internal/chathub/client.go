package chathub

import "anonchat/backend/internal/models"

// Client is the interface for any type of connection (e.g., WebSocket).
// It abstracts the underlying transport, allowing the hub to manage
// different client types uniformly.
type Client interface {
	// GetAnonID returns the anonymous identifier the transport assigned
	// from NewAnonID before the client was handed to the hub.
	GetAnonID() string

	// GetSendChannel returns the channel to which the hub sends messages
	// intended for this specific client. It is a send-only channel.
	GetSendChannel() chan<- models.ServerMessage

	// IsOpen reports whether the underlying transport is still usable.
	// The pool purges entries whose client is closed, and the relay treats
	// a closed partner as a departure.
	IsOpen() bool

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's send channel and marks it closed.
	Close()
}

// trySend доставляє повідомлення клієнту, не блокуючи координатор.
// Якщо транспорт закрито або буфер повний — повідомлення скидається.
func trySend(c Client, msg models.ServerMessage) bool {
	if c == nil || !c.IsOpen() {
		return false
	}
	select {
	case c.GetSendChannel() <- msg:
		return true
	default:
		return false
	}
}

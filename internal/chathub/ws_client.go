package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"anonchat/backend/internal/config"
	"anonchat/backend/internal/models"
)

// WebSocketClient реалізує інтерфейс chathub.Client поверх gorilla/websocket.
type WebSocketClient struct {
	AnonID string
	Conn   *websocket.Conn
	Hub    *HubService
	Send   chan models.ServerMessage

	closed    atomic.Bool
	closeOnce sync.Once
}

// --- Реалізація методів інтерфейсу ---

func (c *WebSocketClient) GetAnonID() string { return c.AnonID }
func (c *WebSocketClient) IsOpen() bool      { return !c.closed.Load() }

func (c *WebSocketClient) GetSendChannel() chan<- models.ServerMessage { return c.Send }

// Run запускає 'pumps' для WebSocket
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close позначає клієнта закритим і закриває Send канал (що зупинить writePump).
func (c *WebSocketClient) Close() {
	c.closed.Store(true)
	c.closeOnce.Do(func() { close(c.Send) })
}

// readPump читає кадри з WebSocket, декодує їх і передає у хаб.
// Невалідний JSON мовчки пропускається — з'єднання не страждає.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.closed.Store(true)
		c.Hub.UnregisterCh <- c // Надсилаємо команду на Unregister
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var msg models.ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error decoding JSON from client %s: %v", c.AnonID, err)
			continue // Пропускаємо невірне повідомлення
		}

		// SenderID завжди проставляється тут, ніколи не береться з кадру.
		msg.SenderID = c.AnonID

		c.Hub.IncomingCh <- msg
	}
}

// writePump читає повідомлення з каналу Send і записує їх у WebSocket.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(config.PingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				// Канал закрито хабом, закриваємо з'єднання WS
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			dataToWrite, err := json.Marshal(message)
			if err != nil {
				log.Printf("Error encoding JSON for client %s: %v", c.AnonID, err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(dataToWrite)

			// Перевіряємо, чи є ще повідомлення у каналі (для ефективності)
			n := len(c.Send)
			for i := 0; i < n; i++ {
				nextMsg := <-c.Send
				extraData, _ := json.Marshal(nextMsg)
				w.Write(extraData)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			// Надсилаємо Ping для підтримки з'єднання активним
			c.Conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

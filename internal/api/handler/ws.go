package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"anonchat/backend/internal/chathub"
	"anonchat/backend/internal/config"
	"anonchat/backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Дозволяє з'єднання з будь-якого домену. У продакшені налаштувати!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket оновлює HTTP-з'єднання до WebSocket. Анонімний ID береться
// з генератора реєстру — жодної автентифікації немає і не потрібно.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	// ID присвоюється до запуску pumps і до передачі в хаб.
	client := &chathub.WebSocketClient{
		AnonID: chathub.NewAnonID(),
		Hub:    h.Hub,
		Conn:   conn,
		Send:   make(chan models.ServerMessage, config.SendBufferSize),
	}

	// Реєстрація клієнта в хабі (хаб надішле hello з присвоєним ID)
	h.Hub.RegisterCh <- client

	client.Run()
}

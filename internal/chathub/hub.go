package chathub

import (
	"log"
	"time"

	"anonchat/backend/internal/config"
	"anonchat/backend/internal/models"
)

// HubService — головний координатор. Реєстр, черга підбору та кімнати
// змінюються лише з горутини Run: одна подія обробляється повністю до
// наступної, тому жодних блокувань для цих структур не потрібно.
type HubService struct {
	Registry *RegistryService
	Matcher  *MatcherService
	Relay    *RelayService

	// Channels
	IncomingCh   chan models.ClientMessage
	RegisterCh   chan Client
	UnregisterCh chan Client

	inspectCh chan func()
}

// NewHubService wires the registry, relay and matcher together.
func NewHubService() *HubService {
	registry := NewRegistryService()
	relay := NewRelayService(registry)
	matcher := NewMatcherService(registry, relay)

	return &HubService{
		Registry:     registry,
		Matcher:      matcher,
		Relay:        relay,
		IncomingCh:   make(chan models.ClientMessage),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		inspectCh:    make(chan func()),
	}
}

// Inspect виконує fn на горутині координатора і чекає на завершення.
// Це єдиний спосіб узгоджено прочитати стан ззовні: fn виконується як
// звичайний дискретний крок циклу Run, між двома подіями.
func (h *HubService) Inspect(fn func()) {
	done := make(chan struct{})
	h.inspectCh <- func() {
		fn()
		close(done)
	}
	<-done
}

// Run запускає головну горутину координатора. Періодичний тік підбору — це
// звичайна гілка того ж select, тож він ніколи не перекривається з обробкою
// повідомлення.
func (h *HubService) Run() {
	log.Println("Hub started.")

	ticker := time.NewTicker(config.MatchInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.RegisterCh:
			h.Registry.Register(client)

		case client := <-h.UnregisterCh:
			h.handleDisconnect(client)

		case msg := <-h.IncomingCh:
			h.handleMessage(msg)

		case fn := <-h.inspectCh:
			fn()

		case <-ticker.C:
			h.Matcher.AttemptMatch()
		}
	}
}

// handleMessage — протокольний автомат: idle → searching → chatting → idle.
// Нерозпізнані типи мовчки ігноруються, без відповіді відправнику.
func (h *HubService) handleMessage(msg models.ClientMessage) {
	conn, ok := h.Registry.Lookup(msg.SenderID)
	if !ok {
		return
	}

	switch msg.Type {
	case models.TypeFind:
		h.handleFind(conn, msg.Prefs)

	case models.TypeCancel:
		// Поза станом searching — no-op, але підтвердження все одно йде.
		if conn.State == models.StateSearching {
			h.Matcher.Dequeue(conn.AnonID)
			conn.State = models.StateIdle
		}
		trySend(conn.Client, models.ServerMessage{Type: models.TypeCanceled})

	case models.TypeChat:
		if conn.State == models.StateChatting && conn.RoomID != "" {
			h.Relay.Relay(conn, msg.Text)
		}

	case models.TypeLeave:
		h.Relay.LeaveRoom(conn)
		h.Matcher.Dequeue(conn.AnonID)
		conn.State = models.StateIdle
		trySend(conn.Client, models.ServerMessage{Type: models.TypeLeft})
	}
}

// handleFind переводить з'єднання у пошук з будь-якого стану. Спершу вихід із
// кімнати, потім зняття зі старої черги — застаріла кімната ніколи не
// переживає повторний вхід у чергу.
func (h *HubService) handleFind(conn *Connection, prefs *models.Preferences) {
	h.Relay.LeaveRoom(conn)
	h.Matcher.Dequeue(conn.AnonID)

	conn.Prefs = prefs.Normalized()
	conn.State = models.StateSearching

	trySend(conn.Client, models.ServerMessage{Type: models.TypeSearching})

	// Enqueue одразу запускає спробу підбору.
	h.Matcher.Enqueue(conn, conn.Prefs)
}

// handleDisconnect — єдине місце безумовного прибирання: черга, кімната,
// запис реєстру, канал відправки.
func (h *HubService) handleDisconnect(client Client) {
	anonID := client.GetAnonID()
	if conn, ok := h.Registry.Lookup(anonID); ok {
		h.Matcher.Dequeue(anonID)
		h.Relay.LeaveRoom(conn)
		h.Registry.Unregister(anonID)
		log.Printf("Client unregistered: %s", anonID)
	}
	client.Close()
}

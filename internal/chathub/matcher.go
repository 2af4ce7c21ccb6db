package chathub

import (
	"log"
	"time"

	"anonchat/backend/internal/config"
	"anonchat/backend/internal/models"
)

// PoolEntry — запит з'єднання на підбір пари. Вподобання — це знімок на
// момент постановки в чергу.
type PoolEntry struct {
	AnonID     string
	Prefs      models.Preferences
	EnqueuedAt time.Time
}

// MatcherService відповідає за алгоритм пошуку співрозмовників.
//
// Черга — слайс у порядку постановки: вибір пари детермінований, перша
// знайдена пара виграє при рівних оцінках.
type MatcherService struct {
	Registry *RegistryService
	Relay    *RelayService

	Entries []*PoolEntry
}

func NewMatcherService(registry *RegistryService, relay *RelayService) *MatcherService {
	return &MatcherService{Registry: registry, Relay: relay}
}

// Score computes the pairing score for two waiting entries at a given moment.
// Preference alignment only raises priority — no pair is ever incompatible,
// and the bounded wait bonus eventually dominates any mismatch.
func Score(a, b *PoolEntry, now time.Time) int {
	base := 0
	if a.Prefs.Gender == b.Prefs.Gender && a.Prefs.Gender != models.PrefAny {
		base += config.GenderMatchScore
	}
	if a.Prefs.Level == b.Prefs.Level && a.Prefs.Level != models.PrefAny {
		base += config.LevelMatchScore
	}
	if a.Prefs.Gender == models.PrefAny || b.Prefs.Gender == models.PrefAny {
		base += config.WildcardScore
	}
	if a.Prefs.Level == models.PrefAny || b.Prefs.Level == models.PrefAny {
		base += config.WildcardScore
	}

	waitSecs := int(now.Sub(a.EnqueuedAt).Seconds()) + int(now.Sub(b.EnqueuedAt).Seconds())
	bonus := waitSecs / config.WaitBonusDivisor
	if bonus > config.WaitBonusCap {
		bonus = config.WaitBonusCap
	}

	return base + bonus
}

// Enqueue додає новий запит у чергу та одразу пробує знайти пару.
// Попередній запис цього з'єднання (якщо був) видаляється: з'єднання має
// щонайбільше один запис у черзі.
func (m *MatcherService) Enqueue(conn *Connection, prefs models.Preferences) {
	m.Dequeue(conn.AnonID)
	m.Entries = append(m.Entries, &PoolEntry{
		AnonID:     conn.AnonID,
		Prefs:      prefs,
		EnqueuedAt: time.Now(),
	})
	log.Printf("New match request added to queue: %s", conn.AnonID)

	m.AttemptMatch()
}

// Dequeue removes the entry for an anon ID if present; no-op otherwise.
func (m *MatcherService) Dequeue(anonID string) {
	for i, e := range m.Entries {
		if e.AnonID == anonID {
			m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
			return
		}
	}
}

// AttemptMatch виконує один прохід підбору: чистить мертві записи, оцінює
// всі пари та створює щонайбільше одну кімнату. Велика черга добирається
// наступним тіком або наступним enqueue.
func (m *MatcherService) AttemptMatch() {
	m.purgeClosed()
	if len(m.Entries) < 2 {
		return
	}

	now := time.Now()
	best := -1
	var bi, bj int
	for i := 0; i < len(m.Entries); i++ {
		for j := i + 1; j < len(m.Entries); j++ {
			if s := Score(m.Entries[i], m.Entries[j], now); s > best {
				best, bi, bj = s, i, j
			}
		}
	}

	a, b := m.Entries[bi], m.Entries[bj]

	// Обидва записи видаляються до створення кімнати: жоден прохід не
	// побачить лише один із них видаленим. Спершу bj, бо bj > bi.
	m.Entries = append(m.Entries[:bj], m.Entries[bj+1:]...)
	m.Entries = append(m.Entries[:bi], m.Entries[bi+1:]...)

	roomID := m.Relay.CreateRoom(a.AnonID, b.AnonID)
	log.Printf("Match found: %s and %s in room %s (score %d)", a.AnonID, b.AnonID, roomID, best)
}

// purgeClosed викидає записи, чиє з'єднання вже не живе.
func (m *MatcherService) purgeClosed() {
	kept := m.Entries[:0]
	for _, e := range m.Entries {
		conn, ok := m.Registry.Lookup(e.AnonID)
		if ok && conn.Client != nil && conn.Client.IsOpen() {
			kept = append(kept, e)
		}
	}
	m.Entries = kept
}

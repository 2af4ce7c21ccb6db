package models

// Типи вхідних повідомлень (від клієнта).
const (
	TypeFind   = "find"
	TypeCancel = "cancel"
	TypeChat   = "chat"
	TypeLeave  = "leave"
)

// Типи вихідних повідомлень (до клієнта).
const (
	TypeHello       = "hello"
	TypeSearching   = "searching"
	TypeCanceled    = "canceled"
	TypeMatched     = "matched"
	TypePartnerLeft = "partner_left"
	TypeLeft        = "left"
)

// Стани життєвого циклу з'єднання.
const (
	StateIdle      = "idle"
	StateSearching = "searching"
	StateChatting  = "chatting"
)

// PrefAny — wildcard значення для будь-якого поля вподобань.
const PrefAny = "any"

// ClientMessage is a single inbound frame from a client. SenderID is never
// read from the wire: the read pump stamps it with the connection's anon ID.
type ClientMessage struct {
	SenderID string `json:"-"`

	Type  string       `json:"type"`
	Prefs *Preferences `json:"prefs,omitempty"`
	Text  string       `json:"text,omitempty"`
}

// ServerMessage is a single outbound frame to a client. The Type field is the
// discriminator; all other fields are populated per type and omitted otherwise.
type ServerMessage struct {
	Type    string       `json:"type"`
	ID      string       `json:"id,omitempty"`
	RoomID  string       `json:"roomId,omitempty"`
	Text    string       `json:"text,omitempty"`
	Partner *PartnerInfo `json:"partner,omitempty"`
}

// PartnerInfo is the generic descriptor sent with "matched". It carries no
// real identity: both sides stay anonymous to each other.
type PartnerInfo struct {
	Name  string `json:"name"`
	Badge string `json:"badge"`
}

// Preferences — вподобання пошуку співрозмовника.
type Preferences struct {
	Gender string `json:"gender,omitempty"`
	Level  string `json:"level,omitempty"`
}

var validGenders = map[string]bool{"male": true, "female": true, PrefAny: true}

var validLevels = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"advanced":     true,
	PrefAny:        true,
}

// DefaultPreferences returns the wildcard pair assigned on registration.
func DefaultPreferences() Preferences {
	return Preferences{Gender: PrefAny, Level: PrefAny}
}

// Normalized returns a copy with missing or unknown values replaced by "any".
// A nil receiver yields the defaults, so a "find" without prefs is legal.
func (p *Preferences) Normalized() Preferences {
	out := DefaultPreferences()
	if p == nil {
		return out
	}
	if validGenders[p.Gender] {
		out.Gender = p.Gender
	}
	if validLevels[p.Level] {
		out.Level = p.Level
	}
	return out
}

package config

import (
	"os"
	"time"
)

const (
	// Matchmaking
	MatchInterval    = 500 * time.Millisecond
	GenderMatchScore = 2
	LevelMatchScore  = 4
	WildcardScore    = 1
	WaitBonusDivisor = 6
	WaitBonusCap     = 10

	// WebSocket pumps
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 512

	// Розмір буфера вихідного каналу клієнта. Повні буфери скидаються,
	// а не блокують координатор.
	SendBufferSize = 256

	DefaultPort = "8080"
)

// Port resolves the listen port from the PORT environment variable.
func Port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return DefaultPort
}

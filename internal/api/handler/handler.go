package handler

import "anonchat/backend/internal/chathub"

// Handler містить посилання на Hub
type Handler struct {
	Hub *chathub.HubService
}

func NewHandler(hub *chathub.HubService) *Handler {
	return &Handler{Hub: hub}
}

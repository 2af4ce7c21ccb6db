package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Healthz — простий plaintext-відповідач для перевірки живучості.
func (h *Handler) Healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/adapter/http/helper"
)

type HealthHandler struct {
	ping func(context.Context) error
}

func NewHealthHandler(ping func(context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Check(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			helper.SendError(c, http.StatusInternalServerError, "UNHEALTHY", "Database unreachable")
			return
		}
	}

	helper.SendSuccess(c, http.StatusOK, gin.H{"status": "ok"})
}

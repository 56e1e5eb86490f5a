package handler

import (
	"time"

	"marketplace-sync/internal/adapter/http/dto"
	"marketplace-sync/internal/core/ports"
	"marketplace-sync/pkg/response"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the active account session.
type SessionHandler struct {
	svc ports.MarketplaceService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc ports.MarketplaceService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Get handles GET /api/v1/session.
func (h *SessionHandler) Get(c *gin.Context) {
	response.OK(c, h.describe())
}

// Refresh handles POST /api/v1/session/refresh.
func (h *SessionHandler) Refresh(c *gin.Context) {
	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, h.describe())
}

func (h *SessionHandler) describe() dto.SessionResponse {
	info := h.svc.Session()
	resp := dto.SessionResponse{
		Connected:   info.Connected,
		State:       string(h.svc.State()),
		Status:      h.svc.LastStatus(),
		CatalogSize: h.svc.Catalog().Len(),
	}
	if info.Connected {
		resp.ID = info.ID.String()
		resp.Account = info.Account.Hex()
		resp.EstablishedAt = info.EstablishedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

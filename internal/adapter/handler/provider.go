package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dialogueworks/dialogue-facilitator/pkg/ai"
)

// Provider handles provider health HTTP requests
type Provider struct {
	providers []ai.Provider
	logger    *zap.Logger
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(logger *zap.Logger, providers ...ai.Provider) *Provider {
	return &Provider{providers: providers, logger: logger}
}

// Status handles GET /providers/status. Probing never fails: an
// unconfigured provider simply reports unavailable.
func (h *Provider) Status(c echo.Context) error {
	ctx := c.Request().Context()

	statuses := make([]ai.Status, 0, len(h.providers))
	anyAvailable := false
	for _, p := range h.providers {
		status := p.CheckStatus(ctx)
		statuses = append(statuses, status)
		if status.IsAvailable {
			anyAvailable = true
		}
	}

	return HandleSuccess(h.logger, c, http.StatusOK, map[string]interface{}{
		"any_available": anyAvailable,
		"providers":     statuses,
	})
}

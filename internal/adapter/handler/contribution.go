package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dialogueworks/dialogue-facilitator/errors"
	"github.com/dialogueworks/dialogue-facilitator/internal/adapter/dto/dialogue"
	"github.com/dialogueworks/dialogue-facilitator/internal/adapter/presenter"
	"github.com/dialogueworks/dialogue-facilitator/internal/domain/entities"
	"github.com/dialogueworks/dialogue-facilitator/internal/usecase/orchestrator"
)

// Contribution handles participant contribution HTTP requests
type Contribution struct {
	orchestrator *orchestrator.Orchestrator
	logger       *zap.Logger
}

// NewContributionHandler creates a new contribution handler
func NewContributionHandler(o *orchestrator.Orchestrator, logger *zap.Logger) *Contribution {
	return &Contribution{orchestrator: o, logger: logger}
}

// Process handles POST /contributions. Enhancement failures surface in
// the contribution's error field, never as an HTTP error.
func (h *Contribution) Process(c echo.Context) error {
	var req dialogue.ContributionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	contribution := h.orchestrator.ProcessContribution(
		c.Request().Context(),
		req.ParticipantID,
		req.DisplayName,
		req.Text,
		entities.ContributionMetadata{AudioQuality: req.AudioQuality},
	)

	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToContributionResponse(req.ParticipantID, contribution))
}

// StartSession handles POST /sessions
func (h *Contribution) StartSession(c echo.Context) error {
	var req dialogue.StartSessionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	tracker := h.orchestrator.Tracker(req.ParticipantID, req.DisplayName)
	session := tracker.StartSession(req.Topic, req.RoomID)

	return HandleSuccess(h.logger, c, http.StatusCreated, map[string]interface{}{
		"session_id":     session.ID.String(),
		"participant_id": req.ParticipantID,
		"topic":          session.Topic,
		"room_id":        session.RoomID,
		"started_at":     session.StartedAt,
	})
}

// GetJourney handles GET /participants/:id/journey
func (h *Contribution) GetJourney(c echo.Context) error {
	participantID := c.Param("id")

	journey := h.orchestrator.Journey(participantID)
	if journey == nil {
		return HandleError(h.logger, c, errors.ErrParticipantNotFound(participantID))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToJourneyResponse(participantID, journey))
}

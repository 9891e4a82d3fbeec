package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dialogueworks/dialogue-facilitator/errors"
	"github.com/dialogueworks/dialogue-facilitator/internal/adapter/dto/dialogue"
	"github.com/dialogueworks/dialogue-facilitator/internal/adapter/presenter"
	"github.com/dialogueworks/dialogue-facilitator/internal/usecase/orchestrator"
	"github.com/dialogueworks/dialogue-facilitator/internal/usecase/synthesis"
	"github.com/dialogueworks/dialogue-facilitator/pkg/ai"
)

// Dialogue handles dialogue lifecycle HTTP requests
type Dialogue struct {
	orchestrator *orchestrator.Orchestrator
	logger       *zap.Logger
}

// NewDialogueHandler creates a new dialogue handler
func NewDialogueHandler(o *orchestrator.Orchestrator, logger *zap.Logger) *Dialogue {
	return &Dialogue{orchestrator: o, logger: logger}
}

// Initialize handles POST /dialogues
func (h *Dialogue) Initialize(c echo.Context) error {
	var req dialogue.InitializeDialogueRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	d, err := h.orchestrator.Engine().InitializeDialogue(req.DialogueID, synthesis.InitializeOptions{
		Title:               req.Title,
		Facilitator:         req.Facilitator,
		Stage:               req.Stage,
		Participants:        req.Participants,
		MinTranscriptLength: req.MinTranscriptLength,
		SynthesisInterval:   time.Duration(req.SynthesisIntervalSeconds) * time.Second,
		MaxRoomsPerDialogue: req.MaxRooms,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, req.DialogueID, ""))
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToDialogueResponse(d))
}

// AddRoom handles POST /dialogues/:id/rooms
func (h *Dialogue) AddRoom(c echo.Context) error {
	dialogueID := c.Param("id")

	var req dialogue.AddRoomRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	room, err := h.orchestrator.Engine().AddRoom(dialogueID, req.RoomID, req.ParticipantIDs)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, dialogueID, req.RoomID))
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToRoomResponse(room))
}

// UpdateTranscript handles PUT /dialogues/:id/rooms/:roomId/transcript.
// Unknown ids are reported as updated=false rather than an error; the
// transcript transport retries blindly and must never see a failure.
func (h *Dialogue) UpdateTranscript(c echo.Context) error {
	dialogueID := c.Param("id")
	roomID := c.Param("roomId")

	var req dialogue.UpdateTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	updated := h.orchestrator.Engine().UpdateRoomTranscript(dialogueID, roomID, req.Transcript, req.Speakers)
	return HandleSuccess(h.logger, c, http.StatusOK, dialogue.UpdateTranscriptResponse{Updated: updated})
}

// GenerateSynthesis handles POST /dialogues/:id/synthesis
func (h *Dialogue) GenerateSynthesis(c echo.Context) error {
	dialogueID := c.Param("id")

	var req dialogue.GenerateSynthesisRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	forceRefresh := ai.ParseForceRefresh(req.ForceRefresh)

	result, err := h.orchestrator.Engine().GenerateSynthesis(c.Request().Context(), dialogueID, forceRefresh)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, dialogueID, ""))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToSynthesisResponse(result))
}

// GetSynthesis handles GET /dialogues/:id/synthesis
func (h *Dialogue) GetSynthesis(c echo.Context) error {
	dialogueID := c.Param("id")

	result := h.orchestrator.Engine().GetCurrentSynthesis(dialogueID)
	if result == nil {
		return HandleError(h.logger, c, errors.ErrSynthesisNotReady(dialogueID))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToSynthesisResponse(result))
}

// GetStatus handles GET /dialogues/:id/status
func (h *Dialogue) GetStatus(c echo.Context) error {
	dialogueID := c.Param("id")

	snapshot := h.orchestrator.Snapshot(dialogueID)
	if snapshot == nil {
		return HandleError(h.logger, c, errors.ErrDialogueNotFound(dialogueID))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToStatusResponse(snapshot))
}

// End handles POST /dialogues/:id/end
func (h *Dialogue) End(c echo.Context) error {
	dialogueID := c.Param("id")

	result, err := h.orchestrator.Engine().EndDialogue(c.Request().Context(), dialogueID)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, dialogueID, ""))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToSynthesisResponse(result))
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dialogueworks/dialogue-facilitator/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg                 *config.Config
	dialogueHandler     *Dialogue
	contributionHandler *Contribution
	providerHandler     *Provider
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, dialogueHandler *Dialogue, contributionHandler *Contribution, providerHandler *Provider) *Router {
	return &Router{
		cfg:                 cfg,
		dialogueHandler:     dialogueHandler,
		contributionHandler: contributionHandler,
		providerHandler:     providerHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupDialogueRoutes(v1)
	rt.setupParticipantRoutes(v1)
	rt.setupProviderRoutes(v1)
}

// setupDialogueRoutes configures dialogue lifecycle routes
func (rt *Router) setupDialogueRoutes(g *echo.Group) {
	dialogues := g.Group("/dialogues")

	dialogues.POST("", rt.dialogueHandler.Initialize)
	dialogues.POST("/:id/rooms", rt.dialogueHandler.AddRoom)
	dialogues.PUT("/:id/rooms/:roomId/transcript", rt.dialogueHandler.UpdateTranscript)
	dialogues.POST("/:id/synthesis", rt.dialogueHandler.GenerateSynthesis)
	dialogues.GET("/:id/synthesis", rt.dialogueHandler.GetSynthesis)
	dialogues.GET("/:id/status", rt.dialogueHandler.GetStatus)
	dialogues.POST("/:id/end", rt.dialogueHandler.End)
}

// setupParticipantRoutes configures contribution and journey routes
func (rt *Router) setupParticipantRoutes(g *echo.Group) {
	g.POST("/contributions", rt.contributionHandler.Process)
	g.POST("/sessions", rt.contributionHandler.StartSession)
	g.GET("/participants/:id/journey", rt.contributionHandler.GetJourney)
}

// setupProviderRoutes configures provider health routes
func (rt *Router) setupProviderRoutes(g *echo.Group) {
	g.GET("/providers/status", rt.providerHandler.Status)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}

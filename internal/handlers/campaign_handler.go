package handlers

import (
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CampaignHandler handles HTTP requests for campaigns.
type CampaignHandler struct {
	service *services.CampaignService
	log     *zap.Logger
}

// NewCampaignHandler creates a new CampaignHandler.
func NewCampaignHandler(service *services.CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{service: service, log: log}
}

// RegisterRoutes registers the campaign routes with the Fiber app.
func (h *CampaignHandler) RegisterRoutes(router fiber.Router) {
	campaignRoutes := router.Group("/campaigns")
	campaignRoutes.Get("/", h.HandleList)
	campaignRoutes.Get("/active", h.HandleListActive)
	campaignRoutes.Get("/:id/active", h.HandleIsActive)
}

// HandleList returns every campaign with its effective state.
func (h *CampaignHandler) HandleList(c *fiber.Ctx) error {
	views, err := h.service.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(views)
}

// HandleListActive returns the campaigns live right now.
func (h *CampaignHandler) HandleListActive(c *fiber.Ctx) error {
	views, err := h.service.ListActive(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(views)
}

// HandleIsActive reports whether one campaign is live.
func (h *CampaignHandler) HandleIsActive(c *fiber.Ctx) error {
	view, err := h.service.IsActive(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"id":     view.ID,
		"active": view.Active,
		"phase":  view.Phase,
	})
}

package handlers

import (
	"lapak/internal/middleware"
	"lapak/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReturnHandler handles HTTP requests for returns and exchanges.
type ReturnHandler struct {
	service  *services.ReturnService
	validate *validator.Validate
	log      *zap.Logger
}

// NewReturnHandler creates a new ReturnHandler.
func NewReturnHandler(service *services.ReturnService, log *zap.Logger) *ReturnHandler {
	return &ReturnHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

// Quantity and return type are checked by the return rules so the
// response carries their error codes.
type createReturnRequest struct {
	OrderID     string   `json:"order_id" validate:"required"`
	OrderItemID string   `json:"order_item_id" validate:"required"`
	Reason      string   `json:"reason" validate:"required,max=64"`
	Description string   `json:"description" validate:"max=2000"`
	ReturnType  string   `json:"return_type"`
	Quantity    int      `json:"quantity"`
	Images      []string `json:"images" validate:"max=10,dive,url"`
}

type cancelReturnRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// RegisterRoutes registers the return routes with the Fiber app.
func (h *ReturnHandler) RegisterRoutes(router fiber.Router) {
	returnRoutes := router.Group("/returns")
	returnRoutes.Post("/", h.HandleCreateReturn)
	returnRoutes.Post("/:id/cancel", h.HandleCancelReturn)
	returnRoutes.Post("/:id/complete-exchange", h.HandleCompleteExchange)
}

// HandleCreateReturn opens a return or exchange for an order item.
func (h *ReturnHandler) HandleCreateReturn(c *fiber.Ctx) error {
	var req createReturnRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	ret, err := h.service.CreateReturn(c.UserContext(), middleware.CallerFrom(c), services.CreateReturnInput{
		OrderID:     req.OrderID,
		OrderItemID: req.OrderItemID,
		Reason:      req.Reason,
		Description: req.Description,
		ReturnType:  req.ReturnType,
		Quantity:    req.Quantity,
		Images:      req.Images,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ret)
}

// HandleCancelReturn withdraws a pending return.
func (h *ReturnHandler) HandleCancelReturn(c *fiber.Ctx) error {
	var req cancelReturnRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, h.validate, &req); !ok {
			return err
		}
	}

	ret, err := h.service.CancelReturn(c.UserContext(), middleware.CallerFrom(c), c.Params("id"), req.Reason)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(ret)
}

// HandleCompleteExchange closes an approved exchange.
func (h *ReturnHandler) HandleCompleteExchange(c *fiber.Ctx) error {
	ret, err := h.service.CompleteExchange(c.UserContext(), middleware.CallerFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(ret)
}

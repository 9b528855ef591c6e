package handlers

import (
	"lapak/internal/middleware"
	"lapak/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// VoucherHandler handles HTTP requests for vouchers.
type VoucherHandler struct {
	service  *services.VoucherService
	validate *validator.Validate
	log      *zap.Logger
}

// NewVoucherHandler creates a new VoucherHandler.
func NewVoucherHandler(service *services.VoucherService, log *zap.Logger) *VoucherHandler {
	return &VoucherHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

type validateVoucherRequest struct {
	Code       string  `json:"code" validate:"required,max=64"`
	VendorID   *string `json:"vendor_id"`
	OrderValue int64   `json:"order_value" validate:"gte=0"`
}

// RegisterRoutes registers the voucher routes with the Fiber app.
func (h *VoucherHandler) RegisterRoutes(router fiber.Router) {
	voucherRoutes := router.Group("/vouchers")
	voucherRoutes.Post("/validate", h.HandleValidate)
}

// HandleValidate prices a voucher against the caller's order value.
func (h *VoucherHandler) HandleValidate(c *fiber.Ctx) error {
	var req validateVoucherRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	result, err := h.service.Validate(c.UserContext(), services.VoucherValidation{
		Code:       req.Code,
		VendorID:   req.VendorID,
		OrderValue: req.OrderValue,
		UserID:     middleware.CallerFrom(c).UserID,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(result)
}

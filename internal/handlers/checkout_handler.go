package handlers

import (
	"pricelist/internal/models"
	"pricelist/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles HTTP requests for placing orders and settling
// their payments.
type CheckoutHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.OrderService) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Post("/place-order", h.HandlePlaceOrder)
	checkoutRoutes.Post("/complete-payment", h.HandleCompletePayment)
	checkoutRoutes.Post("/cancel-payment", h.HandleCancelPayment)
}

// PlaceOrderRequest is the body of a place-order request.
type PlaceOrderRequest struct {
	CartID          string `json:"cartId" validate:"required"`
	CustomerName    string `json:"customerName" validate:"required,min=2,max=100"`
	CustomerContact string `json:"customerContact" validate:"required,min=5,max=100"`
	PaymentMethod   string `json:"paymentMethod" validate:"required"`
}

// PaymentUpdateRequest is the body of a payment completion or cancellation.
// TransactionID carries the gateway reference on completion and the failure
// reason on cancellation.
type PaymentUpdateRequest struct {
	OrderID       string `json:"orderId" validate:"required"`
	TransactionID string `json:"transactionId"`
}

// HandlePlaceOrder converts a cart into an order with a pending payment.
func (h *CheckoutHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	order, err := h.service.CreateOrderFromCart(req.CartID, req.CustomerName, req.CustomerContact, req.PaymentMethod)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleCompletePayment marks an order's payment as completed.
func (h *CheckoutHandler) HandleCompletePayment(c *fiber.Ctx) error {
	return h.updatePayment(c, models.PaymentStatusCompleted)
}

// HandleCancelPayment marks an order's payment as failed.
func (h *CheckoutHandler) HandleCancelPayment(c *fiber.Ctx) error {
	return h.updatePayment(c, models.PaymentStatusFailed)
}

func (h *CheckoutHandler) updatePayment(c *fiber.Ctx, status string) error {
	var req PaymentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	order, err := h.service.UpdatePaymentStatus(req.OrderID, status, req.TransactionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

package handlers

import (
	"time"

	"pricelist/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for order management. All of these
// routes are mounted behind the admin middleware.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/by-status", h.HandleGetOrdersByStatus)
	orderRoutes.Get("/by-customer", h.HandleGetOrdersByCustomer)
	orderRoutes.Get("/by-date", h.HandleGetOrdersByDateRange)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleGetOrders returns all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID returns a single order.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleUpdateOrderStatus sets an order's status.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required",
		})
	}

	order, err := h.service.UpdateOrderStatus(c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleGetOrdersByStatus returns orders filtered by order status.
func (h *OrderHandler) HandleGetOrdersByStatus(c *fiber.Ctx) error {
	orders, err := h.service.GetOrdersByStatus(c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrdersByCustomer returns orders filtered by customer name.
func (h *OrderHandler) HandleGetOrdersByCustomer(c *fiber.Ctx) error {
	orders, err := h.service.GetOrdersByCustomer(c.Query("customer"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrdersByDateRange returns orders created between the start and
// end query parameters (RFC 3339).
func (h *OrderHandler) HandleGetOrdersByDateRange(c *fiber.Ctx) error {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid start date, want RFC 3339",
		})
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid end date, want RFC 3339",
		})
	}

	orders, err := h.service.GetOrdersByDateRange(start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

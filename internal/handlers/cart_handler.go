package handlers

import (
	"pricelist/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for shopping carts. The client keeps the
// cart id and passes it back with every call; an empty or unknown id gets a
// fresh cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Get("/summary", h.HandleGetSummary)
	cartRoutes.Post("/add", h.HandleAddToCart)
	cartRoutes.Post("/update", h.HandleUpdateCartItem)
	cartRoutes.Post("/remove", h.HandleRemoveFromCart)
	cartRoutes.Post("/clear", h.HandleClearCart)
}

// AddToCartRequest is the body of an add-to-cart request.
type AddToCartRequest struct {
	CartID       string  `json:"cartId"`
	ProductID    string  `json:"productId" validate:"required"`
	Quantity     int     `json:"quantity" validate:"required,gt=0"`
	SellingPrice float64 `json:"sellingPrice" validate:"required,gt=0"`
}

// UpdateCartItemRequest is the body of a cart line update. A quantity of
// zero removes the line.
type UpdateCartItemRequest struct {
	CartID    string `json:"cartId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// RemoveFromCartRequest is the body of a remove-from-cart request.
type RemoveFromCartRequest struct {
	CartID    string `json:"cartId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
}

// HandleGetCart returns the cart named by the cartId query parameter,
// creating a new one when it is absent or unknown.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetOrCreateCart(c.Query("cartId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// HandleGetSummary returns the cart's totals without the line details.
func (h *CartHandler) HandleGetSummary(c *fiber.Ctx) error {
	cart, err := h.service.GetOrCreateCart(c.Query("cartId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"cartId":     cart.ID,
		"totalItems": cart.TotalItems(),
		"total":      cart.Total(),
	})
}

// HandleAddToCart adds a product to a cart at a negotiated price.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	cart, err := h.service.AddToCart(req.CartID, req.ProductID, req.Quantity, req.SellingPrice)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// HandleUpdateCartItem changes the quantity of an existing cart line.
func (h *CartHandler) HandleUpdateCartItem(c *fiber.Ctx) error {
	var req UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	cart, err := h.service.UpdateCartItem(req.CartID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// HandleRemoveFromCart removes a product from a cart.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	var req RemoveFromCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	cart, err := h.service.RemoveFromCart(req.CartID, req.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// HandleClearCart empties a cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	var req struct {
		CartID string `json:"cartId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cart, err := h.service.ClearCart(req.CartID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

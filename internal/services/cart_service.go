package services

import (
	"pricelist/internal/apperrors"
	"pricelist/internal/datasource"
	"pricelist/internal/models"
	"pricelist/internal/repositories"

	"github.com/google/uuid"
)

// CartService handles the shopping cart workflow: lazy cart creation, line
// management and the price-band and stock validations that gate additions.
type CartService struct {
	cartRepo      repositories.CartRepository
	productSource datasource.ProductDataSource
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productSource datasource.ProductDataSource) *CartService {
	return &CartService{
		cartRepo:      cartRepo,
		productSource: productSource,
	}
}

// GetOrCreateCart resolves cartID to an existing cart, or allocates and
// persists a new empty cart when cartID is empty or unknown.
func (s *CartService) GetOrCreateCart(cartID string) (*models.Cart, error) {
	if cartID != "" {
		cart, err := s.cartRepo.GetByID(cartID)
		if err != nil {
			return nil, err
		}
		if cart != nil {
			return cart, nil
		}
	}

	cart := models.NewCart(uuid.New().String())
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddToCart adds quantity units of a product to the cart at the negotiated
// sellingPrice. The price must fall inside the product's selling band and
// the cart's resulting quantity for the product must not exceed stock.
// Adding a product already in the cart merges into the existing line.
// Stock itself is not touched here; it is decremented at order placement.
func (s *CartService) AddToCart(cartID, productID string, quantity int, sellingPrice float64) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, apperrors.Validationf("quantity must be positive, got %d", quantity)
	}

	cart, err := s.GetOrCreateCart(cartID)
	if err != nil {
		return nil, err
	}

	product, err := s.productSource.GetProductByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.Validationf("product not found: %s", productID)
	}

	if sellingPrice < product.MinimumSellingPrice || sellingPrice > product.MaximumSellingPrice {
		return nil, apperrors.Validationf("selling price must be between %.2f and %.2f",
			product.MinimumSellingPrice, product.MaximumSellingPrice)
	}

	// The stock check covers what is already in the cart, so repeated adds
	// cannot grow a line past availability.
	inCart := 0
	if item := cart.Item(productID); item != nil {
		inCart = item.Quantity
	}
	if inCart+quantity > product.StockAvailability {
		return nil, apperrors.Validationf("not enough stock available for %s: only %d units available",
			product.Name, product.StockAvailability)
	}

	cart.AddItem(product, quantity, sellingPrice)

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateCartItem sets the quantity of an existing line. A quantity of zero
// or less removes the line. The new quantity is re-validated against the
// product's current stock.
func (s *CartService) UpdateCartItem(cartID, productID string, quantity int) (*models.Cart, error) {
	cart, err := s.GetOrCreateCart(cartID)
	if err != nil {
		return nil, err
	}

	if cart.Item(productID) == nil {
		return nil, apperrors.Validationf("product not in cart: %s", productID)
	}

	product, err := s.productSource.GetProductByID(productID)
	if err != nil {
		return nil, err
	}
	if product != nil && quantity > product.StockAvailability {
		return nil, apperrors.Validationf("not enough stock available for %s: only %d units available",
			product.Name, product.StockAvailability)
	}

	if quantity <= 0 {
		cart.RemoveItem(productID)
	} else {
		cart.UpdateItemQuantity(productID, quantity)
	}

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveFromCart removes the line for a product from the cart.
func (s *CartService) RemoveFromCart(cartID, productID string) (*models.Cart, error) {
	cart, err := s.GetOrCreateCart(cartID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart removes every line from the cart.
func (s *CartService) ClearCart(cartID string) (*models.Cart, error) {
	cart, err := s.GetOrCreateCart(cartID)
	if err != nil {
		return nil, err
	}

	cart.Clear()

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

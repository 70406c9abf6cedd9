package repositories

import (
	"pricelist/internal/models"
)

// CartRepository defines the interface for cart data access.
//
// GetByID reports a missing cart as (nil, nil); store read failures are
// logged by implementations and also come back as (nil, nil), so callers
// cannot distinguish the two.
type CartRepository interface {
	GetByID(id string) (*models.Cart, error)
	Save(cart *models.Cart) error
	Delete(id string) error
}

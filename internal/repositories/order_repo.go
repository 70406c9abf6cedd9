package repositories

import (
	"time"

	"pricelist/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// never deleted; after creation they change only through Update.
//
// GetByID reports a missing order as (nil, nil); store read failures are
// logged by implementations and flattened the same way.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	GetByStatus(status string) ([]models.Order, error)
	GetByCustomer(customerName string) ([]models.Order, error)
	GetByDateRange(start, end time.Time) ([]models.Order, error)
}

package repositories

import (
	"pricelist/internal/models"
)

// PaymentRepository defines the interface for payment data access. Each
// order has at most one payment record.
//
// GetByOrderID reports a missing payment as (nil, nil); store read failures
// are logged by implementations and flattened the same way.
type PaymentRepository interface {
	GetByOrderID(orderID string) (*models.Payment, error)
	Save(payment *models.Payment) error
	Update(payment *models.Payment) error
}

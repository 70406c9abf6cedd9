package repositories

import (
	"errors"
	"fmt"
	"log"
	"time"

	"pricelist/internal/models"
	"pricelist/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPaymentRepository is a GORM implementation of PaymentRepository with a
// per-order cache in front of the store.
type GORMPaymentRepository struct {
	db      *gorm.DB
	byOrder *cache.Cache[string, *models.Payment]
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{
		db:      db,
		byOrder: cache.New[string, *models.Payment](100, 10*time.Minute),
	}
}

// GetByOrderID returns the payment for an order, from cache when warm.
func (r *GORMPaymentRepository) GetByOrderID(orderID string) (*models.Payment, error) {
	if payment, ok := r.byOrder.Get(orderID); ok {
		return payment, nil
	}

	var payment models.Payment
	if err := r.db.First(&payment, "order_id = ?", orderID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to load payment for order %s from store: %v", orderID, err)
		}
		return nil, nil
	}
	r.byOrder.Put(orderID, &payment)
	return &payment, nil
}

// Save persists a new payment, assigning a UUID if none is set.
func (r *GORMPaymentRepository) Save(payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if err := r.db.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment for order %s: %w", payment.OrderID, err)
	}
	r.byOrder.Put(payment.OrderID, payment)
	return nil
}

// Update persists changes to an existing payment.
func (r *GORMPaymentRepository) Update(payment *models.Payment) error {
	res := r.db.Save(payment)
	if res.Error != nil {
		return fmt.Errorf("failed to update payment %s: %w", payment.ID, res.Error)
	}
	r.byOrder.Put(payment.OrderID, payment)
	return nil
}

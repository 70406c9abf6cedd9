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

// GORMOrderRepository is a GORM implementation of OrderRepository. Single
// orders are cached per id; list queries are cached under their filter with
// a shorter TTL and dropped wholesale on any write.
type GORMOrderRepository struct {
	db        *gorm.DB
	byID      *cache.Cache[string, *models.Order]
	listCache *cache.Cache[string, []models.Order]
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db:        db,
		byID:      cache.New[string, *models.Order](100, 10*time.Minute),
		listCache: cache.New[string, []models.Order](20, 5*time.Minute),
	}
}

// GetAll returns all orders.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	return r.list("all", func(db *gorm.DB) *gorm.DB { return db })
}

// GetByID returns an order by its id, from cache when warm.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	if order, ok := r.byID.Get(id); ok {
		return order, nil
	}

	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to load order %s from store: %v", id, err)
		}
		return nil, nil
	}
	r.byID.Put(id, &order)
	return &order, nil
}

// Create persists a new order, assigning a UUID if none is set.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	r.byID.Put(order.ID, order)
	r.listCache.Purge()
	return nil
}

// Update persists changes to an existing order.
func (r *GORMOrderRepository) Update(order *models.Order) error {
	res := r.db.Save(order)
	if res.Error != nil {
		return fmt.Errorf("failed to update order %s: %w", order.ID, res.Error)
	}
	r.byID.Put(order.ID, order)
	r.listCache.Purge()
	return nil
}

// GetByStatus returns all orders with the given order status.
func (r *GORMOrderRepository) GetByStatus(status string) ([]models.Order, error) {
	key := "status:" + status
	return r.list(key, func(db *gorm.DB) *gorm.DB {
		return db.Where("order_status = ?", status)
	})
}

// GetByCustomer returns all orders placed under the given customer name.
func (r *GORMOrderRepository) GetByCustomer(customerName string) ([]models.Order, error) {
	key := "customer:" + customerName
	return r.list(key, func(db *gorm.DB) *gorm.DB {
		return db.Where("customer_name = ?", customerName)
	})
}

// GetByDateRange returns all orders created in [start, end].
func (r *GORMOrderRepository) GetByDateRange(start, end time.Time) ([]models.Order, error) {
	key := fmt.Sprintf("range:%d:%d", start.Unix(), end.Unix())
	return r.list(key, func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at BETWEEN ? AND ?", start, end)
	})
}

// list runs a filtered order query through the list cache. Store failures
// are logged and flattened to an empty result.
func (r *GORMOrderRepository) list(key string, scope func(*gorm.DB) *gorm.DB) ([]models.Order, error) {
	if orders, ok := r.listCache.Get(key); ok {
		return orders, nil
	}

	var orders []models.Order
	if err := scope(r.db).Find(&orders).Error; err != nil {
		log.Printf("Failed to query orders (%s): %v", key, err)
		return []models.Order{}, nil
	}
	r.listCache.Put(key, orders)
	return orders, nil
}

package repositories

import (
	"sync"
	"time"

	"pricelist/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	return r.filter(func(models.Order) bool { return true })
}

// GetByID returns an order by its id, or nil if absent.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	r.orders[order.ID] = *order
	return nil
}

// Update replaces an existing order.
func (r *MockOrderRepository) Update(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.ID] = *order
	return nil
}

// GetByStatus returns all orders with the given order status.
func (r *MockOrderRepository) GetByStatus(status string) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool { return o.OrderStatus == status })
}

// GetByCustomer returns all orders placed under the given customer name.
func (r *MockOrderRepository) GetByCustomer(customerName string) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool { return o.CustomerName == customerName })
}

// GetByDateRange returns all orders created in [start, end].
func (r *MockOrderRepository) GetByDateRange(start, end time.Time) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool {
		return !o.CreatedAt.Before(start) && !o.CreatedAt.After(end)
	})
}

func (r *MockOrderRepository) filter(keep func(models.Order) bool) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if keep(order) {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

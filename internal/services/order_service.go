package services

import (
	"log"
	"time"

	"pricelist/internal/apperrors"
	"pricelist/internal/datasource"
	"pricelist/internal/models"
	"pricelist/internal/repositories"
)

// EventPublisher publishes order lifecycle events to the message broker.
// *rabbitmq.Client satisfies this interface.
type EventPublisher interface {
	PublishOrderCreated(event map[string]interface{}) error
	PublishPaymentStatusUpdated(event map[string]interface{}) error
}

var validOrderStatuses = map[string]bool{
	models.OrderStatusNew:        true,
	models.OrderStatusProcessing: true,
	models.OrderStatusCompleted:  true,
	models.OrderStatusCancelled:  true,
}

var validPaymentStatuses = map[string]bool{
	models.PaymentStatusPending:   true,
	models.PaymentStatusCompleted: true,
	models.PaymentStatusFailed:    true,
}

// OrderService handles the checkout workflow: converting a cart into an
// order, creating the payment record, reserving inventory and the status
// updates that follow.
type OrderService struct {
	orderRepo     repositories.OrderRepository
	cartRepo      repositories.CartRepository
	paymentRepo   repositories.PaymentRepository
	productSource datasource.ProductDataSource
	publisher     EventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil, in which
// case events are skipped.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	paymentRepo repositories.PaymentRepository,
	productSource datasource.ProductDataSource,
	publisher EventPublisher,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		cartRepo:      cartRepo,
		paymentRepo:   paymentRepo,
		productSource: productSource,
		publisher:     publisher,
	}
}

// CreateOrderFromCart converts a cart into an order: every line is
// re-checked against current stock (first insufficient product fails the
// whole call), the order and a pending payment are persisted, stock is
// decremented per line (floored at zero) and the cart is deleted.
//
// The writes are sequential and independent; there is no transaction
// spanning them, so a failure partway through leaves the earlier writes in
// place.
func (s *OrderService) CreateOrderFromCart(cartID, customerName, customerContact, paymentMethod string) (*models.Order, error) {
	cart, err := s.cartRepo.GetByID(cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperrors.NotFound("cart", cartID)
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.Validationf("cannot create order from empty cart")
	}

	for _, item := range cart.Items {
		product, err := s.productSource.GetProductByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperrors.Validationf("product not found: %s", item.ProductID)
		}
		if item.Quantity > product.StockAvailability {
			return nil, apperrors.Validationf("not enough stock available for %s: only %d units available",
				product.Name, product.StockAvailability)
		}
	}

	order := models.OrderFromCart(cart, customerName, customerContact, paymentMethod)
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	payment := models.PaymentForOrder(order)
	if err := s.paymentRepo.Save(payment); err != nil {
		// The order is already persisted; the payment record can be
		// reconciled later from the order's PENDING payment status.
		log.Printf("Failed to save payment for order %s: %v", order.ID, err)
	}

	s.reserveInventory(order)

	if err := s.cartRepo.Delete(cartID); err != nil {
		log.Printf("Failed to delete cart %s after order %s: %v", cartID, order.ID, err)
	}

	s.publishOrderCreated(order)

	return order, nil
}

// reserveInventory decrements stock for every ordered line, never below
// zero.
func (s *OrderService) reserveInventory(order *models.Order) {
	for _, item := range order.Items {
		product, err := s.productSource.GetProductByID(item.ProductID)
		if err != nil || product == nil {
			log.Printf("Skipping stock update for missing product %s on order %s", item.ProductID, order.ID)
			continue
		}

		newStock := product.StockAvailability - item.Quantity
		if newStock < 0 {
			newStock = 0
		}
		product.StockAvailability = newStock

		if err := s.productSource.UpdateProduct(product); err != nil {
			log.Printf("Failed to update stock for product %s on order %s: %v", item.ProductID, order.ID, err)
		}
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its id.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.NotFound("order", id)
	}
	return order, nil
}

// UpdateOrderStatus sets the order status of an existing order.
func (s *OrderService) UpdateOrderStatus(id, status string) (*models.Order, error) {
	if !validOrderStatuses[status] {
		return nil, apperrors.Validationf("invalid order status: %s", status)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.NotFound("order", id)
	}

	order.OrderStatus = status
	order.UpdatedAt = time.Now()
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdatePaymentStatus sets the payment status on the order and its payment
// record. On COMPLETED the transaction id is stored; on FAILED the same
// field carries the failure reason instead (see models.Payment).
func (s *OrderService) UpdatePaymentStatus(orderID, status, transactionID string) (*models.Order, error) {
	if !validPaymentStatuses[status] {
		return nil, apperrors.Validationf("invalid payment status: %s", status)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.NotFound("order", orderID)
	}

	order.PaymentStatus = status
	order.UpdatedAt = time.Now()
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if payment != nil {
		switch status {
		case models.PaymentStatusCompleted:
			payment.Complete(transactionID)
		case models.PaymentStatusFailed:
			payment.Fail(transactionID)
		default:
			payment.Status = status
			payment.TransactionID = transactionID
			payment.Timestamp = time.Now()
		}
		if err := s.paymentRepo.Update(payment); err != nil {
			log.Printf("Failed to update payment for order %s: %v", orderID, err)
		}
	}

	s.publishPaymentStatusUpdated(order, transactionID)

	return order, nil
}

// GetOrdersByStatus retrieves orders with the given order status.
func (s *OrderService) GetOrdersByStatus(status string) ([]models.Order, error) {
	return s.orderRepo.GetByStatus(status)
}

// GetOrdersByCustomer retrieves orders placed under the given customer name.
func (s *OrderService) GetOrdersByCustomer(customerName string) ([]models.Order, error) {
	return s.orderRepo.GetByCustomer(customerName)
}

// GetOrdersByDateRange retrieves orders created in [start, end].
func (s *OrderService) GetOrdersByDateRange(start, end time.Time) ([]models.Order, error) {
	return s.orderRepo.GetByDateRange(start, end)
}

func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		log.Println("Event publisher is not configured, skipping order.created event")
		return
	}

	event := map[string]interface{}{
		"orderId":      order.ID,
		"customerName": order.CustomerName,
		"orderStatus":  order.OrderStatus,
		"total":        order.Total,
	}
	if err := s.publisher.PublishOrderCreated(event); err != nil {
		log.Printf("Warning: failed to publish order.created for order %s: %v", order.ID, err)
	}
}

func (s *OrderService) publishPaymentStatusUpdated(order *models.Order, transactionID string) {
	if s.publisher == nil {
		return
	}

	event := map[string]interface{}{
		"orderId":       order.ID,
		"paymentStatus": order.PaymentStatus,
		"transactionId": transactionID,
	}
	if err := s.publisher.PublishPaymentStatusUpdated(event); err != nil {
		log.Printf("Warning: failed to publish payment.status_updated for order %s: %v", order.ID, err)
	}
}

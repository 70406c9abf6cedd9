package models

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses.
const (
	OrderStatusNew        = "NEW"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

// Payment statuses, shared by Order.PaymentStatus and Payment.Status.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
)

// OrderItem is an immutable snapshot of a cart line at order-creation time.
// Product details are copied so that later product edits do not change the
// order history.
type OrderItem struct {
	ID              string  `json:"id"`
	OrderID         string  `json:"orderId"`
	ProductID       string  `json:"productId"`
	ProductName     string  `json:"productName"`
	ProductCategory string  `json:"productCategory"`
	ProductBrand    string  `json:"productBrand"`
	SellingPrice    float64 `json:"sellingPrice"`
	Quantity        int     `json:"quantity"`
}

// Subtotal returns the line total (price * quantity).
func (i OrderItem) Subtotal() float64 {
	return i.SellingPrice * float64(i.Quantity)
}

// Order represents a customer order. Items are embedded in the order row as
// a JSON document.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Items           []OrderItem `json:"items" gorm:"serializer:json"`
	Total           float64     `json:"total"`
	CustomerName    string      `json:"customerName"`
	CustomerContact string      `json:"customerContact"`
	PaymentMethod   string      `json:"paymentMethod"`
	PaymentStatus   string      `json:"paymentStatus"` // PENDING, COMPLETED, FAILED
	OrderStatus     string      `json:"orderStatus"`   // NEW, PROCESSING, COMPLETED, CANCELLED
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// OrderFromCart builds a new Order from a cart, snapshotting every line into
// an OrderItem and carrying over the cart total.
func OrderFromCart(cart *Cart, customerName, customerContact, paymentMethod string) *Order {
	now := time.Now()
	order := &Order{
		ID:              uuid.New().String(),
		Total:           cart.Total(),
		CustomerName:    customerName,
		CustomerContact: customerContact,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   PaymentStatusPending,
		OrderStatus:     OrderStatusNew,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for _, item := range cart.Items {
		order.Items = append(order.Items, OrderItem{
			ID:              uuid.New().String(),
			OrderID:         order.ID,
			ProductID:       item.ProductID,
			ProductName:     item.Product.Name,
			ProductCategory: item.Product.Category,
			ProductBrand:    item.Product.Brand,
			SellingPrice:    item.SellingPrice,
			Quantity:        item.Quantity,
		})
	}

	return order
}

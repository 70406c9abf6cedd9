package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment represents the payment record for an order.
//
// TransactionID carries the gateway transaction reference when the payment
// completes; on failure the same field holds the failure reason instead, so
// anything rendering the transaction reference also shows why a payment
// failed.
type Payment struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID       string    `json:"orderId" gorm:"index;type:varchar(36)"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"` // CASH, CREDIT_CARD, DEBIT_CARD, UPI, ...
	Status        string    `json:"status"` // PENDING, COMPLETED, FAILED
	TransactionID string    `json:"transactionId"`
	Timestamp     time.Time `json:"timestamp"`
}

// PaymentForOrder creates a new pending payment covering the full order total.
func PaymentForOrder(order *Order) *Payment {
	return &Payment{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		Amount:    order.Total,
		Method:    order.PaymentMethod,
		Status:    PaymentStatusPending,
		Timestamp: time.Now(),
	}
}

// Complete marks the payment as completed with the gateway transaction id.
func (p *Payment) Complete(transactionID string) {
	p.Status = PaymentStatusCompleted
	p.TransactionID = transactionID
	p.Timestamp = time.Now()
}

// Fail marks the payment as failed. The reason is stored in TransactionID.
func (p *Payment) Fail(reason string) {
	p.Status = PaymentStatusFailed
	p.TransactionID = reason
	p.Timestamp = time.Now()
}

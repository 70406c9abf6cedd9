package services_test

import (
	"fmt"
	"testing"
	"time"

	"pricelist/internal/apperrors"
	"pricelist/internal/datasource"
	"pricelist/internal/models"
	"pricelist/internal/repositories"
	"pricelist/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of services.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishOrderCreated(event map[string]interface{}) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishPaymentStatusUpdated(event map[string]interface{}) error {
	args := m.Called(event)
	return args.Error(0)
}

type orderFixture struct {
	service     *services.OrderService
	cartService *services.CartService
	cartRepo    *repositories.MockCartRepository
	orderRepo   *repositories.MockOrderRepository
	paymentRepo *repositories.MockPaymentRepository
	source      *datasource.MockProductDataSource
}

func newOrderFixture(t *testing.T, publisher services.EventPublisher) *orderFixture {
	t.Helper()
	f := &orderFixture{
		cartRepo:    repositories.NewMockCartRepository(),
		orderRepo:   repositories.NewMockOrderRepository(),
		paymentRepo: repositories.NewMockPaymentRepository(),
		source:      datasource.NewMockProductDataSource(),
	}
	f.service = services.NewOrderService(f.orderRepo, f.cartRepo, f.paymentRepo, f.source, publisher)
	f.cartService = services.NewCartService(f.cartRepo, f.source)
	return f
}

// buildCart seeds a product with the given stock and returns a persisted
// cart holding quantity units of it at price.
func (f *orderFixture) buildCart(t *testing.T, stock, quantity int, price float64) (*models.Cart, models.Product) {
	t.Helper()
	product := models.Product{
		Name: "Sprint 150", Category: "Motorcycles", Brand: "Velocity",
		MinimumSellingPrice: price - 10, MaximumSellingPrice: price + 10,
		StockAvailability: stock,
	}
	if err := f.source.SaveProduct(&product); err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	cart, err := f.cartService.AddToCart("", product.ID, quantity, price)
	if err != nil {
		t.Fatalf("Failed to build cart: %v", err)
	}
	return cart, product
}

func TestCreateOrderFromCart_Success(t *testing.T) {
	publisher := new(MockEventPublisher)
	publisher.On("PublishOrderCreated", mock.Anything).Return(nil).Once()
	f := newOrderFixture(t, publisher)

	cart, product := f.buildCart(t, 5, 3, 100)
	cartTotal := cart.Total()

	order, err := f.service.CreateOrderFromCart(cart.ID, "Asha Rao", "asha@example.com", "UPI")
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderStatusNew, order.OrderStatus)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, cartTotal, order.Total)

	// Order items snapshot the product details at order time.
	assert.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, "Sprint 150", item.ProductName)
	assert.Equal(t, "Velocity", item.ProductBrand)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 100.0, item.SellingPrice)

	// A pending payment covering the full total was created.
	payment, err := f.paymentRepo.GetByOrderID(order.ID)
	assert.NoError(t, err)
	assert.NotNil(t, payment)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Equal(t, order.Total, payment.Amount)
	assert.Equal(t, "UPI", payment.Method)

	// Stock dropped by exactly the ordered quantity.
	updated, _ := f.source.GetProductByID(product.ID)
	assert.Equal(t, 2, updated.StockAvailability)

	// The cart is gone.
	gone, err := f.cartRepo.GetByID(cart.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)

	publisher.AssertExpectations(t)
}

func TestCreateOrderFromCart_EmptyCartFails(t *testing.T) {
	f := newOrderFixture(t, nil)

	cart, err := f.cartService.GetOrCreateCart("")
	assert.NoError(t, err)

	_, err = f.service.CreateOrderFromCart(cart.ID, "Asha Rao", "asha@example.com", "CASH")
	assert.True(t, apperrors.IsValidation(err))

	// No order or payment was written.
	orders, _ := f.orderRepo.GetAll()
	assert.Empty(t, orders)
}

func TestCreateOrderFromCart_UnknownCartFails(t *testing.T) {
	f := newOrderFixture(t, nil)

	_, err := f.service.CreateOrderFromCart("no-such-cart", "Asha Rao", "asha@example.com", "CASH")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateOrderFromCart_RechecksStockAtPlacement(t *testing.T) {
	f := newOrderFixture(t, nil)

	cart, product := f.buildCart(t, 5, 4, 100)

	// Stock shrank between add-to-cart and checkout.
	product.StockAvailability = 2
	assert.NoError(t, f.source.UpdateProduct(&product))

	_, err := f.service.CreateOrderFromCart(cart.ID, "Asha Rao", "asha@example.com", "CASH")
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), product.Name, "the failing product is named")

	// Nothing was written and the cart survives.
	orders, _ := f.orderRepo.GetAll()
	assert.Empty(t, orders)
	kept, _ := f.cartRepo.GetByID(cart.ID)
	assert.NotNil(t, kept)
}

// shrinkingStockSource drops a product's stock after the first read,
// standing in for a concurrent sale landing between the placement check and
// the inventory update.
type shrinkingStockSource struct {
	*datasource.MockProductDataSource
	productID  string
	afterFirst int
	reads      int
}

func (s *shrinkingStockSource) GetProductByID(id string) (*models.Product, error) {
	product, err := s.MockProductDataSource.GetProductByID(id)
	if err != nil || product == nil {
		return product, err
	}
	if id == s.productID {
		s.reads++
		if s.reads > 1 {
			product.StockAvailability = s.afterFirst
		}
	}
	return product, nil
}

func TestCreateOrderFromCart_StockFlooredAtZero(t *testing.T) {
	f := newOrderFixture(t, nil)
	cart, product := f.buildCart(t, 3, 3, 100)

	// The placement check sees 3 in stock, but by the time the decrement
	// runs only 1 is left. The decrement must clamp at zero rather than
	// going negative.
	racy := &shrinkingStockSource{
		MockProductDataSource: f.source,
		productID:             product.ID,
		afterFirst:            1,
	}
	f.service = services.NewOrderService(f.orderRepo, f.cartRepo, f.paymentRepo, racy, nil)

	_, err := f.service.CreateOrderFromCart(cart.ID, "Asha Rao", "asha@example.com", "CASH")
	assert.NoError(t, err)

	updated, _ := f.source.GetProductByID(product.ID)
	assert.Equal(t, 0, updated.StockAvailability)
}

// failingPaymentRepository simulates a store outage on payment writes.
type failingPaymentRepository struct{}

func (failingPaymentRepository) GetByOrderID(string) (*models.Payment, error) { return nil, nil }
func (failingPaymentRepository) Save(*models.Payment) error {
	return fmt.Errorf("store unavailable")
}
func (failingPaymentRepository) Update(*models.Payment) error {
	return fmt.Errorf("store unavailable")
}

// Order creation is a sequence of independent writes with no surrounding
// transaction. This test pins that down: when the payment write fails, the
// already-persisted order stays, stock is still decremented and the cart is
// still deleted.
func TestCreateOrderFromCart_PaymentWriteFailureDoesNotRollBack(t *testing.T) {
	f := newOrderFixture(t, nil)
	f.service = services.NewOrderService(f.orderRepo, f.cartRepo, failingPaymentRepository{}, f.source, nil)

	cart, product := f.buildCart(t, 5, 2, 100)

	order, err := f.service.CreateOrderFromCart(cart.ID, "Asha Rao", "asha@example.com", "CARD")
	assert.NoError(t, err, "payment write failure is logged, not surfaced")

	stored, _ := f.orderRepo.GetByID(order.ID)
	assert.NotNil(t, stored)

	updated, _ := f.source.GetProductByID(product.ID)
	assert.Equal(t, 3, updated.StockAvailability)

	gone, _ := f.cartRepo.GetByID(cart.ID)
	assert.Nil(t, gone)
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newOrderFixture(t, nil)
	cart, _ := f.buildCart(t, 5, 1, 100)
	order, err := f.service.CreateOrderFromCart(cart.ID, "Asha Rao", "asha@example.com", "CASH")
	assert.NoError(t, err)

	updated, err := f.service.UpdateOrderStatus(order.ID, models.OrderStatusProcessing)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.OrderStatus)

	_, err = f.service.UpdateOrderStatus(order.ID, "SHIPPED")
	assert.True(t, apperrors.IsValidation(err))

	_, err = f.service.UpdateOrderStatus("no-such-order", models.OrderStatusCompleted)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdatePaymentStatus_CompletedStoresTransactionID(t *testing.T) {
	f := newOrderFixture(t, nil)
	cart, _ := f.buildCart(t, 5, 1, 100)
	order, err := f.service.CreateOrderFromCart(cart.ID, "Asha Rao", "asha@example.com", "CARD")
	assert.NoError(t, err)

	updated, err := f.service.UpdatePaymentStatus(order.ID, models.PaymentStatusCompleted, "txn-12345")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, updated.PaymentStatus)

	payment, _ := f.paymentRepo.GetByOrderID(order.ID)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, "txn-12345", payment.TransactionID)
}

func TestUpdatePaymentStatus_FailedReusesTransactionIDForReason(t *testing.T) {
	f := newOrderFixture(t, nil)
	cart, _ := f.buildCart(t, 5, 1, 100)
	order, err := f.service.CreateOrderFromCart(cart.ID, "Asha Rao", "asha@example.com", "CARD")
	assert.NoError(t, err)

	updated, err := f.service.UpdatePaymentStatus(order.ID, models.PaymentStatusFailed, "card declined")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, updated.PaymentStatus)

	// The failure reason lands in TransactionID.
	payment, _ := f.paymentRepo.GetByOrderID(order.ID)
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)
	assert.Equal(t, "card declined", payment.TransactionID)
}

func TestUpdatePaymentStatus_Validation(t *testing.T) {
	f := newOrderFixture(t, nil)

	_, err := f.service.UpdatePaymentStatus("no-such-order", models.PaymentStatusCompleted, "txn")
	assert.True(t, apperrors.IsNotFound(err))

	cart, _ := f.buildCart(t, 5, 1, 100)
	order, err := f.service.CreateOrderFromCart(cart.ID, "Asha Rao", "asha@example.com", "CARD")
	assert.NoError(t, err)

	_, err = f.service.UpdatePaymentStatus(order.ID, "REFUNDED", "txn")
	assert.True(t, apperrors.IsValidation(err))
}

func TestOrderQueries(t *testing.T) {
	f := newOrderFixture(t, nil)

	cart, _ := f.buildCart(t, 10, 1, 100)
	first, err := f.service.CreateOrderFromCart(cart.ID, "Asha Rao", "asha@example.com", "CASH")
	assert.NoError(t, err)

	cart2, err := f.cartService.AddToCart("", first.Items[0].ProductID, 2, 100)
	assert.NoError(t, err)
	second, err := f.service.CreateOrderFromCart(cart2.ID, "Binod Kumar", "binod@example.com", "CARD")
	assert.NoError(t, err)

	_, err = f.service.UpdateOrderStatus(second.ID, models.OrderStatusProcessing)
	assert.NoError(t, err)

	all, err := f.service.GetAllOrders()
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	fresh, err := f.service.GetOrdersByStatus(models.OrderStatusNew)
	assert.NoError(t, err)
	assert.Len(t, fresh, 1)
	assert.Equal(t, first.ID, fresh[0].ID)

	byCustomer, err := f.service.GetOrdersByCustomer("Binod Kumar")
	assert.NoError(t, err)
	assert.Len(t, byCustomer, 1)
	assert.Equal(t, second.ID, byCustomer[0].ID)

	inRange, err := f.service.GetOrdersByDateRange(time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	assert.NoError(t, err)
	assert.Len(t, inRange, 2)

	none, err := f.service.GetOrdersByDateRange(time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))
	assert.NoError(t, err)
	assert.Empty(t, none)
}

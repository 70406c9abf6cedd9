package datasource

import (
	"sync"

	"pricelist/internal/apperrors"
	"pricelist/internal/models"

	"github.com/google/uuid"
)

// MockProductDataSource is an in-memory ProductDataSource for tests.
type MockProductDataSource struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductDataSource creates a new instance of MockProductDataSource.
func NewMockProductDataSource() *MockProductDataSource {
	return &MockProductDataSource{
		products: make(map[string]models.Product),
	}
}

// GetAllProducts returns all products.
func (ds *MockProductDataSource) GetAllProducts() ([]models.Product, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	products := make([]models.Product, 0, len(ds.products))
	for _, p := range ds.products {
		products = append(products, p)
	}
	return products, nil
}

// GetProductByID returns a product by its id, or nil if absent.
func (ds *MockProductDataSource) GetProductByID(id string) (*models.Product, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	product, ok := ds.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

// SaveProduct adds a new product, assigning a UUID if none is set.
func (ds *MockProductDataSource) SaveProduct(product *models.Product) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	ds.products[product.ID] = *product
	return nil
}

// UpdateProduct replaces an existing product.
func (ds *MockProductDataSource) UpdateProduct(product *models.Product) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if _, ok := ds.products[product.ID]; !ok {
		return apperrors.NotFound("product", product.ID)
	}
	ds.products[product.ID] = *product
	return nil
}

// DeleteProduct removes a product by its id.
func (ds *MockProductDataSource) DeleteProduct(id string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if _, ok := ds.products[id]; !ok {
		return apperrors.NotFound("product", id)
	}
	delete(ds.products, id)
	return nil
}

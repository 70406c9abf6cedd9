package services_test

import (
	"fmt"
	"testing"

	"pricelist/internal/apperrors"
	"pricelist/internal/models"
	"pricelist/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductSource is a mock implementation of datasource.ProductDataSource.
type MockProductSource struct {
	mock.Mock
}

func (m *MockProductSource) GetAllProducts() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductSource) GetProductByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductSource) SaveProduct(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductSource) UpdateProduct(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductSource) DeleteProduct(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func priceListFixture() []models.Product {
	return []models.Product{
		{ID: "0", Name: "Sprint 150", Category: "Motorcycles", Brand: "Velocity", Barcode: "8901201"},
		{ID: "1", Name: "Sprint 200", Category: "Motorcycles", Brand: "Velocity", Barcode: "8901202"},
		{ID: "2", Name: "Half Helmet", Category: "Accessories", Brand: "SafeRide", Barcode: "8901204"},
		{ID: "3", Name: "Engine Oil 1L", Category: "Spares", Brand: "LubeMax", Barcode: "8901206"},
	}
}

func TestProductService_GetProductByID(t *testing.T) {
	mockSource := new(MockProductSource)
	service := services.NewProductService(mockSource)

	expected := &models.Product{ID: "1", Name: "Sprint 200"}
	mockSource.On("GetProductByID", "1").Return(expected, nil).Once()

	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expected, product)
	mockSource.AssertExpectations(t)

	// An absent product surfaces as NotFoundError, even though the source
	// reports it as a bare nil.
	mockSource.On("GetProductByID", "99").Return(nil, nil).Once()
	product, err = service.GetProductByID("99")
	assert.True(t, apperrors.IsNotFound(err))
	assert.Nil(t, product)
	mockSource.AssertExpectations(t)
}

func TestProductService_SearchProducts(t *testing.T) {
	mockSource := new(MockProductSource)
	service := services.NewProductService(mockSource)
	mockSource.On("GetAllProducts").Return(priceListFixture(), nil)

	// Matches across name, category, brand and barcode, case-insensitively.
	results, err := service.SearchProducts("sprint")
	assert.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = service.SearchProducts("SPARES")
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "Engine Oil 1L", results[0].Name)

	results, err = service.SearchProducts("8901204")
	assert.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = service.SearchProducts("no-such-thing")
	assert.NoError(t, err)
	assert.Empty(t, results)

	// Empty and whitespace queries return the whole list.
	results, err = service.SearchProducts("   ")
	assert.NoError(t, err)
	assert.Len(t, results, 4)
}

func TestProductService_AutocompleteNames(t *testing.T) {
	mockSource := new(MockProductSource)
	service := services.NewProductService(mockSource)
	mockSource.On("GetAllProducts").Return(priceListFixture(), nil)

	names, err := service.AutocompleteNames("sprint")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Sprint 150", "Sprint 200"}, names)

	names, err = service.AutocompleteNames("")
	assert.NoError(t, err)
	assert.Len(t, names, 4)
}

func TestProductService_UniqueCategoriesAndBrands(t *testing.T) {
	mockSource := new(MockProductSource)
	service := services.NewProductService(mockSource)
	mockSource.On("GetAllProducts").Return(priceListFixture(), nil)

	categories, err := service.UniqueCategories()
	assert.NoError(t, err)
	assert.Equal(t, []string{"Motorcycles", "Accessories", "Spares"}, categories)

	brands, err := service.UniqueBrands()
	assert.NoError(t, err)
	assert.Equal(t, []string{"Velocity", "SafeRide", "LubeMax"}, brands)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockSource := new(MockProductSource)
	service := services.NewProductService(mockSource)

	valid := &models.Product{Name: "Air Filter", MinimumSellingPrice: 300, MaximumSellingPrice: 450, StockAvailability: 60}
	mockSource.On("SaveProduct", valid).Return(nil).Once()
	assert.NoError(t, service.CreateProduct(valid))
	mockSource.AssertExpectations(t)

	// An inverted price band never reaches the data source.
	inverted := &models.Product{Name: "Bad", MinimumSellingPrice: 500, MaximumSellingPrice: 450}
	err := service.CreateProduct(inverted)
	assert.True(t, apperrors.IsValidation(err))

	negative := &models.Product{Name: "Bad", MinimumSellingPrice: 1, MaximumSellingPrice: 2, StockAvailability: -1}
	err = service.CreateProduct(negative)
	assert.True(t, apperrors.IsValidation(err))
	mockSource.AssertExpectations(t)
}

func TestProductService_UpdateAndDelete(t *testing.T) {
	mockSource := new(MockProductSource)
	service := services.NewProductService(mockSource)

	updated := &models.Product{ID: "1", Name: "Sprint 200", MinimumSellingPrice: 100, MaximumSellingPrice: 200}
	mockSource.On("UpdateProduct", updated).Return(nil).Once()
	assert.NoError(t, service.UpdateProduct(updated))

	mockSource.On("DeleteProduct", "1").Return(nil).Once()
	assert.NoError(t, service.DeleteProduct("1"))

	mockSource.On("DeleteProduct", "99").Return(fmt.Errorf("store error")).Once()
	assert.Error(t, service.DeleteProduct("99"))
	mockSource.AssertExpectations(t)
}

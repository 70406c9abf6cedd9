package services

import (
	"strings"

	"pricelist/internal/apperrors"
	"pricelist/internal/datasource"
	"pricelist/internal/models"
)

// ProductService handles business logic for the price list: browsing,
// search, autocomplete and admin product management.
type ProductService struct {
	source datasource.ProductDataSource
}

// NewProductService creates a new ProductService.
func NewProductService(source datasource.ProductDataSource) *ProductService {
	return &ProductService{
		source: source,
	}
}

// GetAllProducts retrieves the full price list.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.source.GetAllProducts()
}

// GetProductByID retrieves a product by its id.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.source.GetProductByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.NotFound("product", id)
	}
	return product, nil
}

// SearchProducts returns products whose name, category, brand or barcode
// contains the query, case-insensitively. An empty query returns everything.
func (s *ProductService) SearchProducts(query string) ([]models.Product, error) {
	products, err := s.source.GetAllProducts()
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return products, nil
	}

	matches := make([]models.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Category), query) ||
			strings.Contains(strings.ToLower(p.Brand), query) ||
			(p.Barcode != "" && strings.Contains(strings.ToLower(p.Barcode), query)) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// AutocompleteNames returns distinct product names containing the term,
// case-insensitively, in price-list order.
func (s *ProductService) AutocompleteNames(term string) ([]string, error) {
	products, err := s.source.GetAllProducts()
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, p := range products {
		if seen[p.Name] {
			continue
		}
		if term == "" || strings.Contains(strings.ToLower(p.Name), term) {
			seen[p.Name] = true
			names = append(names, p.Name)
		}
	}
	return names, nil
}

// UniqueCategories returns the distinct categories in price-list order.
func (s *ProductService) UniqueCategories() ([]string, error) {
	return s.distinct(func(p models.Product) string { return p.Category })
}

// UniqueBrands returns the distinct brands in price-list order.
func (s *ProductService) UniqueBrands() ([]string, error) {
	return s.distinct(func(p models.Product) string { return p.Brand })
}

func (s *ProductService) distinct(field func(models.Product) string) ([]string, error) {
	products, err := s.source.GetAllProducts()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, p := range products {
		v := field(p)
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values, nil
}

// CreateProduct adds a new product to the price list.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := checkPriceBand(product); err != nil {
		return err
	}
	return s.source.SaveProduct(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := checkPriceBand(product); err != nil {
		return err
	}
	return s.source.UpdateProduct(product)
}

// DeleteProduct removes a product from the price list.
func (s *ProductService) DeleteProduct(id string) error {
	return s.source.DeleteProduct(id)
}

func checkPriceBand(product *models.Product) error {
	if product.MinimumSellingPrice > product.MaximumSellingPrice {
		return apperrors.Validationf("minimum selling price %.2f exceeds maximum %.2f",
			product.MinimumSellingPrice, product.MaximumSellingPrice)
	}
	if product.StockAvailability < 0 {
		return apperrors.Validationf("stock availability cannot be negative")
	}
	return nil
}

package datasource

import (
	"errors"
	"fmt"
	"log"
	"time"

	"pricelist/internal/apperrors"
	"pricelist/internal/models"
	"pricelist/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const allProductsKey = "all"

// GORMProductDataSource is a database-backed ProductDataSource with a
// read-through cache in front of the store. Single lookups are cached per
// id; the full price list is cached under one key with a shorter TTL.
type GORMProductDataSource struct {
	db        *gorm.DB
	byID      *cache.Cache[string, *models.Product]
	listCache *cache.Cache[string, []models.Product]
}

// NewGORMProductDataSource creates a new GORMProductDataSource.
func NewGORMProductDataSource(db *gorm.DB) *GORMProductDataSource {
	return &GORMProductDataSource{
		db:        db,
		byID:      cache.New[string, *models.Product](100, 10*time.Minute),
		listCache: cache.New[string, []models.Product](20, 5*time.Minute),
	}
}

// GetAllProducts returns all products, from cache when warm.
func (ds *GORMProductDataSource) GetAllProducts() ([]models.Product, error) {
	if products, ok := ds.listCache.Get(allProductsKey); ok {
		return products, nil
	}

	var products []models.Product
	if err := ds.db.Find(&products).Error; err != nil {
		log.Printf("Failed to load products from store: %v", err)
		return []models.Product{}, nil
	}
	ds.listCache.Put(allProductsKey, products)
	return products, nil
}

// GetProductByID returns a product by id, from cache when warm. A missing
// product and a store failure both come back as (nil, nil).
func (ds *GORMProductDataSource) GetProductByID(id string) (*models.Product, error) {
	if product, ok := ds.byID.Get(id); ok {
		return product, nil
	}

	var product models.Product
	if err := ds.db.First(&product, "id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to load product %s from store: %v", id, err)
		}
		return nil, nil
	}
	ds.byID.Put(id, &product)
	return &product, nil
}

// SaveProduct creates a new product, assigning a UUID if none is set.
func (ds *GORMProductDataSource) SaveProduct(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := ds.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	ds.byID.Put(product.ID, product)
	ds.listCache.Purge()
	return nil
}

// UpdateProduct updates an existing product.
func (ds *GORMProductDataSource) UpdateProduct(product *models.Product) error {
	res := ds.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product", product.ID)
	}
	ds.byID.Put(product.ID, product)
	ds.listCache.Purge()
	return nil
}

// DeleteProduct deletes a product by its id.
func (ds *GORMProductDataSource) DeleteProduct(id string) error {
	res := ds.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product", id)
	}
	ds.byID.Remove(id)
	ds.listCache.Purge()
	return nil
}

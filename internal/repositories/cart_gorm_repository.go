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

// GORMCartRepository is a GORM implementation of CartRepository. Cart rows
// embed their items as a JSON document; a per-cart cache sits in front of
// the store.
type GORMCartRepository struct {
	db    *gorm.DB
	cache *cache.Cache[string, *models.Cart]
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db:    db,
		cache: cache.New[string, *models.Cart](100, 30*time.Minute),
	}
}

// GetByID returns a cart by its id, from cache when warm.
func (r *GORMCartRepository) GetByID(id string) (*models.Cart, error) {
	if cart, ok := r.cache.Get(id); ok {
		return cart, nil
	}

	var cart models.Cart
	if err := r.db.First(&cart, "id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to load cart %s from store: %v", id, err)
		}
		return nil, nil
	}
	r.cache.Put(id, &cart)
	return &cart, nil
}

// Save upserts a cart, assigning ids to the cart and any new items.
func (r *GORMCartRepository) Save(cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	for i := range cart.Items {
		if cart.Items[i].ID == "" {
			cart.Items[i].ID = uuid.New().String()
		}
		cart.Items[i].CartID = cart.ID
	}

	if err := r.db.Save(cart).Error; err != nil {
		return fmt.Errorf("failed to save cart %s: %w", cart.ID, err)
	}
	r.cache.Put(cart.ID, cart)
	return nil
}

// Delete removes a cart. Deleting an unknown cart is not an error.
func (r *GORMCartRepository) Delete(id string) error {
	if err := r.db.Delete(&models.Cart{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", id, err)
	}
	r.cache.Remove(id)
	return nil
}

package datasource

import (
	"fmt"

	"pricelist/internal/models"

	"gorm.io/gorm"
)

// ProductDataSource defines the interface for product data access. Two
// interchangeable implementations exist: a CSV-file-backed one and a
// database-backed one; which is used is decided at startup from
// configuration.
//
// Read methods flatten store failures: a lookup that fails against the
// backing store is logged and reported as absent (nil, nil), so callers
// cannot tell "not found" from "store unavailable". Write methods return
// errors.
type ProductDataSource interface {
	GetAllProducts() ([]models.Product, error)
	GetProductByID(id string) (*models.Product, error)
	SaveProduct(product *models.Product) error // assigns an id if absent
	UpdateProduct(product *models.Product) error
	DeleteProduct(id string) error
}

// Kind selects a ProductDataSource implementation.
const (
	KindCSV = "csv"
	KindDB  = "db"
)

// New creates the ProductDataSource named by kind. The CSV source reads and
// rewrites csvPath; the db source persists products through db.
func New(kind string, csvPath string, db *gorm.DB) (ProductDataSource, error) {
	switch kind {
	case KindCSV:
		return NewCSVProductDataSource(csvPath)
	case KindDB:
		if db == nil {
			return nil, fmt.Errorf("db product source requires a database connection")
		}
		return NewGORMProductDataSource(db), nil
	default:
		return nil, fmt.Errorf("unknown product source %q (want %q or %q)", kind, KindCSV, KindDB)
	}
}

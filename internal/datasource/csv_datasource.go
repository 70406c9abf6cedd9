package datasource

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"pricelist/internal/apperrors"
	"pricelist/internal/models"
)

var csvHeader = []string{
	"name", "category", "brand", "minimumSellingPrice",
	"maximumSellingPrice", "stockAvailability", "photoUrl", "barcode",
}

// CSVProductDataSource is a ProductDataSource backed by a CSV file. The file
// is loaded once at construction; every mutation rewrites it in full. Product
// ids are row indexes, so deleting a row reassigns the ids of the rows after
// it.
type CSVProductDataSource struct {
	path     string
	products []models.Product
	mu       sync.RWMutex
}

// NewCSVProductDataSource loads the price list from the CSV file at path.
func NewCSVProductDataSource(path string) (*CSVProductDataSource, error) {
	ds := &CSVProductDataSource{path: path}
	if err := ds.load(); err != nil {
		return nil, fmt.Errorf("failed to load products from %s: %w", path, err)
	}
	return ds, nil
}

// GetAllProducts returns all products in file order.
func (ds *CSVProductDataSource) GetAllProducts() ([]models.Product, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	products := make([]models.Product, len(ds.products))
	copy(products, ds.products)
	return products, nil
}

// GetProductByID returns the product at the given row index, or nil if the
// id is not a valid row.
func (ds *CSVProductDataSource) GetProductByID(id string) (*models.Product, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	row, err := strconv.Atoi(id)
	if err != nil || row < 0 || row >= len(ds.products) {
		return nil, nil
	}
	product := ds.products[row]
	return &product, nil
}

// SaveProduct appends a product, assigning the next row index as its id.
func (ds *CSVProductDataSource) SaveProduct(product *models.Product) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	product.ID = strconv.Itoa(len(ds.products))
	ds.products = append(ds.products, *product)
	return ds.store()
}

// UpdateProduct replaces the product at the row named by its id.
func (ds *CSVProductDataSource) UpdateProduct(product *models.Product) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	row, err := strconv.Atoi(product.ID)
	if err != nil || row < 0 || row >= len(ds.products) {
		return apperrors.NotFound("product", product.ID)
	}
	ds.products[row] = *product
	return ds.store()
}

// DeleteProduct removes the row named by id and reindexes the rows after it.
func (ds *CSVProductDataSource) DeleteProduct(id string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	row, err := strconv.Atoi(id)
	if err != nil || row < 0 || row >= len(ds.products) {
		return apperrors.NotFound("product", id)
	}
	ds.products = append(ds.products[:row], ds.products[row+1:]...)
	for i := row; i < len(ds.products); i++ {
		ds.products[i].ID = strconv.Itoa(i)
	}
	return ds.store()
}

func (ds *CSVProductDataSource) load() error {
	f, err := os.Open(ds.path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		ds.products = []models.Product{}
		return nil
	}

	// First record is the header.
	products := make([]models.Product, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < len(csvHeader) {
			return fmt.Errorf("row %d has %d fields, want %d", i+1, len(record), len(csvHeader))
		}
		minPrice, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return fmt.Errorf("row %d: bad minimumSellingPrice %q: %w", i+1, record[3], err)
		}
		maxPrice, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return fmt.Errorf("row %d: bad maximumSellingPrice %q: %w", i+1, record[4], err)
		}
		stock, err := strconv.Atoi(record[5])
		if err != nil {
			return fmt.Errorf("row %d: bad stockAvailability %q: %w", i+1, record[5], err)
		}
		products = append(products, models.Product{
			ID:                  strconv.Itoa(i),
			Name:                record[0],
			Category:            record[1],
			Brand:               record[2],
			MinimumSellingPrice: minPrice,
			MaximumSellingPrice: maxPrice,
			StockAvailability:   stock,
			PhotoURL:            record[6],
			Barcode:             record[7],
		})
	}

	ds.products = products
	return nil
}

// store rewrites the whole CSV file. Caller must hold the write lock.
func (ds *CSVProductDataSource) store() error {
	f, err := os.Create(ds.path)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", ds.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range ds.products {
		record := []string{
			p.Name,
			p.Category,
			p.Brand,
			strconv.FormatFloat(p.MinimumSellingPrice, 'f', -1, 64),
			strconv.FormatFloat(p.MaximumSellingPrice, 'f', -1, 64),
			strconv.Itoa(p.StockAvailability),
			p.PhotoURL,
			p.Barcode,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

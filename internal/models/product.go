package models

import "gorm.io/gorm"

// Product represents an entry in the price list. The selling price of a
// product is negotiated per sale and must fall within the inclusive
// [MinimumSellingPrice, MaximumSellingPrice] band.
type Product struct {
	ID                  string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name                string  `json:"name" validate:"required,min=2,max=100"`
	Category            string  `json:"category" validate:"required,max=100"`
	Brand               string  `json:"brand" validate:"required,max=100"`
	MinimumSellingPrice float64 `json:"minimumSellingPrice" validate:"required,gt=0"`
	MaximumSellingPrice float64 `json:"maximumSellingPrice" validate:"required,gtefield=MinimumSellingPrice"`
	StockAvailability   int     `json:"stockAvailability" validate:"gte=0"`
	PhotoURL            string  `json:"photoUrl" validate:"omitempty,url"`
	Barcode             string  `json:"barcode" validate:"omitempty,max=64"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

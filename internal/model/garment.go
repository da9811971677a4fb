package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Garment is a catalog item independent of any user. Deletion is logical:
// Available=false hides the row from public listings but preserves it.
type Garment struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:255;not null;index"`
	Brand       string          `json:"brand" gorm:"size:255;not null;index"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Rating      float64         `json:"rating" gorm:"type:decimal(3,1);default:0"`
	ImageURL    string          `json:"imageUrl" gorm:"size:512"`
	Description string          `json:"description" gorm:"type:text"`
	Category    string          `json:"category" gorm:"size:100;index"`
	Style       string          `json:"style" gorm:"size:100;index"`
	Available   bool            `json:"available" gorm:"default:true;index"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// GarmentPatch is a partial update for a garment. Nil fields are left untouched.
type GarmentPatch struct {
	Name        *string
	Brand       *string
	Price       *decimal.Decimal
	Rating      *float64
	ImageURL    *string
	Description *string
	Category    *string
	Style       *string
	Available   *bool
}

// Changes returns the column/value pairs the patch sets.
func (p GarmentPatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Brand != nil {
		changes["brand"] = *p.Brand
	}
	if p.Price != nil {
		changes["price"] = *p.Price
	}
	if p.Rating != nil {
		changes["rating"] = *p.Rating
	}
	if p.ImageURL != nil {
		changes["image_url"] = *p.ImageURL
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	if p.Category != nil {
		changes["category"] = *p.Category
	}
	if p.Style != nil {
		changes["style"] = *p.Style
	}
	if p.Available != nil {
		changes["available"] = *p.Available
	}
	return changes
}

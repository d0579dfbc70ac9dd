package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"price"`
	// Quantity is the current stock level. It is mutated only by the
	// ledger engine, in the same atomic unit as the transaction row
	// that justifies the change. Never negative.
	Quantity int    `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	Unit     string `gorm:"type:varchar(20)" json:"unit"`
	ImageURL string `gorm:"type:varchar(255)" json:"image_url"`

	CategoryID    uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	AssociationID uuid.UUID `gorm:"type:uuid;not null;index" json:"association_id"`

	// Relasi
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// ProductResponse for API responses, flattening the category name the
// way product listings are consumed
type ProductResponse struct {
	Product
	CategoryName string `json:"category_name,omitempty"`
}

// ToResponse converts Product to ProductResponse
func (p *Product) ToResponse() ProductResponse {
	resp := ProductResponse{Product: *p}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxIn  TransactionType = "IN"
	TxOut TransactionType = "OUT"
)

// Transaction is one immutable row of the stock ledger. Rows are
// appended by the ledger engine only, inside the same database
// transaction as the product quantity change they justify. They are
// never updated or deleted.
type Transaction struct {
	BaseModel
	Type     TransactionType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=IN OUT"`
	Quantity int             `gorm:"not null" json:"quantity" validate:"required,gt=0"` // Qty harus > 0

	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	AssociationID uuid.UUID `gorm:"type:uuid;not null;index" json:"association_id"`

	// Relasi
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
}

// TransactionResponse enriches a ledger row with product context for
// the history listing
type TransactionResponse struct {
	ID           uuid.UUID       `json:"id"`
	Type         TransactionType `json:"type"`
	Quantity     int             `json:"quantity"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToResponse converts Transaction to TransactionResponse
func (t *Transaction) ToResponse() TransactionResponse {
	resp := TransactionResponse{
		ID:        t.ID,
		Type:      t.Type,
		Quantity:  t.Quantity,
		ProductID: t.ProductID,
		CreatedAt: t.CreatedAt,
	}
	if t.Product != nil {
		resp.ProductName = t.Product.Name
		resp.Unit = t.Product.Unit
		resp.ImageURL = t.Product.ImageURL
		resp.Price = t.Product.Price
		if t.Product.Category != nil {
			resp.CategoryName = t.Product.Category.Name
		}
	}
	return resp
}

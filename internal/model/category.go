package model

import "github.com/google/uuid"

type Category struct {
	BaseModel
	Name          string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description   string    `gorm:"type:text" json:"description"`
	AssociationID uuid.UUID `gorm:"type:uuid;not null;index" json:"association_id"`

	// Relasi
	Products []Product `json:"products,omitempty"`
}

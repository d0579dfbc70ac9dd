package model

// Association is the tenant root. Every category, product and
// transaction is owned by exactly one association, keyed by the
// authenticated user's email.
type Association struct {
	BaseModel
	Email string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Name  string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
}

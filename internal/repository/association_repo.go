package repository

import (
	"github.com/adnane-lakhmaisse/OptiStock/internal/model"
	"gorm.io/gorm"
)

type AssociationRepository interface {
	Create(association *model.Association) error
	FindByEmail(email string) (*model.Association, error)
}

type associationRepo struct {
	db *gorm.DB
}

func NewAssociationRepo(db *gorm.DB) AssociationRepository {
	return &associationRepo{db}
}

func (r *associationRepo) Create(association *model.Association) error {
	return r.db.Create(association).Error
}

func (r *associationRepo) FindByEmail(email string) (*model.Association, error) {
	var association model.Association
	err := r.db.First(&association, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &association, nil
}

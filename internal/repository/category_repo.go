package repository

import (
	"github.com/adnane-lakhmaisse/OptiStock/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll(associationID uuid.UUID) ([]model.Category, error)
	FindByID(id, associationID uuid.UUID) (*model.Category, error)
	Update(category *model.Category) error
	// DeleteWithProducts removes the category and every product it
	// owns inside the supplied transaction
	DeleteWithProducts(tx *gorm.DB, id, associationID uuid.UUID) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepo) FindAll(associationID uuid.UUID) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.
		Where("association_id = ?", associationID).
		Order("created_at DESC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindByID(id, associationID uuid.UUID) (*model.Category, error) {
	var category model.Category
	err := r.db.First(&category, "id = ? AND association_id = ?", id, associationID).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) Update(category *model.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepo) DeleteWithProducts(tx *gorm.DB, id, associationID uuid.UUID) error {
	if err := tx.
		Where("category_id = ? AND association_id = ?", id, associationID).
		Delete(&model.Product{}).Error; err != nil {
		return err
	}
	result := tx.
		Where("id = ? AND association_id = ?", id, associationID).
		Delete(&model.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

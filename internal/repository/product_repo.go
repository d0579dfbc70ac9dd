package repository

import (
	"github.com/adnane-lakhmaisse/OptiStock/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(associationID uuid.UUID) ([]model.Product, error)
	FindByID(id, associationID uuid.UUID) (*model.Product, error)
	// UpdateDetails updates descriptive fields only. Quantity is not a
	// legal key here; stock moves exclusively through UpdateQuantity
	// under the ledger engine's transaction.
	UpdateDetails(id, associationID uuid.UUID, fields map[string]interface{}) error
	Delete(id, associationID uuid.UUID) error
	// FindForUpdate locks the product row until the surrounding
	// transaction commits. Must only be called inside tx.
	FindForUpdate(tx *gorm.DB, id, associationID uuid.UUID) (*model.Product, error)
	// UpdateQuantity menerima *gorm.DB (tx) agar bisa berjalan dalam transaksi
	UpdateQuantity(tx *gorm.DB, id, associationID uuid.UUID, newQuantity int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(associationID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Preload("Category").
		Where("association_id = ?", associationID).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id, associationID uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.
		Preload("Category").
		First(&product, "id = ? AND association_id = ?", id, associationID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) UpdateDetails(id, associationID uuid.UUID, fields map[string]interface{}) error {
	delete(fields, "quantity")
	result := r.db.Model(&model.Product{}).
		Where("id = ? AND association_id = ?", id, associationID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) Delete(id, associationID uuid.UUID) error {
	result := r.db.
		Where("id = ? AND association_id = ?", id, associationID).
		Delete(&model.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) FindForUpdate(tx *gorm.DB, id, associationID uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ? AND association_id = ?", id, associationID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) UpdateQuantity(tx *gorm.DB, id, associationID uuid.UUID, newQuantity int) error {
	result := tx.Model(&model.Product{}).
		Where("id = ? AND association_id = ?", id, associationID).
		Update("quantity", newQuantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

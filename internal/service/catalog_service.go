package service

import (
	"errors"

	"github.com/adnane-lakhmaisse/OptiStock/internal/apperr"
	"github.com/adnane-lakhmaisse/OptiStock/internal/model"
	"github.com/adnane-lakhmaisse/OptiStock/internal/repository"
	"github.com/adnane-lakhmaisse/OptiStock/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoryRequest carries category fields from the API layer
type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// ProductRequest carries product fields on create. Quantity here is
// the initial stock level; afterwards quantity only moves through the
// ledger engine.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Unit        string          `json:"unit"`
	ImageURL    string          `json:"image_url"`
	CategoryID  uuid.UUID       `json:"category_id" validate:"uuid_required"`
}

// ProductUpdateRequest deliberately has no quantity field; stock moves
// only through the ledger engine
type ProductUpdateRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	ImageURL    string          `json:"image_url"`
	CategoryID  uuid.UUID       `json:"category_id" validate:"uuid_required"`
}

type CatalogService interface {
	CreateCategory(associationID uuid.UUID, req *CategoryRequest) (*model.Category, error)
	UpdateCategory(associationID, id uuid.UUID, req *CategoryRequest) (*model.Category, error)
	DeleteCategory(associationID, id uuid.UUID) error
	GetAllCategories(associationID uuid.UUID) ([]model.Category, error)

	CreateProduct(associationID uuid.UUID, req *ProductRequest) (*model.Product, error)
	UpdateProduct(associationID, id uuid.UUID, req *ProductUpdateRequest) (*model.Product, error)
	DeleteProduct(associationID, id uuid.UUID) (*model.Product, error)
	GetProduct(associationID, id uuid.UUID) (*model.Product, error)
	GetAllProducts(associationID uuid.UUID) ([]model.Product, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	db           *gorm.DB
	logger       *zap.Logger
}

func NewCatalogService(cRepo repository.CategoryRepository, pRepo repository.ProductRepository, db *gorm.DB, logger *zap.Logger) CatalogService {
	return &catalogService{
		categoryRepo: cRepo,
		productRepo:  pRepo,
		db:           db,
		logger:       logger,
	}
}

func (s *catalogService) CreateCategory(associationID uuid.UUID, req *CategoryRequest) (*model.Category, error) {
	if msg := validator.FirstErrorMessage(req); msg != "" {
		return nil, apperr.NewDomainError("INVALID_INPUT", msg)
	}

	category := &model.Category{
		Name:          req.Name,
		Description:   req.Description,
		AssociationID: associationID,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, s.storeFailure("category create failed", err)
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(associationID, id uuid.UUID, req *CategoryRequest) (*model.Category, error) {
	if msg := validator.FirstErrorMessage(req); msg != "" {
		return nil, apperr.NewDomainError("INVALID_INPUT", msg)
	}

	category, err := s.categoryRepo.FindByID(id, associationID)
	if err != nil {
		return nil, s.notFoundOrStore("category lookup failed", err)
	}

	category.Name = req.Name
	category.Description = req.Description
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, s.storeFailure("category update failed", err)
	}
	return category, nil
}

// DeleteCategory cascades to the category's products in one atomic unit
func (s *catalogService) DeleteCategory(associationID, id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.categoryRepo.DeleteWithProducts(tx, id, associationID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return s.storeFailure("category delete failed", err)
	}
	return nil
}

func (s *catalogService) GetAllCategories(associationID uuid.UUID) ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll(associationID)
	if err != nil {
		return nil, s.storeFailure("category list failed", err)
	}
	return categories, nil
}

func (s *catalogService) CreateProduct(associationID uuid.UUID, req *ProductRequest) (*model.Product, error) {
	if msg := validator.FirstErrorMessage(req); msg != "" {
		return nil, apperr.NewDomainError("INVALID_INPUT", msg)
	}

	// Category must belong to the same association
	if _, err := s.categoryRepo.FindByID(req.CategoryID, associationID); err != nil {
		return nil, s.notFoundOrStore("category lookup failed", err)
	}

	product := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		ImageURL:      req.ImageURL,
		CategoryID:    req.CategoryID,
		AssociationID: associationID,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, s.storeFailure("product create failed", err)
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(associationID, id uuid.UUID, req *ProductUpdateRequest) (*model.Product, error) {
	if msg := validator.FirstErrorMessage(req); msg != "" {
		return nil, apperr.NewDomainError("INVALID_INPUT", msg)
	}

	product, err := s.productRepo.FindByID(id, associationID)
	if err != nil {
		return nil, s.notFoundOrStore("product lookup failed", err)
	}
	if req.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.FindByID(req.CategoryID, associationID); err != nil {
			return nil, s.notFoundOrStore("category lookup failed", err)
		}
	}

	// Quantity stays untouched here; only the ledger engine moves stock
	fields := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"price":       req.Price,
		"unit":        req.Unit,
		"image_url":   req.ImageURL,
		"category_id": req.CategoryID,
	}
	if err := s.productRepo.UpdateDetails(id, associationID, fields); err != nil {
		return nil, s.notFoundOrStore("product update failed", err)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Unit = req.Unit
	product.ImageURL = req.ImageURL
	product.CategoryID = req.CategoryID
	product.Category = nil
	return product, nil
}

// DeleteProduct returns the deleted product so the caller can clean up
// its stored image
func (s *catalogService) DeleteProduct(associationID, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id, associationID)
	if err != nil {
		return nil, s.notFoundOrStore("product lookup failed", err)
	}
	if err := s.productRepo.Delete(id, associationID); err != nil {
		return nil, s.notFoundOrStore("product delete failed", err)
	}
	return product, nil
}

func (s *catalogService) GetProduct(associationID, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id, associationID)
	if err != nil {
		return nil, s.notFoundOrStore("product lookup failed", err)
	}
	return product, nil
}

func (s *catalogService) GetAllProducts(associationID uuid.UUID) ([]model.Product, error) {
	products, err := s.productRepo.FindAll(associationID)
	if err != nil {
		return nil, s.storeFailure("product list failed", err)
	}
	return products, nil
}

func (s *catalogService) storeFailure(msg string, err error) error {
	s.logger.Error(msg, zap.Error(err))
	return apperr.ErrStoreFailure
}

func (s *catalogService) notFoundOrStore(msg string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return s.storeFailure(msg, err)
}

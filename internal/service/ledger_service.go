package service

import (
	"errors"

	"github.com/adnane-lakhmaisse/OptiStock/internal/apperr"
	"github.com/adnane-lakhmaisse/OptiStock/internal/model"
	"github.com/adnane-lakhmaisse/OptiStock/internal/repository"
	"github.com/adnane-lakhmaisse/OptiStock/internal/ws"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DeductItem is one line of a batch withdrawal, in caller order
type DeductItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// LedgerService owns every stock mutation. A product's quantity only
// changes here, paired with the transaction row that justifies it,
// inside one database transaction. Validation reads take row locks so
// two concurrent withdrawals cannot both see the same "sufficient
// stock" snapshot.
type LedgerService interface {
	Replenish(associationID, productID uuid.UUID, quantity int) (*model.Product, error)
	DeductBatch(associationID uuid.UUID, items []DeductItem) error
}

type ledgerService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
	wsHub           *ws.Hub
	logger          *zap.Logger
}

func NewLedgerService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db *gorm.DB, hub *ws.Hub, logger *zap.Logger) LedgerService {
	return &ledgerService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		db:              db,
		wsHub:           hub,
		logger:          logger,
	}
}

func (s *ledgerService) Replenish(associationID, productID uuid.UUID, quantity int) (*model.Product, error) {
	if quantity <= 0 {
		return nil, apperr.ErrInvalidQuantity
	}

	var updated model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.FindForUpdate(tx, productID, associationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}

		newQuantity := product.Quantity + quantity
		if err := s.productRepo.UpdateQuantity(tx, product.ID, associationID, newQuantity); err != nil {
			return err
		}

		entry := &model.Transaction{
			Type:          model.TxIn,
			Quantity:      quantity,
			ProductID:     product.ID,
			AssociationID: associationID,
		}
		if err := s.transactionRepo.Create(tx, entry); err != nil {
			return err
		}

		product.Quantity = newQuantity
		updated = *product
		return nil
	})
	if err != nil {
		return nil, s.wrap(err, "replenish failed", associationID, productID)
	}

	s.logger.Info("stock replenished",
		zap.String("product_id", updated.ID.String()),
		zap.Int("quantity", quantity),
		zap.Int("new_quantity", updated.Quantity),
	)
	s.broadcastStockUpdate("replenish", []model.Product{updated})

	return &updated, nil
}

func (s *ledgerService) DeductBatch(associationID uuid.UUID, items []DeductItem) error {
	if len(items) == 0 {
		return apperr.ErrEmptyOrder
	}

	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if seen[item.ProductID] {
			return apperr.NewDomainError("DUPLICATE_ITEM", "Order lists the same product more than once")
		}
		seen[item.ProductID] = true
	}

	var updated []model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Validation pass: lock every product row and check each item
		// in caller order before touching anything. The first failing
		// item aborts the whole batch.
		products := make([]*model.Product, len(items))
		for i, item := range items {
			if item.Quantity <= 0 {
				return apperr.ErrInvalidQuantity
			}

			product, err := s.productRepo.FindForUpdate(tx, item.ProductID, associationID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.ErrNotFound
				}
				return err
			}
			if item.Quantity > product.Quantity {
				return apperr.NewInsufficientStock(product.Name, item.Quantity, product.Quantity, product.Unit)
			}
			products[i] = product
		}

		// Commit pass: all decrements plus one OUT row per item
		for i, item := range items {
			product := products[i]
			newQuantity := product.Quantity - item.Quantity
			if err := s.productRepo.UpdateQuantity(tx, product.ID, associationID, newQuantity); err != nil {
				return err
			}

			entry := &model.Transaction{
				Type:          model.TxOut,
				Quantity:      item.Quantity,
				ProductID:     product.ID,
				AssociationID: associationID,
			}
			if err := s.transactionRepo.Create(tx, entry); err != nil {
				return err
			}

			product.Quantity = newQuantity
			updated = append(updated, *product)
		}
		return nil
	})
	if err != nil {
		return s.wrap(err, "deduct batch failed", associationID, uuid.Nil)
	}

	s.logger.Info("stock deducted",
		zap.String("association_id", associationID.String()),
		zap.Int("items", len(items)),
	)
	s.broadcastStockUpdate("deduct", updated)

	return nil
}

// wrap passes typed domain failures through untouched and folds
// everything else into a generic store failure so internal error
// detail never reaches the caller
func (s *ledgerService) wrap(err error, msg string, associationID, productID uuid.UUID) error {
	var domainErr *apperr.DomainError
	var stockErr *apperr.InsufficientStockError
	if errors.As(err, &domainErr) || errors.As(err, &stockErr) {
		return err
	}

	fields := []zap.Field{
		zap.String("association_id", associationID.String()),
		zap.Error(err),
	}
	if productID != uuid.Nil {
		fields = append(fields, zap.String("product_id", productID.String()))
	}
	s.logger.Error(msg, fields...)
	return apperr.ErrStoreFailure
}

func (s *ledgerService) broadcastStockUpdate(action string, products []model.Product) {
	if s.wsHub == nil {
		return
	}

	items := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		items = append(items, map[string]interface{}{
			"id":       p.ID,
			"name":     p.Name,
			"quantity": p.Quantity,
			"unit":     p.Unit,
		})
	}
	s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":     "stock_update",
		"action":   action,
		"products": items,
	})
}

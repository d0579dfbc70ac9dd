package service

import (
	"time"

	"github.com/adnane-lakhmaisse/OptiStock/internal/apperr"
	"github.com/adnane-lakhmaisse/OptiStock/internal/model"
	"github.com/adnane-lakhmaisse/OptiStock/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HistoryService reads the ledger for display: the transaction
// listing and the dashboard aggregates
type HistoryService interface {
	GetTransactions(associationID uuid.UUID, filter repository.TransactionFilter) ([]model.TransactionResponse, error)
	GetStockMovement(associationID uuid.UUID, days int) ([]repository.StockMovementData, error)
	GetDashboardStats(associationID uuid.UUID) (*repository.DashboardStats, error)
}

type historyService struct {
	txRepo repository.TransactionRepository
	logger *zap.Logger
}

func NewHistoryService(txRepo repository.TransactionRepository, logger *zap.Logger) HistoryService {
	return &historyService{txRepo: txRepo, logger: logger}
}

func (s *historyService) GetTransactions(associationID uuid.UUID, filter repository.TransactionFilter) ([]model.TransactionResponse, error) {
	transactions, err := s.txRepo.FindAll(associationID, filter)
	if err != nil {
		s.logger.Error("transaction list failed", zap.Error(err))
		return nil, apperr.ErrStoreFailure
	}

	responses := make([]model.TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = transactions[i].ToResponse()
	}
	return responses, nil
}

func (s *historyService) GetStockMovement(associationID uuid.UUID, days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	data, err := s.txRepo.GetStockMovement(associationID, startDate, endDate)
	if err != nil {
		s.logger.Error("stock movement query failed", zap.Error(err))
		return nil, apperr.ErrStoreFailure
	}
	return data, nil
}

func (s *historyService) GetDashboardStats(associationID uuid.UUID) (*repository.DashboardStats, error) {
	stats, err := s.txRepo.GetDashboardStats(associationID)
	if err != nil {
		s.logger.Error("dashboard stats query failed", zap.Error(err))
		return nil, apperr.ErrStoreFailure
	}
	return stats, nil
}

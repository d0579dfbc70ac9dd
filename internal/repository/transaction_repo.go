package repository

import (
	"time"

	"github.com/adnane-lakhmaisse/OptiStock/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionFilter narrows the history listing. Zero values mean
// "no filter".
type TransactionFilter struct {
	ProductID uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// StockMovementData untuk chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_count"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
}

type TransactionRepository interface {
	// Create appends a ledger row inside the supplied transaction.
	// Ledger rows are immutable; there is no update or delete.
	Create(tx *gorm.DB, transaction *model.Transaction) error
	FindAll(associationID uuid.UUID, filter TransactionFilter) ([]model.Transaction, error)
	GetStockMovement(associationID uuid.UUID, startDate, endDate time.Time) ([]StockMovementData, error)
	GetDashboardStats(associationID uuid.UUID) (*DashboardStats, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

func (r *transactionRepo) FindAll(associationID uuid.UUID, filter TransactionFilter) ([]model.Transaction, error) {
	query := r.db.
		Preload("Product").
		Preload("Product.Category").
		Where("association_id = ?", associationID)

	if filter.ProductID != uuid.Nil {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if !filter.StartDate.IsZero() {
		query = query.Where("created_at >= ?", filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query = query.Where("created_at <= ?", filter.EndDate)
	}

	var transactions []model.Transaction
	err := query.Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) GetStockMovement(associationID uuid.UUID, startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	// Aggregate transactions per day
	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN type = 'IN' THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN type = 'OUT' THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("association_id = ? AND created_at BETWEEN ? AND ?", associationID, startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

func (r *transactionRepo) GetDashboardStats(associationID uuid.UUID) (*DashboardStats, error) {
	var stats DashboardStats

	// Total Products
	if err := r.db.Model(&model.Product{}).
		Where("association_id = ?", associationID).
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	// Low Stock Count (quantity < 10)
	if err := r.db.Model(&model.Product{}).
		Where("association_id = ? AND quantity < ?", associationID, 10).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	// Total Valuation (SUM of quantity * price)
	var valuation decimal.NullDecimal
	if err := r.db.Model(&model.Product{}).
		Where("association_id = ?", associationID).
		Select("COALESCE(SUM(quantity * price), 0)").
		Scan(&valuation).Error; err != nil {
		return nil, err
	}
	if valuation.Valid {
		stats.TotalValuation = valuation.Decimal
	}

	return &stats, nil
}

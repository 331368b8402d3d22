package repository

import (
	"time"

	"go-shop-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionFilter narrows the ledger listing. Start/End are calendar days,
// both inclusive; Type filters on in/out/adjust when set.
type TransactionFilter struct {
	Start *time.Time
	End   *time.Time
	Type  model.TransactionType
}

// TransactionTotals are lifetime movement sums for the ledger page header.
type TransactionTotals struct {
	TotalIn  int64 `json:"total_in"`
	TotalOut int64 `json:"total_out"`
}

type StockTransactionRepository interface {
	Find(filter TransactionFilter) ([]model.StockTransaction, error)
	FindByID(id uuid.UUID) (*model.StockTransaction, error)
	FindRecent(limit int) ([]model.StockTransaction, error)
	Totals() (*TransactionTotals, error)
	CountByCreator(userID string) (int64, error)
}

type stockTransactionRepo struct {
	db *gorm.DB
}

func NewStockTransactionRepo(db *gorm.DB) StockTransactionRepository {
	return &stockTransactionRepo{db}
}

func (r *stockTransactionRepo) Find(filter TransactionFilter) ([]model.StockTransaction, error) {
	var transactions []model.StockTransaction
	q := r.db.Preload("Product").Order("created_at DESC")
	if filter.Start != nil && filter.End != nil {
		q = q.Where("created_at >= ? AND created_at < ?", *filter.Start, filter.End.AddDate(0, 0, 1))
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	err := q.Find(&transactions).Error
	return transactions, err
}

func (r *stockTransactionRepo) FindByID(id uuid.UUID) (*model.StockTransaction, error) {
	var transaction model.StockTransaction
	err := r.db.Preload("Product").First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *stockTransactionRepo) FindRecent(limit int) ([]model.StockTransaction, error) {
	var transactions []model.StockTransaction
	err := r.db.Preload("Product").Order("created_at DESC").Limit(limit).Find(&transactions).Error
	return transactions, err
}

func (r *stockTransactionRepo) Totals() (*TransactionTotals, error) {
	var totals TransactionTotals

	err := r.db.Model(&model.StockTransaction{}).
		Where("type = ?", model.TxIn).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&totals.TotalIn).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&model.StockTransaction{}).
		Where("type = ?", model.TxOut).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&totals.TotalOut).Error
	if err != nil {
		return nil, err
	}

	return &totals, nil
}

func (r *stockTransactionRepo) CountByCreator(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.StockTransaction{}).Where("created_by = ?", userID).Count(&count).Error
	return count, err
}

package service

import (
	"errors"
	"fmt"

	"go-shop-pos/internal/apperr"
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/internal/ws"
	"go-shop-pos/pkg/logger"
	"go-shop-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockService is the ledger: every quantity change goes through Apply, which
// writes the product update and its audit row as one unit.
type StockService interface {
	Apply(req *model.StockTransaction, userID, userName string) (*model.StockTransaction, error)
	ListTransactions(filter repository.TransactionFilter) ([]model.StockTransaction, *repository.TransactionTotals, error)
	GetTransaction(id uuid.UUID) (*model.StockTransaction, error)
	GetRecent(limit int) ([]model.StockTransaction, error)
}

type stockService struct {
	productRepo repository.ProductRepository
	txRepo      repository.StockTransactionRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewStockService(pRepo repository.ProductRepository, tRepo repository.StockTransactionRepository, db *gorm.DB, hub *ws.Hub) StockService {
	return &stockService{
		productRepo: pRepo,
		txRepo:      tRepo,
		db:          db,
		wsHub:       hub,
	}
}

// nextQuantity computes the product quantity after a ledger movement.
// "out" must never take the quantity below zero. "adjust" entries are recorded
// for the audit trail but do not move the quantity; corrections are expressed
// as explicit in/out pairs.
func nextQuantity(current int, txType model.TransactionType, qty int, productName string) (int, error) {
	switch txType {
	case model.TxIn:
		return current + qty, nil
	case model.TxOut:
		if current < qty {
			return 0, &apperr.InsufficientStockError{
				ProductName: productName,
				Requested:   qty,
				Available:   current,
			}
		}
		return current - qty, nil
	case model.TxAdjust:
		return current, nil
	}
	return 0, fmt.Errorf("unknown transaction type %q", txType)
}

// applyStockChange performs one ledger movement on the caller's transaction.
// The product must already be row-locked by the caller; its Quantity field is
// updated in place so repeated calls within one sale see the running balance.
func applyStockChange(tx *gorm.DB, productRepo repository.ProductRepository, product *model.Product, txType model.TransactionType, qty int, reference, notes, userID string) (*model.StockTransaction, error) {
	newQuantity, err := nextQuantity(product.Quantity, txType, qty, product.Name)
	if err != nil {
		return nil, err
	}

	if err := productRepo.UpdateQuantity(tx, product.ID, newQuantity, userID); err != nil {
		return nil, err
	}

	record := &model.StockTransaction{
		ProductID: product.ID,
		Type:      txType,
		Quantity:  qty,
		Reference: reference,
		Notes:     notes,
	}
	record.CreatedBy = userID
	record.UpdatedBy = userID
	if err := tx.Create(record).Error; err != nil {
		return nil, err
	}

	product.Quantity = newQuantity
	return record, nil
}

func (s *stockService) Apply(req *model.StockTransaction, userID, userName string) (*model.StockTransaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &apperr.ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag}
	}

	var product model.Product
	var record *model.StockTransaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Pessimistic lock: concurrent movements on the same product serialize
		// here, so two "out"s cannot both pass the balance check.
		if err := repository.LockForUpdate(tx).First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}

		created, err := applyStockChange(tx, s.productRepo, &product, req.Type, req.Quantity, req.Reference, req.Notes, userID)
		if err != nil {
			return err
		}
		record = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithModule("stock").WithFields(map[string]interface{}{
		"product": product.Name,
		"type":    req.Type,
		"qty":     req.Quantity,
		"user":    userName,
	}).Info("stock movement recorded")

	go func() {
		s.wsHub.Emit(ws.EventStockUpdate,
			fmt.Sprintf("%s recorded %s of %d x %s", userName, req.Type, req.Quantity, product.Name),
			map[string]interface{}{
				"product_id": product.ID,
				"sku":        product.SKU,
				"name":       product.Name,
				"new_stock":  product.Quantity,
			})
		if product.IsLowStock() {
			s.wsHub.Emit(ws.EventLowStock,
				fmt.Sprintf("%s is low on stock (%d left)", product.Name, product.Quantity),
				product.ToInfo())
		}
	}()

	return record, nil
}

func (s *stockService) ListTransactions(filter repository.TransactionFilter) ([]model.StockTransaction, *repository.TransactionTotals, error) {
	transactions, err := s.txRepo.Find(filter)
	if err != nil {
		return nil, nil, err
	}
	totals, err := s.txRepo.Totals()
	if err != nil {
		return nil, nil, err
	}
	return transactions, totals, nil
}

func (s *stockService) GetTransaction(id uuid.UUID) (*model.StockTransaction, error) {
	transaction, err := s.txRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return transaction, nil
}

func (s *stockService) GetRecent(limit int) ([]model.StockTransaction, error) {
	return s.txRepo.FindRecent(limit)
}

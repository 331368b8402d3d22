package service

import (
	"errors"
	"fmt"
	"time"

	"go-shop-pos/internal/apperr"
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/internal/ws"
	"go-shop-pos/pkg/logger"
	"go-shop-pos/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleLineRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type CreateSaleRequest struct {
	Items         []SaleLineRequest `json:"items"`
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	PaymentMethod string            `json:"payment_method" validate:"omitempty,oneof=cash card transfer credit"`
	PaymentStatus bool              `json:"payment_status"`
}

type SaleService interface {
	CreateSale(req *CreateSaleRequest, userID, userName string) (*model.Sale, error)
	ListSales(filter repository.SaleFilter) ([]model.Sale, error)
	GetSale(id uuid.UUID) (*model.Sale, error)
}

type saleService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewSaleService(pRepo repository.ProductRepository, sRepo repository.SaleRepository, db *gorm.DB, hub *ws.Hub) SaleService {
	return &saleService{
		productRepo: pRepo,
		saleRepo:    sRepo,
		db:          db,
		wsHub:       hub,
	}
}

// saleLine is a resolved, validated request line ready to price and apply.
type saleLine struct {
	product  *model.Product
	quantity int
}

// resolveSaleLines applies the permissive-skip policy: lines with a
// non-positive quantity or an unknown product (lookup reports ErrNotFound)
// are dropped, not fatal. Any other lookup error aborts the sale.
// A line asking for more than the product holds fails the whole sale.
// Lines are validated in request order; duplicates of one product share the
// same *Product, so the ledger sees their running balance later.
func resolveSaleLines(requests []SaleLineRequest, lookup func(uuid.UUID) (*model.Product, error)) ([]saleLine, error) {
	var lines []saleLine
	for _, req := range requests {
		if req.Quantity <= 0 {
			continue
		}
		product, err := lookup(req.ProductID)
		if errors.Is(err, apperr.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if req.Quantity > product.Quantity {
			return nil, &apperr.InsufficientStockError{
				ProductName: product.Name,
				Requested:   req.Quantity,
				Available:   product.Quantity,
			}
		}
		lines = append(lines, saleLine{product: product, quantity: req.Quantity})
	}
	if len(lines) == 0 {
		return nil, apperr.ErrNoValidItems
	}
	return lines, nil
}

// buildSaleItems snapshots each line at the product's current price and sums
// the invoice total. Decimal all the way down; no float drift.
func buildSaleItems(lines []saleLine) ([]model.SaleItem, decimal.Decimal) {
	items := make([]model.SaleItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		lineTotal := line.product.Price.Mul(decimal.NewFromInt(int64(line.quantity)))
		items = append(items, model.SaleItem{
			ProductID:   line.product.ID,
			ProductName: line.product.Name,
			Quantity:    line.quantity,
			Price:       line.product.Price,
			Total:       lineTotal,
		})
		total = total.Add(lineTotal)
	}
	return items, total
}

// formatInvoiceNumber stamps the invoice with the sale date and the persisted
// global sequence. The sequence does not reset per day; the date is cosmetic.
func formatInvoiceNumber(at time.Time, seq int64) string {
	return fmt.Sprintf("INV-%s-%04d", at.Format("20060102"), seq)
}

func (s *saleService) CreateSale(req *CreateSaleRequest, userID, userName string) (*model.Sale, error) {
	if len(req.Items) == 0 {
		return nil, apperr.ErrEmptySale
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &apperr.ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag}
	}

	var sale *model.Sale
	var lowStock []model.ProductInfo

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Resolve and row-lock every referenced product up front. The locks
		// are held until commit, so validation and the ledger writes below
		// are serialized per product: two concurrent sales of the last unit
		// cannot both pass the check.
		locked := make(map[uuid.UUID]*model.Product)
		lookup := func(id uuid.UUID) (*model.Product, error) {
			if p, ok := locked[id]; ok {
				return p, nil
			}
			var product model.Product
			if err := repository.LockForUpdate(tx).First(&product, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperr.ErrNotFound
				}
				return nil, err
			}
			locked[id] = &product
			return &product, nil
		}

		lines, err := resolveSaleLines(req.Items, lookup)
		if err != nil {
			return err
		}

		items, total := buildSaleItems(lines)

		seq, err := s.saleRepo.NextInvoiceSeq(tx)
		if err != nil {
			return err
		}
		invoiceNumber := formatInvoiceNumber(time.Now(), seq)

		newSale := &model.Sale{
			InvoiceNumber: invoiceNumber,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Items:         items,
			TotalAmount:   total,
			PaymentMethod: req.PaymentMethod,
			PaymentStatus: req.PaymentStatus,
		}
		if newSale.PaymentMethod == "" {
			newSale.PaymentMethod = model.PaymentCash
		}
		newSale.CreatedBy = userID
		newSale.UpdatedBy = userID
		if err := tx.Create(newSale).Error; err != nil {
			return err
		}

		// One "out" ledger entry per line, against the same locked products.
		// Duplicate lines of one product decrement the shared running balance,
		// so an overdraw missed by per-line validation still rolls back here.
		for _, line := range lines {
			_, err := applyStockChange(tx, s.productRepo, line.product, model.TxOut, line.quantity,
				fmt.Sprintf("Sale: %s", invoiceNumber),
				fmt.Sprintf("Sold to %s", newSale.CustomerName),
				userID)
			if err != nil {
				return err
			}
		}

		for _, product := range locked {
			if product.IsLowStock() {
				lowStock = append(lowStock, product.ToInfo())
			}
		}

		sale = newSale
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithModule("sale").WithFields(map[string]interface{}{
		"invoice": sale.InvoiceNumber,
		"total":   sale.TotalAmount.String(),
		"lines":   len(sale.Items),
		"user":    userName,
	}).Info("sale created")

	go func() {
		s.wsHub.Emit(ws.EventSaleCreated,
			fmt.Sprintf("%s created sale %s", userName, sale.InvoiceNumber),
			map[string]interface{}{
				"invoice_number": sale.InvoiceNumber,
				"total_amount":   sale.TotalAmount,
				"items":          len(sale.Items),
			})
		for _, info := range lowStock {
			s.wsHub.Emit(ws.EventLowStock,
				fmt.Sprintf("%s is low on stock (%d left)", info.Name, info.Stock),
				info)
		}
	}()

	return sale, nil
}

func (s *saleService) ListSales(filter repository.SaleFilter) ([]model.Sale, error) {
	return s.saleRepo.Find(filter)
}

func (s *saleService) GetSale(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return sale, nil
}

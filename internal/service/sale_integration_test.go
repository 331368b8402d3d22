package service_test

import (
	"os"
	"sync"
	"testing"

	"go-shop-pos/internal/apperr"
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/internal/service"
	"go-shop-pos/internal/ws"
	"go-shop-pos/pkg/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// These tests exercise the row-locking guarantees against a real Postgres.
// Set INTEGRATION_TESTS=1 and the usual DB_* env vars to run them.

func setupSaleService(t *testing.T) (*gorm.DB, service.SaleService, repository.ProductRepository) {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires postgres)")
	}

	db := database.ConnectDB()
	require.NoError(t, db.AutoMigrate(
		&model.Product{}, &model.StockTransaction{},
		&model.Sale{}, &model.InvoiceSequence{},
	))

	hub := ws.NewHub()
	go hub.Run()

	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	return db, service.NewSaleService(productRepo, saleRepo, db, hub), productRepo
}

func seedProduct(t *testing.T, repo repository.ProductRepository, quantity int, price string) *model.Product {
	t.Helper()
	p := &model.Product{
		SKU:          "TEST-" + uuid.NewString(),
		Name:         "Test " + uuid.NewString()[:8],
		Quantity:     quantity,
		Price:        decimal.RequireFromString(price),
		CostPrice:    decimal.RequireFromString(price),
		ReorderLevel: 0,
	}
	require.NoError(t, repo.Create(p))
	return p
}

func TestCreateSaleHappyPath(t *testing.T) {
	db, svc, productRepo := setupSaleService(t)

	p := seedProduct(t, productRepo, 10, "5.00")

	sale, err := svc.CreateSale(&service.CreateSaleRequest{
		Items:         []service.SaleLineRequest{{ProductID: p.ID, Quantity: 3}},
		CustomerName:  "Asha",
		PaymentMethod: model.PaymentCash,
		PaymentStatus: true,
	}, "tester", "Tester")
	require.NoError(t, err)

	assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("15.00")))
	require.Len(t, sale.Items, 1)
	assert.True(t, sale.Items[0].Total.Equal(decimal.RequireFromString("15.00")))

	reloaded, err := productRepo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.Quantity)

	var outCount int64
	require.NoError(t, db.Model(&model.StockTransaction{}).
		Where("product_id = ? AND type = ?", p.ID, model.TxOut).
		Count(&outCount).Error)
	assert.Equal(t, int64(1), outCount)
}

func TestCreateSaleInsufficientStockPersistsNothing(t *testing.T) {
	db, svc, productRepo := setupSaleService(t)

	p := seedProduct(t, productRepo, 2, "5.00")

	_, err := svc.CreateSale(&service.CreateSaleRequest{
		Items: []service.SaleLineRequest{{ProductID: p.ID, Quantity: 5}},
	}, "tester", "Tester")
	require.True(t, apperr.IsInsufficientStock(err))

	reloaded, err := productRepo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Quantity)

	var txCount int64
	require.NoError(t, db.Model(&model.StockTransaction{}).
		Where("product_id = ?", p.ID).
		Count(&txCount).Error)
	assert.Zero(t, txCount)
}

// Two simultaneous sales of the last unit: exactly one commits, the other
// fails with insufficient stock, and quantity never goes negative.
func TestConcurrentSalesOfLastUnit(t *testing.T) {
	_, svc, productRepo := setupSaleService(t)

	p := seedProduct(t, productRepo, 1, "9.99")

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.CreateSale(&service.CreateSaleRequest{
				Items: []service.SaleLineRequest{{ProductID: p.ID, Quantity: 1}},
			}, "tester", "Tester")
		}(i)
	}
	wg.Wait()

	succeeded, insufficient := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case apperr.IsInsufficientStock(err):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, insufficient)

	reloaded, err := productRepo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Quantity)
}

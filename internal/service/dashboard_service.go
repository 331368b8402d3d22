package service

import (
	"time"

	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"

	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	TotalProducts   int64 `json:"total_products"`
	LowStockCount   int64 `json:"low_stock_count"`
	OutOfStockCount int64 `json:"out_of_stock_count"`
	TotalCategories int64 `json:"total_categories"`
	TotalSuppliers  int64 `json:"total_suppliers"`

	TodaySales decimal.Decimal `json:"today_sales"`

	UserSalesCount        int64 `json:"user_sales_count"`
	UserProductsCount     int64 `json:"user_products_count"`
	UserTransactionsCount int64 `json:"user_transactions_count"`

	LowStockItems      []model.Product          `json:"low_stock_items"`
	RecentTransactions []model.StockTransaction `json:"recent_transactions"`
	SalesChart         []DailyPoint             `json:"sales_chart"`
}

type DashboardService interface {
	GetStats(userID string) (*DashboardStats, error)
}

type dashboardService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	saleRepo     repository.SaleRepository
	txRepo       repository.StockTransactionRepository
}

func NewDashboardService(
	pRepo repository.ProductRepository,
	cRepo repository.CategoryRepository,
	supRepo repository.SupplierRepository,
	sRepo repository.SaleRepository,
	tRepo repository.StockTransactionRepository,
) DashboardService {
	return &dashboardService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		supplierRepo: supRepo,
		saleRepo:     sRepo,
		txRepo:       tRepo,
	}
}

func (s *dashboardService) GetStats(userID string) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalProducts, err = s.productRepo.Count(); err != nil {
		return nil, err
	}
	if stats.LowStockCount, err = s.productRepo.CountLowStock(); err != nil {
		return nil, err
	}
	if stats.OutOfStockCount, err = s.productRepo.CountOutOfStock(); err != nil {
		return nil, err
	}
	if stats.TotalCategories, err = s.categoryRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalSuppliers, err = s.supplierRepo.Count(); err != nil {
		return nil, err
	}

	today := startOfDay(time.Now())
	if stats.TodaySales, err = s.saleRepo.TotalInRange(today, today.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}

	if stats.UserSalesCount, err = s.saleRepo.CountByCreator(userID); err != nil {
		return nil, err
	}
	if stats.UserProductsCount, err = s.productRepo.CountByCreator(userID); err != nil {
		return nil, err
	}
	if stats.UserTransactionsCount, err = s.txRepo.CountByCreator(userID); err != nil {
		return nil, err
	}

	if stats.LowStockItems, err = s.productRepo.FindLowStock(5); err != nil {
		return nil, err
	}
	if stats.RecentTransactions, err = s.txRepo.FindRecent(10); err != nil {
		return nil, err
	}

	// Last seven calendar days, today included.
	chartStart := today.AddDate(0, 0, -6)
	sales, err := s.saleRepo.FindInRange(chartStart, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	stats.SalesChart = dailySeries(sales, chartStart, today)

	return stats, nil
}

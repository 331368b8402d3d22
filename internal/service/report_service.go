package service

import (
	"sort"
	"time"

	"go-shop-pos/internal/apperr"
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/pkg/validator"

	"github.com/shopspring/decimal"
)

// ProductSales aggregates one product's sold quantity and revenue over a window.
type ProductSales struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	AvgPrice decimal.Decimal `json:"avg_price"`
}

type DailyPoint struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type ReportTotals struct {
	TotalSales       decimal.Decimal `json:"total_sales"`
	TransactionCount int             `json:"transaction_count"`
	AverageSale      decimal.Decimal `json:"average_sale"`
}

type SalesReport struct {
	StartDate     string           `json:"start_date"`
	EndDate       string           `json:"end_date"`
	Totals        ReportTotals     `json:"totals"`
	GrowthRate    decimal.Decimal  `json:"growth_rate"`
	TopProducts   []ProductSales   `json:"top_products"`
	DailySeries   []DailyPoint     `json:"daily_series"`
	PaymentCounts map[string]int   `json:"payment_counts"`
	Sales         []model.Sale     `json:"sales"`
}

// ReportService is strictly read-side over sales and expenses, except for
// GenerateProfitLoss which persists a report snapshot.
type ReportService interface {
	SalesReport(start, end time.Time, topLimit int) (*SalesReport, error)
	GenerateProfitLoss(req *model.ProfitLossReport, userID string) (*model.ProfitLossReport, error)
	ListProfitLoss() ([]model.ProfitLossReport, error)
}

type reportService struct {
	saleRepo    repository.SaleRepository
	expenseRepo repository.ExpenseRepository
	reportRepo  repository.ReportRepository
}

func NewReportService(sRepo repository.SaleRepository, eRepo repository.ExpenseRepository, rRepo repository.ReportRepository) ReportService {
	return &reportService{
		saleRepo:    sRepo,
		expenseRepo: eRepo,
		reportRepo:  rRepo,
	}
}

func salesTotals(sales []model.Sale) ReportTotals {
	totals := ReportTotals{TotalSales: decimal.Zero, AverageSale: decimal.Zero}
	for _, sale := range sales {
		totals.TotalSales = totals.TotalSales.Add(sale.TotalAmount)
	}
	totals.TransactionCount = len(sales)
	if totals.TransactionCount > 0 {
		totals.AverageSale = totals.TotalSales.Div(decimal.NewFromInt(int64(totals.TransactionCount))).Round(2)
	}
	return totals
}

// growthRate is the percentage change of current vs previous, rounded to two
// places. Zero previous yields zero, not infinity: there is nothing to grow from.
func growthRate(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2)
}

// topProducts folds every sale line into a per-product-name accumulator in a
// single pass, keeping encounter order so the quantity sort stays stable on ties.
func topProducts(sales []model.Sale, limit int) []ProductSales {
	index := make(map[string]*ProductSales)
	order := make([]*ProductSales, 0)

	for _, sale := range sales {
		for _, item := range sale.Items {
			acc, ok := index[item.ProductName]
			if !ok {
				acc = &ProductSales{
					Name:     item.ProductName,
					AvgPrice: item.Price,
					Revenue:  decimal.Zero,
				}
				index[item.ProductName] = acc
				order = append(order, acc)
			}
			acc.Quantity += item.Quantity
			acc.Revenue = acc.Revenue.Add(item.Total)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Quantity > order[j].Quantity
	})

	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}

	result := make([]ProductSales, len(order))
	for i, acc := range order {
		result[i] = *acc
	}
	return result
}

// dailySeries emits one point per calendar day, both endpoints inclusive,
// with zero totals for days without sales.
func dailySeries(sales []model.Sale, start, end time.Time) []DailyPoint {
	byDay := make(map[string]decimal.Decimal)
	for _, sale := range sales {
		key := sale.CreatedAt.Format("2006-01-02")
		byDay[key] = byDay[key].Add(sale.TotalAmount)
	}

	var series []DailyPoint
	for day := startOfDay(start); !day.After(startOfDay(end)); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		total, ok := byDay[key]
		if !ok {
			total = decimal.Zero
		}
		series = append(series, DailyPoint{Date: key, Total: total})
	}
	return series
}

func paymentCounts(sales []model.Sale) map[string]int {
	counts := map[string]int{
		model.PaymentCash:     0,
		model.PaymentCard:     0,
		model.PaymentTransfer: 0,
		model.PaymentCredit:   0,
	}
	for _, sale := range sales {
		counts[sale.PaymentMethod]++
	}
	return counts
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *reportService) SalesReport(start, end time.Time, topLimit int) (*SalesReport, error) {
	start = startOfDay(start)
	endExclusive := startOfDay(end).AddDate(0, 0, 1)

	sales, err := s.saleRepo.FindInRange(start, endExclusive)
	if err != nil {
		return nil, err
	}

	// Previous window of equal length, immediately preceding.
	window := endExclusive.Sub(start)
	previousTotal, err := s.saleRepo.TotalInRange(start.Add(-window), start)
	if err != nil {
		return nil, err
	}

	totals := salesTotals(sales)
	return &SalesReport{
		StartDate:     start.Format("2006-01-02"),
		EndDate:       end.Format("2006-01-02"),
		Totals:        totals,
		GrowthRate:    growthRate(totals.TotalSales, previousTotal),
		TopProducts:   topProducts(sales, topLimit),
		DailySeries:   dailySeries(sales, start, end),
		PaymentCounts: paymentCounts(sales),
		Sales:         sales,
	}, nil
}

func (s *reportService) GenerateProfitLoss(req *model.ProfitLossReport, userID string) (*model.ProfitLossReport, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &apperr.ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag}
	}

	start := startOfDay(req.StartDate)
	endExclusive := startOfDay(req.EndDate).AddDate(0, 0, 1)

	totalSales, err := s.saleRepo.TotalInRange(start, endExclusive)
	if err != nil {
		return nil, err
	}
	totalPurchases, err := s.expenseRepo.TotalInRange(start, endExclusive, model.ExpensePurchase)
	if err != nil {
		return nil, err
	}
	totalExpenses, err := s.expenseRepo.TotalInRange(start, endExclusive, "")
	if err != nil {
		return nil, err
	}

	req.TotalSales = totalSales
	req.TotalPurchases = totalPurchases
	req.TotalExpenses = totalExpenses
	req.GrossProfit = totalSales.Sub(totalPurchases)
	// Net takes the remaining (non-purchase) expenses off the gross.
	req.NetProfit = req.GrossProfit.Sub(totalExpenses.Sub(totalPurchases))
	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.reportRepo.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *reportService) ListProfitLoss() ([]model.ProfitLossReport, error) {
	return s.reportRepo.FindAll()
}

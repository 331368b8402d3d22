package service

import (
	"testing"
	"time"

	"go-shop-pos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleAt(t time.Time, total string, items ...model.SaleItem) model.Sale {
	s := model.Sale{
		Items:         items,
		TotalAmount:   decimal.RequireFromString(total),
		PaymentMethod: model.PaymentCash,
	}
	s.CreatedAt = t
	return s
}

func item(name string, qty int, price string) model.SaleItem {
	p := decimal.RequireFromString(price)
	return model.SaleItem{
		ProductName: name,
		Quantity:    qty,
		Price:       p,
		Total:       p.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func TestSalesTotals(t *testing.T) {
	day := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	totals := salesTotals([]model.Sale{
		saleAt(day, "10.00"),
		saleAt(day, "20.00"),
		saleAt(day, "5.50"),
	})

	assert.True(t, totals.TotalSales.Equal(decimal.RequireFromString("35.50")))
	assert.Equal(t, 3, totals.TransactionCount)
	assert.True(t, totals.AverageSale.Equal(decimal.RequireFromString("11.83")), "got %s", totals.AverageSale)
}

func TestSalesTotalsEmpty(t *testing.T) {
	totals := salesTotals(nil)
	assert.True(t, totals.TotalSales.IsZero())
	assert.Equal(t, 0, totals.TransactionCount)
	assert.True(t, totals.AverageSale.IsZero())
}

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		previous string
		want     string
	}{
		{name: "Growth", current: "150", previous: "100", want: "50"},
		{name: "Decline", current: "50", previous: "100", want: "-50"},
		{name: "Flat", current: "100", previous: "100", want: "0"},
		{name: "ZeroPreviousIsZeroNotInfinity", current: "100", previous: "0", want: "0"},
		{name: "Fractional", current: "110", previous: "300", want: "-63.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := growthRate(decimal.RequireFromString(tt.current), decimal.RequireFromString(tt.previous))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestTopProducts(t *testing.T) {
	day := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	sales := []model.Sale{
		saleAt(day, "0", item("Soap", 2, "5.00"), item("Rice", 1, "12.50")),
		saleAt(day, "0", item("Soap", 3, "5.00"), item("Oil", 1, "8.00")),
	}

	top := topProducts(sales, 10)
	require.Len(t, top, 3)

	// Soap sold 2+3=5 across both sales, one aggregated entry.
	assert.Equal(t, "Soap", top[0].Name)
	assert.Equal(t, 5, top[0].Quantity)
	assert.True(t, top[0].Revenue.Equal(decimal.RequireFromString("25.00")))

	// Rice and Oil tie on quantity 1: encounter order breaks the tie.
	assert.Equal(t, "Rice", top[1].Name)
	assert.Equal(t, "Oil", top[2].Name)
}

func TestTopProductsLimit(t *testing.T) {
	day := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	sales := []model.Sale{
		saleAt(day, "0", item("A", 5, "1.00"), item("B", 4, "1.00"), item("C", 3, "1.00")),
	}

	top := topProducts(sales, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "A", top[0].Name)
	assert.Equal(t, "B", top[1].Name)
}

func TestDailySeriesInclusiveEndpoints(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)

	sales := []model.Sale{
		saleAt(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC), "10.00"),
		saleAt(time.Date(2024, 5, 3, 18, 0, 0, 0, time.UTC), "7.50"),
		saleAt(time.Date(2024, 5, 3, 19, 0, 0, 0, time.UTC), "2.50"),
	}

	series := dailySeries(sales, start, end)
	require.Len(t, series, 3)

	assert.Equal(t, "2024-05-01", series[0].Date)
	assert.True(t, series[0].Total.Equal(decimal.RequireFromString("10.00")))

	// The gap day is present with a zero total.
	assert.Equal(t, "2024-05-02", series[1].Date)
	assert.True(t, series[1].Total.IsZero())

	assert.Equal(t, "2024-05-03", series[2].Date)
	assert.True(t, series[2].Total.Equal(decimal.RequireFromString("10.00")))
}

func TestDailySeriesSingleDay(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	series := dailySeries(nil, day, day)
	require.Len(t, series, 1)
	assert.Equal(t, "2024-05-01", series[0].Date)
}

func TestPaymentCounts(t *testing.T) {
	day := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	cash := saleAt(day, "1")
	card := saleAt(day, "1")
	card.PaymentMethod = model.PaymentCard

	counts := paymentCounts([]model.Sale{cash, cash, card})
	assert.Equal(t, 2, counts[model.PaymentCash])
	assert.Equal(t, 1, counts[model.PaymentCard])
	assert.Equal(t, 0, counts[model.PaymentTransfer])
	assert.Equal(t, 0, counts[model.PaymentCredit])
}

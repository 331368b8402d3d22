package service

import (
	"errors"
	"testing"
	"time"

	"go-shop-pos/internal/apperr"
	"go-shop-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(name string, quantity int, price string) *model.Product {
	p := &model.Product{
		Name:     name,
		Quantity: quantity,
		Price:    decimal.RequireFromString(price),
	}
	p.ID = uuid.New()
	return p
}

func lookupFrom(products ...*model.Product) func(uuid.UUID) (*model.Product, error) {
	index := make(map[uuid.UUID]*model.Product)
	for _, p := range products {
		index[p.ID] = p
	}
	return func(id uuid.UUID) (*model.Product, error) {
		p, ok := index[id]
		if !ok {
			return nil, apperr.ErrNotFound
		}
		return p, nil
	}
}

func TestResolveSaleLines(t *testing.T) {
	soap := testProduct("Soap", 10, "5.00")
	rice := testProduct("Rice", 3, "12.50")

	t.Run("SkipsNonPositiveAndUnknown", func(t *testing.T) {
		requests := []SaleLineRequest{
			{ProductID: soap.ID, Quantity: 0},          // skipped: non-positive
			{ProductID: uuid.New(), Quantity: 2},       // skipped: unknown product
			{ProductID: soap.ID, Quantity: -1},         // skipped: non-positive
			{ProductID: rice.ID, Quantity: 2},          // kept
		}

		lines, err := resolveSaleLines(requests, lookupFrom(soap, rice))
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, rice, lines[0].product)
		assert.Equal(t, 2, lines[0].quantity)
	})

	t.Run("InsufficientStockFailsWholeSale", func(t *testing.T) {
		requests := []SaleLineRequest{
			{ProductID: soap.ID, Quantity: 3}, // valid
			{ProductID: rice.ID, Quantity: 5}, // over the 3 available
		}

		lines, err := resolveSaleLines(requests, lookupFrom(soap, rice))
		assert.Nil(t, lines)
		require.Error(t, err)
		require.True(t, apperr.IsInsufficientStock(err))
		assert.Contains(t, err.Error(), "Rice")
	})

	t.Run("AllSkippedIsNoValidItems", func(t *testing.T) {
		requests := []SaleLineRequest{
			{ProductID: uuid.New(), Quantity: 1},
			{ProductID: soap.ID, Quantity: 0},
		}

		_, err := resolveSaleLines(requests, lookupFrom(soap))
		assert.ErrorIs(t, err, apperr.ErrNoValidItems)
	})

	t.Run("StorageErrorFailsSaleNotSkips", func(t *testing.T) {
		// Only a missing product is skippable; a failing lookup must abort
		// the sale instead of silently dropping the line.
		dbErr := errors.New("connection reset by peer")
		lookup := func(id uuid.UUID) (*model.Product, error) {
			if id == soap.ID {
				return soap, nil
			}
			return nil, dbErr
		}
		requests := []SaleLineRequest{
			{ProductID: soap.ID, Quantity: 1},
			{ProductID: rice.ID, Quantity: 1},
		}

		lines, err := resolveSaleLines(requests, lookup)
		assert.Nil(t, lines)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("ExactStockIsAllowed", func(t *testing.T) {
		requests := []SaleLineRequest{{ProductID: rice.ID, Quantity: 3}}

		lines, err := resolveSaleLines(requests, lookupFrom(rice))
		require.NoError(t, err)
		assert.Len(t, lines, 1)
	})
}

func TestBuildSaleItems(t *testing.T) {
	soap := testProduct("Soap", 10, "5.00")
	rice := testProduct("Rice", 8, "12.50")

	items, total := buildSaleItems([]saleLine{
		{product: soap, quantity: 3},
		{product: rice, quantity: 2},
	})

	require.Len(t, items, 2)

	assert.Equal(t, "Soap", items[0].ProductName)
	assert.Equal(t, 3, items[0].Quantity)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, items[0].Total.Equal(decimal.RequireFromString("15.00")))

	assert.True(t, items[1].Total.Equal(decimal.RequireFromString("25.00")))

	// Invoice total equals the sum of line totals, exactly.
	assert.True(t, total.Equal(decimal.RequireFromString("40.00")))
}

func TestBuildSaleItemsDecimalPrecision(t *testing.T) {
	// 0.1 + 0.2 style drift must not appear in totals.
	p := testProduct("Candy", 100, "0.10")
	q := testProduct("Gum", 100, "0.20")

	_, total := buildSaleItems([]saleLine{
		{product: p, quantity: 1},
		{product: q, quantity: 1},
	})
	assert.True(t, total.Equal(decimal.RequireFromString("0.30")), "got %s", total)
}

func TestFormatInvoiceNumber(t *testing.T) {
	at := time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "INV-20240307-0001", formatInvoiceNumber(at, 1))
	assert.Equal(t, "INV-20240307-0042", formatInvoiceNumber(at, 42))
	// The sequence is global and keeps growing past four digits.
	assert.Equal(t, "INV-20240307-10001", formatInvoiceNumber(at, 10001))
}

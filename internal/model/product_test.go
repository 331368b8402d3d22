package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductIsLowStock(t *testing.T) {
	p := Product{Quantity: 5, ReorderLevel: 10}
	assert.True(t, p.IsLowStock())

	// At the reorder level counts as low.
	p.Quantity = 10
	assert.True(t, p.IsLowStock())

	p.Quantity = 11
	assert.False(t, p.IsLowStock())
}

func TestProductTotalValue(t *testing.T) {
	p := Product{
		Quantity:  4,
		CostPrice: decimal.RequireFromString("2.25"),
	}
	assert.True(t, p.TotalValue().Equal(decimal.RequireFromString("9.00")))

	p.Quantity = 0
	assert.True(t, p.TotalValue().IsZero())
}

func TestProductToInfo(t *testing.T) {
	p := Product{
		Name:     "Soap",
		Unit:     UnitPiece,
		Quantity: 7,
		Price:    decimal.RequireFromString("5.00"),
	}

	info := p.ToInfo()
	assert.Equal(t, "Soap", info.Name)
	assert.Equal(t, 7, info.Stock)
	assert.Equal(t, UnitPiece, info.Unit)
	assert.True(t, info.Price.Equal(p.Price))
}

package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Units of measure a product can be sold in.
const (
	UnitPiece = "piece"
	UnitKg    = "kg"
	UnitGram  = "g"
	UnitLiter = "l"
	UnitMl    = "ml"
	UnitPack  = "pack"
	UnitBox   = "box"
)

type Product struct {
	BaseModel
	SKU         string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name        string     `gorm:"type:varchar(200);not null" json:"name" validate:"required"`
	Description string     `gorm:"type:text" json:"description"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category    *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`

	Unit         string          `gorm:"type:varchar(20);default:piece" json:"unit" validate:"omitempty,oneof=piece kg g l ml pack box"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost_price"`
	Quantity     int             `gorm:"default:0" json:"quantity"`
	ReorderLevel int             `gorm:"default:10" json:"reorder_level"`
}

// IsLowStock reports whether the product is at or below its reorder level.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.ReorderLevel
}

// TotalValue is the stock valuation at cost price.
func (p *Product) TotalValue() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// ProductInfo is the JSON lookup payload used by the POS sale form.
type ProductInfo struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
	Unit  string          `json:"unit"`
}

func (p *Product) ToInfo() ProductInfo {
	return ProductInfo{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Quantity,
		Unit:  p.Unit,
	}
}

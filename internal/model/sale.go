package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at the point of sale.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentCredit   = "credit"
)

// SaleItem is a line snapshot captured at sale time. Product name and price
// are denormalized on purpose: later product edits must not rewrite history.
type SaleItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// Sale is an immutable invoice. Items are stored as an embedded JSON blob,
// not normalized rows; the sale owns them outright.
type Sale struct {
	BaseModel
	InvoiceNumber string `gorm:"type:varchar(50);uniqueIndex;not null" json:"invoice_number"`
	CustomerName  string `gorm:"type:varchar(200)" json:"customer_name"`
	CustomerPhone string `gorm:"type:varchar(20)" json:"customer_phone"`

	Items         []SaleItem      `gorm:"serializer:json" json:"items"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentMethod string          `gorm:"type:varchar(20);default:cash" json:"payment_method" validate:"omitempty,oneof=cash card transfer credit"`
	PaymentStatus bool            `gorm:"default:true" json:"payment_status"`
}

// InvoiceSequence is the persisted monotonic counter behind invoice numbers.
// A single row (ID 1) is incremented under lock inside each sale's transaction.
// The counter is global, not per-day: the date in the invoice format is a stamp,
// not a partition.
type InvoiceSequence struct {
	ID      uint  `gorm:"primaryKey"`
	LastSeq int64 `gorm:"not null;default:0"`
}

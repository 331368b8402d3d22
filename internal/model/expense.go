package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpenseCategory struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
}

// Expense types and payment channels mirror the bookkeeping categories
// used in the profit & loss report ("purchase" feeds gross profit).
const (
	ExpenseOperational = "operational"
	ExpensePurchase    = "purchase"
	ExpenseSalary      = "salary"
	ExpenseRent        = "rent"
	ExpenseUtility     = "utility"
	ExpenseMarketing   = "marketing"
	ExpenseMaintenance = "maintenance"
	ExpenseOther       = "other"
)

const (
	ExpensePaidCash   = "cash"
	ExpensePaidBank   = "bank"
	ExpensePaidCard   = "card"
	ExpensePaidMobile = "mobile"
)

type Expense struct {
	BaseModel
	CategoryID *uuid.UUID       `gorm:"type:uuid;index" json:"category_id"`
	Category   *ExpenseCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`

	ExpenseType     string          `gorm:"type:varchar(50);default:operational" json:"expense_type" validate:"omitempty,oneof=operational purchase salary rent utility marketing maintenance other"`
	Description     string          `gorm:"type:text;not null" json:"description" validate:"required"`
	Amount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod   string          `gorm:"type:varchar(50);default:cash" json:"payment_method" validate:"omitempty,oneof=cash bank card mobile"`
	ReferenceNumber string          `gorm:"type:varchar(100)" json:"reference_number"`
	Date            time.Time       `gorm:"type:date;not null;index" json:"date" validate:"required"`
}

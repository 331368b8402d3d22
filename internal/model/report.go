package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report periods for persisted profit & loss snapshots.
const (
	PeriodDaily     = "daily"
	PeriodWeekly    = "weekly"
	PeriodMonthly   = "monthly"
	PeriodQuarterly = "quarterly"
	PeriodYearly    = "yearly"
	PeriodCustom    = "custom"
)

// ProfitLossReport is a generated snapshot of sales vs spend over a window.
// Gross profit = sales - purchases; net profit = gross - remaining expenses.
type ProfitLossReport struct {
	BaseModel
	Period    string    `gorm:"type:varchar(20);not null" json:"period" validate:"required,oneof=daily weekly monthly quarterly yearly custom"`
	StartDate time.Time `gorm:"type:date;not null;index" json:"start_date" validate:"required"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date" validate:"required"`

	TotalSales     decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_sales"`
	TotalPurchases decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_purchases"`
	TotalExpenses  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_expenses"`
	GrossProfit    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"gross_profit"`
	NetProfit      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"net_profit"`

	Notes string `gorm:"type:text" json:"notes"`
}

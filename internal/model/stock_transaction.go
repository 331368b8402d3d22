package model

import "github.com/google/uuid"

type TransactionType string

const (
	TxIn     TransactionType = "in"
	TxOut    TransactionType = "out"
	TxAdjust TransactionType = "adjust"
)

// StockTransaction is an append-only audit record of a stock movement.
// Rows are never updated or deleted once written; deleting a product
// cascades its history away with it.
type StockTransaction struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty" validate:"-"`

	Type      TransactionType `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=in out adjust"`
	Quantity  int             `gorm:"not null" json:"quantity" validate:"required,gt=0"` // positive magnitude, direction implied by Type
	Reference string          `gorm:"type:varchar(100)" json:"reference"`
	Notes     string          `gorm:"type:text" json:"notes"`
}

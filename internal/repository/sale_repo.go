package repository

import (
	"time"

	"go-shop-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleFilter narrows the invoice listing. Start/End are inclusive calendar
// days; Search matches invoice number, customer name, or phone.
type SaleFilter struct {
	Start  *time.Time
	End    *time.Time
	Search string
}

type SaleRepository interface {
	Find(filter SaleFilter) ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindInRange(start, end time.Time) ([]model.Sale, error)
	TotalInRange(start, end time.Time) (decimal.Decimal, error)
	NextInvoiceSeq(tx *gorm.DB) (int64, error)
	CountByCreator(userID string) (int64, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Find(filter SaleFilter) ([]model.Sale, error) {
	var sales []model.Sale
	q := r.db.Order("created_at DESC")
	if filter.Start != nil && filter.End != nil {
		q = q.Where("created_at >= ? AND created_at < ?", *filter.Start, filter.End.AddDate(0, 0, 1))
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("invoice_number ILIKE ? OR customer_name ILIKE ? OR customer_phone ILIKE ?", like, like, like)
	}
	err := q.Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.First(&sale, "id = ?", id).Error
	return &sale, err
}

// FindInRange returns sales created within [start, end); callers pass an
// exclusive end bound.
func (r *saleRepo) FindInRange(start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) TotalInRange(start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&model.Sale{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

// NextInvoiceSeq increments the persisted invoice counter under a row lock.
// Must run on the sale's own transaction so a rolled-back sale does not burn
// a visible gap mid-flight (gaps after rollback are fine, duplicates are not).
func (r *saleRepo) NextInvoiceSeq(tx *gorm.DB) (int64, error) {
	var seq model.InvoiceSequence
	if err := LockForUpdate(tx).
		Where(model.InvoiceSequence{ID: 1}).
		FirstOrCreate(&seq).Error; err != nil {
		return 0, err
	}

	seq.LastSeq++
	if err := tx.Model(&model.InvoiceSequence{}).
		Where("id = ?", seq.ID).
		Update("last_seq", seq.LastSeq).Error; err != nil {
		return 0, err
	}
	return seq.LastSeq, nil
}

func (r *saleRepo) CountByCreator(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Sale{}).Where("created_by = ?", userID).Count(&count).Error
	return count, err
}

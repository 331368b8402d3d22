package repository

import (
	"go-shop-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(report *model.ProfitLossReport) error
	FindAll() ([]model.ProfitLossReport, error)
	FindByID(id uuid.UUID) (*model.ProfitLossReport, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) Create(report *model.ProfitLossReport) error {
	return r.db.Create(report).Error
}

func (r *reportRepo) FindAll() ([]model.ProfitLossReport, error) {
	var reports []model.ProfitLossReport
	err := r.db.Order("start_date DESC").Find(&reports).Error
	return reports, err
}

func (r *reportRepo) FindByID(id uuid.UUID) (*model.ProfitLossReport, error) {
	var report model.ProfitLossReport
	err := r.db.First(&report, "id = ?", id).Error
	return &report, err
}

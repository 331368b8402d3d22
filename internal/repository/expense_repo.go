package repository

import (
	"time"

	"go-shop-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseFilter narrows the expense listing by date (inclusive) and type.
type ExpenseFilter struct {
	Start *time.Time
	End   *time.Time
	Type  string
}

type ExpenseRepository interface {
	Create(expense *model.Expense) error
	Find(filter ExpenseFilter) ([]model.Expense, error)
	FindByID(id uuid.UUID) (*model.Expense, error)
	Update(expense *model.Expense) error
	Delete(id uuid.UUID) error
	TotalInRange(start, end time.Time, expenseType string) (decimal.Decimal, error)
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepository {
	return &expenseRepo{db}
}

func (r *expenseRepo) Create(expense *model.Expense) error {
	return r.db.Create(expense).Error
}

func (r *expenseRepo) Find(filter ExpenseFilter) ([]model.Expense, error) {
	var expenses []model.Expense
	q := r.db.Preload("Category").Order("date DESC, created_at DESC")
	if filter.Start != nil && filter.End != nil {
		q = q.Where("date >= ? AND date < ?", *filter.Start, filter.End.AddDate(0, 0, 1))
	}
	if filter.Type != "" {
		q = q.Where("expense_type = ?", filter.Type)
	}
	err := q.Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) FindByID(id uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	err := r.db.Preload("Category").First(&expense, "id = ?", id).Error
	return &expense, err
}

func (r *expenseRepo) Update(expense *model.Expense) error {
	return r.db.Save(expense).Error
}

func (r *expenseRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Expense{}, "id = ?", id).Error
}

// TotalInRange sums expenses dated within [start, end); expenseType optional.
func (r *expenseRepo) TotalInRange(start, end time.Time, expenseType string) (decimal.Decimal, error) {
	var total decimal.Decimal
	q := r.db.Model(&model.Expense{}).
		Where("date >= ? AND date < ?", start, end)
	if expenseType != "" {
		q = q.Where("expense_type = ?", expenseType)
	}
	err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

type ExpenseCategoryRepository interface {
	Create(category *model.ExpenseCategory) error
	FindAll() ([]model.ExpenseCategory, error)
	FindByID(id uuid.UUID) (*model.ExpenseCategory, error)
	FindByName(name string) (*model.ExpenseCategory, error)
}

type expenseCategoryRepo struct {
	db *gorm.DB
}

func NewExpenseCategoryRepo(db *gorm.DB) ExpenseCategoryRepository {
	return &expenseCategoryRepo{db}
}

func (r *expenseCategoryRepo) Create(category *model.ExpenseCategory) error {
	return r.db.Create(category).Error
}

func (r *expenseCategoryRepo) FindAll() ([]model.ExpenseCategory, error) {
	var categories []model.ExpenseCategory
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *expenseCategoryRepo) FindByID(id uuid.UUID) (*model.ExpenseCategory, error) {
	var category model.ExpenseCategory
	err := r.db.First(&category, "id = ?", id).Error
	return &category, err
}

func (r *expenseCategoryRepo) FindByName(name string) (*model.ExpenseCategory, error) {
	var category model.ExpenseCategory
	err := r.db.First(&category, "name = ?", name).Error
	return &category, err
}

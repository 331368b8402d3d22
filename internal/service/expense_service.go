package service

import (
	"errors"

	"go-shop-pos/internal/apperr"
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseService interface {
	CreateExpense(req *model.Expense, userID string) error
	UpdateExpense(id uuid.UUID, req *model.Expense, userID string) (*model.Expense, error)
	DeleteExpense(id uuid.UUID) error
	ListExpenses(filter repository.ExpenseFilter) ([]model.Expense, error)
	GetExpense(id uuid.UUID) (*model.Expense, error)

	CreateCategory(req *model.ExpenseCategory, userID string) error
	ListCategories() ([]model.ExpenseCategory, error)
}

type expenseService struct {
	expenseRepo  repository.ExpenseRepository
	categoryRepo repository.ExpenseCategoryRepository
}

func NewExpenseService(eRepo repository.ExpenseRepository, cRepo repository.ExpenseCategoryRepository) ExpenseService {
	return &expenseService{
		expenseRepo:  eRepo,
		categoryRepo: cRepo,
	}
}

func (s *expenseService) CreateExpense(req *model.Expense, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return &apperr.ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
			return apperr.ErrNotFound
		}
	}
	if req.ExpenseType == "" {
		req.ExpenseType = model.ExpenseOperational
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = model.ExpensePaidCash
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.expenseRepo.Create(req)
}

func (s *expenseService) UpdateExpense(id uuid.UUID, req *model.Expense, userID string) (*model.Expense, error) {
	existing, err := s.expenseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	existing.CategoryID = req.CategoryID
	existing.ExpenseType = req.ExpenseType
	existing.Description = req.Description
	existing.Amount = req.Amount
	existing.PaymentMethod = req.PaymentMethod
	existing.ReferenceNumber = req.ReferenceNumber
	existing.Date = req.Date
	existing.UpdatedBy = userID

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return nil, &apperr.ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag}
	}

	if err := s.expenseRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *expenseService) DeleteExpense(id uuid.UUID) error {
	if _, err := s.expenseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.expenseRepo.Delete(id)
}

func (s *expenseService) ListExpenses(filter repository.ExpenseFilter) ([]model.Expense, error) {
	return s.expenseRepo.Find(filter)
}

func (s *expenseService) GetExpense(id uuid.UUID) (*model.Expense, error) {
	expense, err := s.expenseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) CreateCategory(req *model.ExpenseCategory, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return &apperr.ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag}
	}
	existing, _ := s.categoryRepo.FindByName(req.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return apperr.ErrNameExists
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.categoryRepo.Create(req)
}

func (s *expenseService) ListCategories() ([]model.ExpenseCategory, error) {
	return s.categoryRepo.FindAll()
}

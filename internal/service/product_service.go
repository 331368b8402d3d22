package service

import (
	"errors"
	"fmt"

	"go-shop-pos/internal/apperr"
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/internal/ws"
	"go-shop-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(req *model.Product, userID, userName string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetProducts(search string) ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetProductInfo(id uuid.UUID) (*model.ProductInfo, error)
	GetSellable() ([]model.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewProductService(pRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) ProductService {
	return &productService{
		productRepo: pRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *productService) CreateProduct(req *model.Product, userID, userName string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return &apperr.ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag}
	}

	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return apperr.ErrSKUExists
	}

	if req.Unit == "" {
		req.Unit = model.UnitPiece
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	go s.wsHub.Emit(ws.EventStockUpdate,
		fmt.Sprintf("%s created product '%s'", userName, req.Name),
		req.ToInfo())

	return nil
}

func (s *productService) UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error) {
	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		// Lock the row: a concurrent sale must not interleave with this edit.
		if err := repository.LockForUpdate(tx).First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}

		existing.Name = req.Name
		existing.SKU = req.SKU
		existing.Description = req.Description
		existing.CategoryID = req.CategoryID
		existing.Unit = req.Unit
		existing.Price = req.Price
		existing.CostPrice = req.CostPrice
		existing.Quantity = req.Quantity
		existing.ReorderLevel = req.ReorderLevel
		existing.UpdatedBy = userID

		if errs := validator.ValidateStruct(&existing); len(errs) > 0 {
			return &apperr.ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag}
		}

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.wsHub.Emit(ws.EventStockUpdate,
		fmt.Sprintf("%s updated product '%s'", userName, updated.Name),
		updated.ToInfo())

	return updated, nil
}

func (s *productService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.productRepo.Delete(id)
}

func (s *productService) GetProducts(search string) ([]model.Product, error) {
	return s.productRepo.FindAll(search)
}

func (s *productService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// GetProductInfo backs the POS sale form's price/stock lookup.
func (s *productService) GetProductInfo(id uuid.UUID) (*model.ProductInfo, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	info := product.ToInfo()
	return &info, nil
}

func (s *productService) GetSellable() ([]model.Product, error) {
	return s.productRepo.FindInStock()
}

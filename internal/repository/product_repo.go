package repository

import (
	"go-shop-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(search string) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindInStock() ([]model.Product, error)
	FindLowStock(limit int) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int, updatedBy string) error
	Count() (int64, error)
	CountLowStock() (int64, error)
	CountOutOfStock() (int64, error)
	CountByCreator(userID string) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(search string) ([]model.Product, error) {
	var products []model.Product
	q := r.db.Preload("Category")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR sku ILIKE ? OR description ILIKE ?", like, like, like)
	}
	err := q.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

func (r *productRepo) FindInStock() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("quantity > 0").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindLowStock(limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("quantity <= reorder_level").Order("quantity ASC").Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	// Stock transactions cascade with the product; sales keep their snapshots.
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

// UpdateQuantity runs on the caller's transaction so the quantity write and the
// ledger row commit or roll back together.
func (r *productRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   newQuantity,
			"updated_by": updatedBy,
		}).Error
}

func (r *productRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepo) CountLowStock() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("quantity <= reorder_level").Count(&count).Error
	return count, err
}

func (r *productRepo) CountOutOfStock() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("quantity = 0").Count(&count).Error
	return count, err
}

func (r *productRepo) CountByCreator(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("created_by = ?", userID).Count(&count).Error
	return count, err
}

package handler

import (
	"errors"

	"go-shop-pos/internal/apperr"
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogHandler serves category and supplier CRUD straight off the
// repositories; there is no business logic beyond uniqueness to justify a
// service in between.
type CatalogHandler struct {
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

func NewCatalogHandler(cRepo repository.CategoryRepository, sRepo repository.SupplierRepository) *CatalogHandler {
	return &CatalogHandler{categoryRepo: cRepo, supplierRepo: sRepo}
}

func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.categoryRepo.FindAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(categories)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&category); len(errs) > 0 {
		return fail(c, &apperr.ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag})
	}

	existing, _ := h.categoryRepo.FindByName(category.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return fail(c, apperr.ErrNameExists)
	}

	category.CreatedBy = getUserID(c)
	category.UpdatedBy = getUserID(c)
	if err := h.categoryRepo.Create(&category); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Category created", "data": category})
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	existing, err := h.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, apperr.ErrNotFound)
		}
		return fail(c, err)
	}

	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	existing.Name = category.Name
	existing.Description = category.Description
	existing.UpdatedBy = getUserID(c)
	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return fail(c, &apperr.ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag})
	}

	if err := h.categoryRepo.Update(existing); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category updated", "data": existing})
}

// DeleteCategory detaches products (their category goes NULL) rather than
// deleting them.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	if _, err := h.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, apperr.ErrNotFound)
		}
		return fail(c, err)
	}

	if err := h.categoryRepo.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

func (h *CatalogHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.supplierRepo.FindAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(suppliers)
}

func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&supplier); len(errs) > 0 {
		return fail(c, &apperr.ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag})
	}

	supplier.CreatedBy = getUserID(c)
	supplier.UpdatedBy = getUserID(c)
	if err := h.supplierRepo.Create(&supplier); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Supplier created", "data": supplier})
}

func (h *CatalogHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	existing, err := h.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, apperr.ErrNotFound)
		}
		return fail(c, err)
	}

	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	existing.Name = supplier.Name
	existing.ContactPerson = supplier.ContactPerson
	existing.Email = supplier.Email
	existing.Phone = supplier.Phone
	existing.Address = supplier.Address
	existing.UpdatedBy = getUserID(c)
	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return fail(c, &apperr.ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag})
	}

	if err := h.supplierRepo.Update(existing); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplier updated", "data": existing})
}

func (h *CatalogHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	if _, err := h.supplierRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, apperr.ErrNotFound)
		}
		return fail(c, err)
	}

	if err := h.supplierRepo.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplier deleted"})
}

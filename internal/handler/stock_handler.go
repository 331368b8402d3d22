package handler

import (
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

// CreateTransaction records a stock movement (in/out/adjust).
func (h *StockHandler) CreateTransaction(c *fiber.Ctx) error {
	var tx model.StockTransaction
	if err := c.BodyParser(&tx); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	record, err := h.service.Apply(&tx, getUserID(c), getUserName(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transaction recorded", "data": record})
}

// GetTransactions lists ledger entries filtered by ?start_date, ?end_date
// (inclusive days) and ?type, with lifetime in/out totals.
func (h *StockHandler) GetTransactions(c *fiber.Ctx) error {
	filter := repository.TransactionFilter{
		Start: parseDateQuery(c, "start_date"),
		End:   parseDateQuery(c, "end_date"),
		Type:  model.TransactionType(c.Query("type")),
	}

	transactions, totals, err := h.service.ListTransactions(filter)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"transactions": transactions,
		"totals":       totals,
		"count":        len(transactions),
	})
}

// GetRecentTransactions returns the latest ledger entries, ?limit default 10.
func (h *StockHandler) GetRecentTransactions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)

	transactions, err := h.service.GetRecent(limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"transactions": transactions, "count": len(transactions)})
}

func (h *StockHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.service.GetTransaction(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transaction)
}

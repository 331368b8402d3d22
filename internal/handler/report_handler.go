package handler

import (
	"strconv"
	"time"

	"go-shop-pos/internal/model"
	"go-shop-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetSalesReport builds the windowed sales report. Defaults to the last 30
// days ending today; ?limit caps the top-products list (default 10).
func (h *ReportHandler) GetSalesReport(c *fiber.Ctx) error {
	end := time.Now()
	if d := parseDateQuery(c, "end_date"); d != nil {
		end = *d
	}
	start := end.AddDate(0, 0, -30)
	if d := parseDateQuery(c, "start_date"); d != nil {
		start = *d
	}

	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	report, err := h.service.SalesReport(start, end, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) CreateProfitLoss(c *fiber.Ctx) error {
	var req model.ProfitLossReport
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	report, err := h.service.GenerateProfitLoss(&req, getUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Report generated", "data": report})
}

func (h *ReportHandler) GetProfitLossReports(c *fiber.Ctx) error {
	reports, err := h.service.ListProfitLoss()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(reports)
}

package handler

import (
	"time"

	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func (h *ReportHandler) GetReceipt(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale id"})
	}

	receipt, err := h.service.Receipt(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(receipt)
}

// GetDailySummary aggregates committed sales per payment method for one
// calendar day (?date=YYYY-MM-DD, default today).
func (h *ReportHandler) GetDailySummary(c *fiber.Ctx) error {
	date := time.Now()
	if dateParam := c.Query("date"); dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date, use YYYY-MM-DD"})
		}
		date = parsed
	}

	summary, err := h.service.DailySummary(date)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"date": date.Format("2006-01-02"), "summary": summary})
}

package handler

import (
	"time"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var req model.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.Create(getUserLogin(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale committed", "data": sale.ToResponse()})
}

func (h *SaleHandler) Void(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale id"})
	}

	if err := h.service.Void(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Sale voided"})
}

func (h *SaleHandler) Restore(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale id"})
	}

	if err := h.service.Restore(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Sale restored"})
}

func (h *SaleHandler) GetDetails(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale id"})
	}

	details, err := h.service.Details(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(details)
}

func (h *SaleHandler) GetActiveByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale id"})
	}

	sale, err := h.service.FindActiveByID(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(sale)
}

func (h *SaleHandler) GetInactiveByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale id"})
	}

	sale, err := h.service.FindInactiveByID(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(sale)
}

// GetActive lists active sales; ?date=2006-01-02 narrows to one calendar day.
func (h *SaleHandler) GetActive(c *fiber.Ctx) error {
	if dateParam := c.Query("date"); dateParam != "" {
		date, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date, use YYYY-MM-DD"})
		}
		sales, err := h.service.FindActiveByDate(date)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(sales)
	}

	limit, offset := pageParams(c)
	sales, err := h.service.FindActive(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

func (h *SaleHandler) GetInactive(c *fiber.Ctx) error {
	if dateParam := c.Query("date"); dateParam != "" {
		date, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date, use YYYY-MM-DD"})
		}
		sales, err := h.service.FindInactiveByDate(date)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(sales)
	}

	limit, offset := pageParams(c)
	sales, err := h.service.FindInactive(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

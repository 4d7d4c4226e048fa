package handler

import (
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req model.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.Create(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product id"})
	}

	var req model.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.Update(id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product id"})
	}

	if err := h.service.Delete(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product deactivated"})
}

func (h *ProductHandler) Reactivate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product id"})
	}

	if err := h.service.Reactivate(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product reactivated"})
}

// GetActive lists active products; ?description= filters by substring.
func (h *ProductHandler) GetActive(c *fiber.Ctx) error {
	limit, offset := pageParams(c)

	if description := c.Query("description"); description != "" {
		products, err := h.service.FindActiveByDescription(description, limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(products)
	}

	products, err := h.service.FindActive(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) GetInactive(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	products, err := h.service.FindInactive(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) GetActiveByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product id"})
	}

	product, err := h.service.FindActiveByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) GetInactiveByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product id"})
	}

	product, err := h.service.FindInactiveByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

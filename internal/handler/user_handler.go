package handler

import (
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req model.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.service.Create(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "User created", "data": user})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req model.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.service.Update(id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "User updated", "data": user})
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	if err := h.service.Delete(getUserLogin(c), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "User deactivated"})
}

func (h *UserHandler) Reactivate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	if err := h.service.Reactivate(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "User reactivated"})
}

// GetActive lists active users; ?name= filters by substring.
func (h *UserHandler) GetActive(c *fiber.Ctx) error {
	limit, offset := pageParams(c)

	if name := c.Query("name"); name != "" {
		users, err := h.service.FindActiveByName(name, limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(users)
	}

	users, err := h.service.FindActive(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) GetInactive(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	users, err := h.service.FindInactive(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) GetActiveByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	user, err := h.service.FindActiveByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) GetInactiveByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	user, err := h.service.FindInactiveByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

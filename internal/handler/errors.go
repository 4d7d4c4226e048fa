package handler

import (
	"errors"

	"go-pos-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

// errorStatus translates the engine's error kinds into HTTP statuses so
// every kind is distinguishable by POS clients.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrSaleNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrDuplicateItem),
		errors.Is(err, model.ErrDescriptionInUse),
		errors.Is(err, model.ErrLoginInUse):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrInsufficientStock):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, model.ErrInvalidArgument):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrPermissionDenied):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
}

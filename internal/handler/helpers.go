package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const defaultPageSize = 20

// Helpers to read user info from the auth middleware's Locals
func getUserLogin(c *fiber.Ctx) string {
	login, ok := c.Locals("user_login").(string)
	if !ok {
		return ""
	}
	return login
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// pageParams converts ?page=&size= into limit/offset; page is 0-based.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	size, err := strconv.Atoi(c.Query("size", strconv.Itoa(defaultPageSize)))
	if err != nil || size <= 0 || size > 100 {
		size = defaultPageSize
	}
	page, err := strconv.Atoi(c.Query("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	return size, page * size
}

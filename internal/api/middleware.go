package api

import (
	"github.com/gofiber/fiber/v2"
)

const contextUserKey = "current_user"

func currentUser(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals(contextUserKey).(string)
	return userID, ok && userID != ""
}

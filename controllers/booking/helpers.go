package booking

import (
	"kos-booking/middleware"
	"kos-booking/types"
	"kos-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// audit pushes the completed request into the async request log. Works only
// after the response has been written.
func (bc *BookingController) audit(c *fiber.Ctx) {
	if bc.Logger != nil {
		bc.Logger.Log(utils.SanitizedLogEntry(c))
	}
}

func identity(c *fiber.Ctx) (types.Identity, bool) {
	return middleware.Identity(c)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
		Status:  fiber.StatusUnauthorized,
		Message: "Invalid user claims",
	})
}

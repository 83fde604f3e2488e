package validate

import (
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateShowtime() fiber.Handler {
	return bodyInput[model.CreateShowtimeInput]("CreateShowtime")
}

func UpdateShowtime() fiber.Handler {
	return bodyInput[model.UpdateShowtimeInput]("UpdateShowtime")
}

func FilterShowtime() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.FilterShowtimeInput
		if err := c.QueryParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Query không hợp lệ", err)
		}
		c.Locals("FilterShowtime", input)
		return c.Next()
	}
}

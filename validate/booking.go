package validate

import (
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func HoldSeats() fiber.Handler {
	return bodyInput[model.HoldSeatsInput]("HoldSeats")
}

func ReleaseSeats() fiber.Handler {
	return bodyInput[model.ReleaseSeatsInput]("ReleaseSeats")
}

func CreateBooking() fiber.Handler {
	return bodyInput[model.CreateBookingInput]("CreateBooking")
}

func FilterBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.FilterBookingInput
		if err := c.QueryParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Query không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		c.Locals("FilterBooking", input)
		return c.Next()
	}
}

package validate

import (
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateMovie() fiber.Handler {
	return bodyInput[model.CreateMovieInput]("CreateMovie")
}

func UpdateMovie() fiber.Handler {
	return bodyInput[model.UpdateMovieInput]("UpdateMovie")
}

func FilterMovie() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.FilterMovieInput
		if err := c.QueryParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Query không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		c.Locals("FilterMovie", input)
		return c.Next()
	}
}

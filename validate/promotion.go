package validate

import (
	"cinema_booking/model"

	"github.com/gofiber/fiber/v2"
)

func CreatePromotion() fiber.Handler {
	return bodyInput[model.CreatePromotionInput]("CreatePromotion")
}

func UpdatePromotion() fiber.Handler {
	return bodyInput[model.UpdatePromotionInput]("UpdatePromotion")
}

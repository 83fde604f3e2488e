package validate

import (
	"cinema_booking/model"

	"github.com/gofiber/fiber/v2"
)

func CapturePayment() fiber.Handler {
	return bodyInput[model.CapturePaymentInput]("CapturePayment")
}

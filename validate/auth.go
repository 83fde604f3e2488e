package validate

import (
	"cinema_booking/model"

	"github.com/gofiber/fiber/v2"
)

func RegisterUser() fiber.Handler {
	return bodyInput[model.RegisterUserInput]("RegisterUser")
}

func Login() fiber.Handler {
	return bodyInput[model.LoginInput]("Login")
}

func ForgotPassword() fiber.Handler {
	return bodyInput[model.ForgotPasswordInput]("ForgotPassword")
}

func ResetPassword() fiber.Handler {
	return bodyInput[model.ResetPasswordInput]("ResetPassword")
}

func ChangePassword() fiber.Handler {
	return bodyInput[model.ChangePasswordInput]("ChangePassword")
}

package validate

import (
	"cinema_booking/model"

	"github.com/gofiber/fiber/v2"
)

func CreateCinema() fiber.Handler {
	return bodyInput[model.CreateCinemaInput]("CreateCinema")
}

func CreateRoom() fiber.Handler {
	return bodyInput[model.CreateRoomInput]("CreateRoom")
}

func CreateSeat() fiber.Handler {
	return bodyInput[model.CreateSeatInput]("CreateSeat")
}

func GenerateSeatGrid() fiber.Handler {
	return bodyInput[model.GenerateSeatGridInput]("GenerateSeatGrid")
}

func ReassignSeatType() fiber.Handler {
	return bodyInput[model.ReassignSeatTypeInput]("ReassignSeatType")
}

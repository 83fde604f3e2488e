package handler

import (
	"cinema_booking/booking"
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// GetSeatAvailability trả sơ đồ ghế của suất chiếu kèm trạng thái và giá.
// Route public, không cần đăng nhập.
func (h *Handler) GetSeatAvailability(c *fiber.Ctx) error {
	showtimeId, _ := c.Locals("inputId").(int)

	statuses, err := h.Booking.GetAvailability(c.Context(), uint(showtimeId))
	if err != nil {
		if errors.Is(err, booking.ErrShowtimeNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Suất chiếu không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn ghế", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, statuses)
}

func (h *Handler) HoldSeats(c *fiber.Ctx) error {
	showtimeId, _ := c.Locals("inputId").(int)
	claim, ok := helper.GetUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}
	input, ok := c.Locals("HoldSeats").(model.HoldSeatsInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	err := h.Booking.HoldSeats(c.Context(), uint(showtimeId), input.SeatIds, claim.UserId, input.HoldMinutes)
	if err != nil {
		return h.bookingError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Giữ ghế thành công"})
}

func (h *Handler) ReleaseSeats(c *fiber.Ctx) error {
	showtimeId, _ := c.Locals("inputId").(int)
	claim, ok := helper.GetUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}
	input, ok := c.Locals("ReleaseSeats").(model.ReleaseSeatsInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	if err := h.Booking.ReleaseSeats(c.Context(), uint(showtimeId), input.SeatIds, claim.UserId); err != nil {
		return h.bookingError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đã trả ghế"})
}

package handler

import (
	"cinema_booking/booking"
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// bookingError dịch lỗi domain của booking service sang HTTP status
func (h *Handler) bookingError(c *fiber.Ctx, err error) error {
	var unavailable *booking.SeatsUnavailableError
	switch {
	case errors.As(err, &unavailable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":          "Ghế không còn trống",
			"unavailableSeats": unavailable.SeatIds,
		})
	case errors.Is(err, booking.ErrShowtimeNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Suất chiếu không tồn tại", err)
	case errors.Is(err, booking.ErrBookingNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Đơn đặt vé không tồn tại", err)
	case errors.Is(err, booking.ErrSeatNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Ghế không tồn tại", err)
	case errors.Is(err, booking.ErrNotBookingOwner):
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Không phải đơn của bạn", err)
	case errors.Is(err, booking.ErrInvalidBookingState), errors.Is(err, booking.ErrBookingNotPending):
		return utils.ErrorResponse(c, fiber.StatusConflict, "Trạng thái đơn không cho phép thao tác này", err)
	case errors.Is(err, booking.ErrNoSeatsRequested):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Chưa chọn ghế", err)
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi hệ thống", err)
	}
}

func (h *Handler) CreateBooking(c *fiber.Ctx) error {
	claim, ok := helper.GetUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}
	input, ok := c.Locals("CreateBooking").(model.CreateBookingInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	result, err := h.Booking.CreateBooking(c.Context(), claim.UserId, input.ShowtimeId, input.SeatIds, input.PromotionCode)
	if err != nil {
		return h.bookingError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, result)
}

func (h *Handler) GetBookingById(c *fiber.Ctx) error {
	bookingId, _ := c.Locals("inputId").(int)
	claim, ok := helper.GetUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}

	var b model.Booking
	if err := h.DB.Preload("Tickets").Preload("Tickets.Seat").Preload("Tickets.Seat.SeatType").
		Preload("Showtime").Preload("Showtime.Movie").Preload("Showtime.Room").
		Preload("Promotion").
		First(&b, bookingId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Đơn đặt vé không tồn tại", err)
	}
	if b.UserId != claim.UserId && claim.Role == model.RoleCustomer {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Không phải đơn của bạn", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, b)
}

func (h *Handler) GetMyBookings(c *fiber.Ctx) error {
	claim, ok := helper.GetUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}
	input, _ := c.Locals("FilterBooking").(model.FilterBookingInput)

	query := h.DB.Model(&model.Booking{}).
		Preload("Tickets").Preload("Showtime").Preload("Showtime.Movie").
		Where("user_id = ?", claim.UserId)
	if input.Status != "" {
		query = query.Where("status = ?", input.Status)
	}
	if input.ShowtimeId != 0 {
		query = query.Where("showtime_id = ?", input.ShowtimeId)
	}

	var totalCount int64
	query.Count(&totalCount)

	var bookings []model.Booking
	if err := utils.ApplyPagination(query, input.Limit, input.Page).
		Order("booking_time DESC").Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn đơn", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       bookings,
		Limit:      input.Limit,
		Page:       input.Page,
		TotalCount: totalCount,
	})
}

func (h *Handler) CancelBooking(c *fiber.Ctx) error {
	bookingId, _ := c.Locals("inputId").(int)
	claim, ok := helper.GetUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}

	if err := h.Booking.CancelBooking(c.Context(), uint(bookingId), claim.UserId); err != nil {
		return h.bookingError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đã hủy đơn đặt vé"})
}

package handler

import (
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CapturePayment xác nhận thanh toán cho đơn PENDING. Đây là collaborator
// thanh toán phía ngoài gọi vào sau khi gateway báo thành công; service chỉ
// nhận kết quả, không tự xử lý giao dịch.
func (h *Handler) CapturePayment(c *fiber.Ctx) error {
	claim, ok := helper.GetUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}
	input, ok := c.Locals("CapturePayment").(model.CapturePaymentInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	var b model.Booking
	if err := h.DB.Preload("Showtime").Preload("Showtime.Movie").
		Preload("Showtime.Room").Preload("Showtime.Room.Cinema").
		First(&b, input.BookingId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Đơn đặt vé không tồn tại", err)
	}
	if b.UserId != claim.UserId && claim.Role == model.RoleCustomer {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Không phải đơn của bạn", nil)
	}

	payment, err := h.Booking.ConfirmPayment(c.Context(), input.BookingId, input.Method, input.GatewayRef)
	if err != nil {
		return h.bookingError(c, err)
	}

	h.sendConfirmationEmail(claim.Email, &b)
	return utils.SuccessResponse(c, fiber.StatusOK, payment)
}

func (h *Handler) GetMyPayments(c *fiber.Ctx) error {
	claim, ok := helper.GetUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}

	var payments []model.Payment
	if err := h.DB.Where("user_id = ?", claim.UserId).
		Order("created_at DESC").Find(&payments).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn thanh toán", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, payments)
}

func (h *Handler) sendConfirmationEmail(to string, b *model.Booking) {
	if to == "" {
		return
	}

	var tickets []model.Ticket
	h.DB.Preload("Seat").Where("booking_id = ?", b.ID).Find(&tickets)
	seatLabels := make([]string, 0, len(tickets))
	for _, t := range tickets {
		seatLabels = append(seatLabels, fmt.Sprintf("%s%d", t.Seat.SeatRow, t.Seat.SeatNumber))
	}

	utils.SendBookingConfirmationEmail(to, utils.BookingConfirmationData{
		PublicCode:  b.PublicCode,
		MovieTitle:  b.Showtime.Movie.Title,
		CinemaName:  b.Showtime.Room.Cinema.Name,
		RoomName:    b.Showtime.Room.Name,
		Showtime:    b.Showtime.StartTime.Format("15:04 02/01/2006"),
		Seats:       strings.Join(seatLabels, ", "),
		TotalAmount: b.TotalAmount,
		QRContent:   b.PublicCode,
	})
}

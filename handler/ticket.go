package handler

import (
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func (h *Handler) ticketByCode(code string) (*model.Ticket, error) {
	var ticket model.Ticket
	err := h.DB.Preload("Seat").Preload("Seat.SeatType").
		Preload("Showtime").Preload("Showtime.Movie").Preload("Showtime.Room").
		Preload("Booking").
		Where("ticket_code = ?", code).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetMyTickets liệt kê vé của user đang đăng nhập, mới nhất trước
func (h *Handler) GetMyTickets(c *fiber.Ctx) error {
	claim, ok := helper.GetUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}

	var tickets []model.Ticket
	err := h.DB.Preload("Seat").Preload("Seat.SeatType").
		Preload("Showtime").Preload("Showtime.Movie").Preload("Showtime.Room").
		Joins("JOIN bookings ON bookings.id = tickets.booking_id").
		Where("bookings.user_id = ?", claim.UserId).
		Order("tickets.created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn vé", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, tickets)
}

// GetTicketQR trả PNG mã QR của vé để client render/in
func (h *Handler) GetTicketQR(c *fiber.Ctx) error {
	code := c.Params("code")

	ticket, err := h.ticketByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Vé không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn vé", err)
	}

	png, err := utils.GenerateQRCode(ticket.TicketCode, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo QR", err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

// ValidateTicket cho quầy soát vé tra cứu vé theo mã mà không đổi trạng thái
func (h *Handler) ValidateTicket(c *fiber.Ctx) error {
	code := c.Params("code")

	ticket, err := h.ticketByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Vé không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn vé", err)
	}

	valid := ticket.Status == model.TicketValid && ticket.Booking.Status == model.BookingPaid
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"ticket": ticket,
		"valid":  valid,
	})
}

// CheckInTicket soát vé vào rạp: chỉ vé VALID của đơn đã PAID, mỗi vé 1 lần
func (h *Handler) CheckInTicket(c *fiber.Ctx) error {
	code := c.Params("code")

	ticket, err := h.ticketByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Vé không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn vé", err)
	}

	if ticket.Booking.Status != model.BookingPaid {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Đơn chưa thanh toán", nil)
	}
	switch ticket.Status {
	case model.TicketUsed:
		return utils.ErrorResponse(c, fiber.StatusConflict, "Vé đã được sử dụng", nil)
	case model.TicketCancelled:
		return utils.ErrorResponse(c, fiber.StatusConflict, "Vé đã bị hủy", nil)
	}

	now := time.Now()
	// update có điều kiện để 2 quầy quét cùng lúc chỉ 1 bên thành công
	result := h.DB.Model(&model.Ticket{}).
		Where("id = ? AND status = ?", ticket.ID, model.TicketValid).
		Updates(map[string]interface{}{"status": model.TicketUsed, "used_at": now})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể check-in", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Vé đã được sử dụng", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":   "Check-in thành công",
		"ticket":    ticket.TicketCode,
		"checkinAt": now,
	})
}

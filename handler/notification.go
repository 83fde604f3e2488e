package handler

import (
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetMyNotifications(c *fiber.Ctx) error {
	claim, ok := helper.GetUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}

	var notifications []model.Notification
	if err := h.DB.Where("user_id = ?", claim.UserId).
		Order("created_at DESC").Limit(100).
		Find(&notifications).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn thông báo", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, notifications)
}

func (h *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	notificationId, _ := c.Locals("inputId").(int)
	claim, ok := helper.GetUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}

	result := h.DB.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", notificationId, claim.UserId).
		Update("is_read", true)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể cập nhật thông báo", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Thông báo không tồn tại", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đã đánh dấu đã đọc"})
}

func (h *Handler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	claim, ok := helper.GetUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}

	result := h.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = false", claim.UserId).
		Update("is_read", true)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể cập nhật thông báo", result.Error)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"updated": result.RowsAffected})
}

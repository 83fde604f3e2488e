package handler

import (
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func (h *Handler) GetPromotions(c *fiber.Ctx) error {
	var promotions []model.Promotion
	if err := h.DB.Order("created_at DESC").Find(&promotions).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn khuyến mãi", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, promotions)
}

func (h *Handler) CreatePromotion(c *fiber.Ctx) error {
	input, ok := c.Locals("CreatePromotion").(model.CreatePromotionInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	var promotion model.Promotion
	copier.Copy(&promotion, &input)
	promotion.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	promotion.IsActive = true

	if err := h.DB.Create(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Mã khuyến mãi đã tồn tại", err, "code")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo khuyến mãi", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, promotion)
}

func (h *Handler) UpdatePromotion(c *fiber.Ctx) error {
	promotionId, _ := c.Locals("inputId").(int)
	input, ok := c.Locals("UpdatePromotion").(model.UpdatePromotionInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	var promotion model.Promotion
	if err := h.DB.First(&promotion, promotionId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Khuyến mãi không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn khuyến mãi", err)
	}

	copier.CopyWithOption(&promotion, &input, copier.Option{IgnoreEmpty: true})
	if input.IsActive != nil {
		promotion.IsActive = *input.IsActive
	}

	if err := h.DB.Save(&promotion).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể cập nhật khuyến mãi", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, promotion)
}

// CheckPromotion cho client xem trước mã giảm giá còn dùng được không
func (h *Handler) CheckPromotion(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))

	var promotion model.Promotion
	if err := h.DB.Where("code = ? AND is_active = ?", code, true).First(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"valid": false})
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn khuyến mãi", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"valid":     true,
		"promotion": promotion,
	})
}

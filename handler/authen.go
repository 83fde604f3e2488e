package handler

import (
	"cinema_booking/config"
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func (h *Handler) Register(c *fiber.Ctx) error {
	input, ok := c.Locals("RegisterUser").(model.RegisterUserInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	existing, err := helper.GetUserByEmail(h.DB, input.Email)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi hệ thống", err, "general")
	}
	if existing != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Email đã được sử dụng", nil, "email")
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Không thể hash mật khẩu", err, "password")
	}

	var user model.User
	copier.Copy(&user, &input)
	user.PasswordHash = hash
	user.Role = model.RoleCustomer

	if err := h.DB.Create(&user).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Không thể tạo tài khoản", err, "general")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, user)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	input, ok := c.Locals("Login").(model.LoginInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	user, err := helper.GetUserByEmail(h.DB, input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi hệ thống", err)
	}
	if user == nil || !helper.CheckPasswordHash(input.Password, user.PasswordHash) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Email hoặc mật khẩu không đúng", nil)
	}

	claim := model.TokenClaim{UserId: user.ID, Email: user.Email, Role: user.Role}
	accessToken, err := helper.GenerateAccessToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo token", err)
	}
	refreshToken, err := helper.GenerateRefreshToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo token", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"user":  user,
		"token": model.TokenData{AccessToken: accessToken, RefreshToken: refreshToken},
	})
}

func (h *Handler) RefreshToken(c *fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.BodyParser(&body); err != nil || body.RefreshToken == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu refresh token", err)
	}

	token, err := helper.ParseToken(body.RefreshToken)
	if err != nil || !token.Valid {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Refresh token không hợp lệ", err)
	}

	userId, email := tokenIdentity(token)
	if userId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Refresh token không hợp lệ", nil)
	}

	var user model.User
	if err := h.DB.First(&user, userId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Tài khoản không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi hệ thống", err)
	}
	if user.Email != email {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Refresh token không hợp lệ", nil)
	}

	accessToken, err := helper.GenerateAccessToken(model.TokenClaim{UserId: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo token", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"accessToken": accessToken})
}

func tokenIdentity(token *jwt.Token) (uint, string) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ""
	}
	idFloat, _ := claims["userId"].(float64)
	email, _ := claims["email"].(string)
	return uint(idFloat), email
}

func (h *Handler) Me(c *fiber.Ctx) error {
	claim, ok := helper.GetUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}

	var user model.User
	if err := h.DB.First(&user, claim.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Tài khoản không tồn tại", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

// ForgotPassword luôn trả 200 để không lộ email nào đã đăng ký.
func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	input, ok := c.Locals("ForgotPassword").(model.ForgotPasswordInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	user, err := helper.GetUserByEmail(h.DB, input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi hệ thống", err)
	}
	if user != nil {
		token, err := helper.GenerateResetToken(model.TokenClaim{UserId: user.ID, Email: user.Email})
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo token", err)
		}
		resetLink := fmt.Sprintf("%s/reset-password?token=%s", config.ConfigOr("FRONTEND_URL", "http://localhost:3000"), token)
		go func() {
			if err := utils.SendPasswordResetEmail(user.Email, resetLink); err != nil {
				log.Printf("Lỗi gửi mail đặt lại mật khẩu: %v", err)
			}
		}()
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Nếu email tồn tại, link đặt lại mật khẩu đã được gửi",
	})
}

func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	input, ok := c.Locals("ResetPassword").(model.ResetPasswordInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	token, err := helper.ParseToken(input.Token)
	if err != nil || !token.Valid {
		return utils.ErrorResponseHaveKey(c, fiber.StatusUnauthorized, "Token không hợp lệ hoặc đã hết hạn", err, "token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["purpose"] != "password_reset" {
		return utils.ErrorResponseHaveKey(c, fiber.StatusUnauthorized, "Token không hợp lệ", nil, "token")
	}

	userId, email := tokenIdentity(token)
	var user model.User
	if err := h.DB.First(&user, userId).Error; err != nil || user.Email != email {
		return utils.ErrorResponseHaveKey(c, fiber.StatusUnauthorized, "Token không hợp lệ", err, "token")
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể hash mật khẩu", err)
	}
	if err := h.DB.Model(&user).Update("password_hash", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể đặt lại mật khẩu", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đặt lại mật khẩu thành công"})
}

func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	claim, ok := helper.GetUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}
	input, ok := c.Locals("ChangePassword").(model.ChangePasswordInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	var user model.User
	if err := h.DB.First(&user, claim.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Tài khoản không tồn tại", err)
	}
	if !helper.CheckPasswordHash(input.CurrentPassword, user.PasswordHash) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Mật khẩu hiện tại không đúng", nil, "currentPassword")
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể hash mật khẩu", err)
	}
	if err := h.DB.Model(&user).Update("password_hash", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể đổi mật khẩu", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đổi mật khẩu thành công"})
}

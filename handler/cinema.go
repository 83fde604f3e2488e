package handler

import (
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func (h *Handler) GetCinemas(c *fiber.Ctx) error {
	var cinemas []model.Cinema
	if err := h.DB.Preload("Rooms").Find(&cinemas).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn rạp", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, cinemas)
}

func (h *Handler) GetCinemaById(c *fiber.Ctx) error {
	cinemaId, _ := c.Locals("inputId").(int)

	var cinema model.Cinema
	if err := h.DB.Preload("Rooms").First(&cinema, cinemaId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Rạp không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn rạp", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, cinema)
}

func (h *Handler) CreateCinema(c *fiber.Ctx) error {
	input, ok := c.Locals("CreateCinema").(model.CreateCinemaInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	var cinema model.Cinema
	copier.Copy(&cinema, &input)
	cinema.Slug = helper.GenerateUniqueCinemaSlug(h.DB, input.Name)

	if err := h.DB.Create(&cinema).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo rạp", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, cinema)
}

func (h *Handler) CreateRoom(c *fiber.Ctx) error {
	input, ok := c.Locals("CreateRoom").(model.CreateRoomInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	var cinema model.Cinema
	if err := h.DB.First(&cinema, input.CinemaId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Rạp không tồn tại", err, "cinemaId")
	}

	room := model.Room{Name: input.Name, CinemaId: input.CinemaId}
	if err := h.DB.Create(&room).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo phòng", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, room)
}

func (h *Handler) GetRoomSeats(c *fiber.Ctx) error {
	roomId, _ := c.Locals("inputId").(int)

	var seats []model.Seat
	if err := h.DB.Preload("SeatType").
		Where("room_id = ?", roomId).
		Order("seat_row, seat_number").
		Find(&seats).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn ghế", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, seats)
}

func (h *Handler) CreateSeat(c *fiber.Ctx) error {
	input, ok := c.Locals("CreateSeat").(model.CreateSeatInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	var seat model.Seat
	copier.Copy(&seat, &input)
	if err := h.DB.Create(&seat).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Không thể tạo ghế (trùng vị trí?)", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, seat)
}

// GenerateSeatGrid dựng lưới ghế rows x seatsPerRow cho phòng, hàng trong
// VipRows gán loại VIP, còn lại STD. Phòng đã có ghế thì từ chối.
func (h *Handler) GenerateSeatGrid(c *fiber.Ctx) error {
	input, ok := c.Locals("GenerateSeatGrid").(model.GenerateSeatGridInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	var room model.Room
	if err := h.DB.First(&room, input.RoomId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Phòng không tồn tại", err, "roomId")
	}

	var existing int64
	h.DB.Model(&model.Seat{}).Where("room_id = ?", input.RoomId).Count(&existing)
	if existing > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Phòng đã có ghế", nil)
	}

	var std, vip model.SeatType
	if err := h.DB.Where(model.SeatType{Code: "STD"}).First(&std).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Thiếu loại ghế STD", err)
	}
	if err := h.DB.Where(model.SeatType{Code: "VIP"}).First(&vip).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Thiếu loại ghế VIP", err)
	}

	vipRows := make(map[string]bool, len(input.VipRows))
	for _, r := range input.VipRows {
		vipRows[r] = true
	}

	seats := make([]model.Seat, 0, input.Rows*input.SeatsPerRow)
	for i := 0; i < input.Rows; i++ {
		row := string(rune('A' + i))
		typeId := std.ID
		if vipRows[row] {
			typeId = vip.ID
		}
		for number := 1; number <= input.SeatsPerRow; number++ {
			seats = append(seats, model.Seat{
				RoomId:     input.RoomId,
				SeatRow:    row,
				SeatNumber: number,
				SeatTypeId: typeId,
			})
		}
	}

	if err := h.DB.Create(&seats).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo lưới ghế", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"message": fmt.Sprintf("Đã tạo %d ghế", len(seats)),
		"count":   len(seats),
	})
}

func (h *Handler) ReassignSeatType(c *fiber.Ctx) error {
	input, ok := c.Locals("ReassignSeatType").(model.ReassignSeatTypeInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	var seatType model.SeatType
	if err := h.DB.First(&seatType, input.SeatTypeId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Loại ghế không tồn tại", err, "seatTypeId")
	}

	result := h.DB.Model(&model.Seat{}).
		Where("id IN ?", input.SeatIds).
		Update("seat_type_id", input.SeatTypeId)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể đổi loại ghế", result.Error)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"updated": result.RowsAffected})
}

func (h *Handler) GetSeatTypes(c *fiber.Ctx) error {
	var seatTypes []model.SeatType
	if err := h.DB.Order("price_multiplier").Find(&seatTypes).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn loại ghế", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, seatTypes)
}

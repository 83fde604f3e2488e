package handler

import (
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func (h *Handler) GetShowtimes(c *fiber.Ctx) error {
	input, _ := c.Locals("FilterShowtime").(model.FilterShowtimeInput)

	query := h.DB.Model(&model.Showtime{}).
		Preload("Movie").Preload("Room").Preload("Room.Cinema")
	if input.MovieId != 0 {
		query = query.Where("movie_id = ?", input.MovieId)
	}
	if input.RoomId != 0 {
		query = query.Where("room_id = ?", input.RoomId)
	}
	if input.CinemaId != 0 {
		query = query.Joins("JOIN rooms ON rooms.id = showtimes.room_id").
			Where("rooms.cinema_id = ?", input.CinemaId)
	}
	if input.StartDate != "" {
		if start, err := time.Parse("2006-01-02", input.StartDate); err == nil {
			query = query.Where("start_time >= ?", start)
		}
	}
	if input.EndDate != "" {
		if end, err := time.Parse("2006-01-02", input.EndDate); err == nil {
			query = query.Where("start_time < ?", end.Add(24*time.Hour))
		}
	}

	var totalCount int64
	query.Count(&totalCount)

	var showtimes []model.Showtime
	if err := utils.ApplyPagination(query, input.Limit, input.Page).
		Order("start_time").Find(&showtimes).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn suất chiếu", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       showtimes,
		Limit:      input.Limit,
		Page:       input.Page,
		TotalCount: totalCount,
	})
}

func (h *Handler) GetShowtimeById(c *fiber.Ctx) error {
	showtimeId, _ := c.Locals("inputId").(int)

	var showtime model.Showtime
	if err := h.DB.Preload("Movie").Preload("Room").Preload("Room.Cinema").
		First(&showtime, showtimeId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Suất chiếu không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn suất chiếu", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, showtime)
}

func (h *Handler) CreateShowtime(c *fiber.Ctx) error {
	input, ok := c.Locals("CreateShowtime").(model.CreateShowtimeInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	var movie model.Movie
	if err := h.DB.First(&movie, input.MovieId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Phim không tồn tại", err, "movieId")
	}
	var room model.Room
	if err := h.DB.First(&room, input.RoomId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Phòng không tồn tại", err, "roomId")
	}

	var showtime model.Showtime
	copier.Copy(&showtime, &input)
	if showtime.EndTime.IsZero() {
		showtime.EndTime = input.StartTime.Add(time.Duration(movie.Duration) * time.Minute)
	}

	// chặn trùng lịch trong cùng phòng
	var overlap int64
	h.DB.Model(&model.Showtime{}).
		Where("room_id = ? AND start_time < ? AND end_time > ?", input.RoomId, showtime.EndTime, showtime.StartTime).
		Count(&overlap)
	if overlap > 0 {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Phòng đã có suất chiếu trong khung giờ này", nil, "startTime")
	}

	if err := h.DB.Create(&showtime).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo suất chiếu", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, showtime)
}

func (h *Handler) UpdateShowtime(c *fiber.Ctx) error {
	showtimeId, _ := c.Locals("inputId").(int)
	input, ok := c.Locals("UpdateShowtime").(model.UpdateShowtimeInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	var showtime model.Showtime
	if err := h.DB.First(&showtime, showtimeId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Suất chiếu không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn suất chiếu", err)
	}

	// đã có vé bán thì không cho dời suất
	var sold int64
	h.DB.Model(&model.Ticket{}).
		Where("showtime_id = ? AND status <> ?", showtimeId, model.TicketCancelled).
		Count(&sold)
	if sold > 0 && (input.StartTime != nil || input.RoomId != nil) {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Suất chiếu đã có vé, không thể dời lịch", nil)
	}

	copier.CopyWithOption(&showtime, &input, copier.Option{IgnoreEmpty: true})
	if err := h.DB.Save(&showtime).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể cập nhật suất chiếu", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, showtime)
}

func (h *Handler) DeleteShowtimes(c *fiber.Ctx) error {
	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu danh sách id", nil)
	}

	var sold int64
	h.DB.Model(&model.Ticket{}).
		Where("showtime_id IN ? AND status <> ?", input.IDs, model.TicketCancelled).
		Count(&sold)
	if sold > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Có suất chiếu đã bán vé, không thể xoá", nil)
	}

	if err := h.DB.Delete(&model.Showtime{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể xoá suất chiếu", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": len(input.IDs)})
}

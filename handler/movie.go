package handler

import (
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func (h *Handler) GetMovies(c *fiber.Ctx) error {
	input, _ := c.Locals("FilterMovie").(model.FilterMovieInput)

	query := h.DB.Model(&model.Movie{}).Preload("Genres")
	if input.Status != "" {
		query = query.Where("status = ?", input.Status)
	}
	if input.Search != "" {
		query = query.Where("title ILIKE ?", "%"+input.Search+"%")
	}
	if input.GenreId != 0 {
		query = query.Joins("JOIN movie_genres ON movie_genres.movie_id = movies.id").
			Where("movie_genres.genre_id = ?", input.GenreId)
	}

	var totalCount int64
	query.Count(&totalCount)

	var movies []model.Movie
	if err := utils.ApplyPagination(query, input.Limit, input.Page).
		Order("release_date DESC").Find(&movies).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn phim", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       movies,
		Limit:      input.Limit,
		Page:       input.Page,
		TotalCount: totalCount,
	})
}

func (h *Handler) GetMovieBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var movie model.Movie
	if err := h.DB.Preload("Genres").Where("slug = ?", slug).First(&movie).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Phim không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn phim", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, movie)
}

func (h *Handler) CreateMovie(c *fiber.Ctx) error {
	input, ok := c.Locals("CreateMovie").(model.CreateMovieInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	var movie model.Movie
	copier.Copy(&movie, &input)
	movie.Slug = helper.GenerateUniqueMovieSlug(h.DB, input.Title)
	movie.Status = model.MovieComingSoon

	if len(input.GenreIDs) > 0 {
		var genres []model.Genre
		if err := h.DB.Where("id IN ?", input.GenreIDs).Find(&genres).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn thể loại", err)
		}
		movie.Genres = genres
	}

	if err := h.DB.Create(&movie).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo phim", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, movie)
}

func (h *Handler) UpdateMovie(c *fiber.Ctx) error {
	movieId, _ := c.Locals("inputId").(int)
	input, ok := c.Locals("UpdateMovie").(model.UpdateMovieInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	var movie model.Movie
	if err := h.DB.First(&movie, movieId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Phim không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn phim", err)
	}

	copier.CopyWithOption(&movie, &input, copier.Option{IgnoreEmpty: true})
	if input.Title != nil && *input.Title != movie.Title {
		movie.Slug = helper.GenerateUniqueMovieSlug(h.DB, *input.Title)
	}

	if err := h.DB.Save(&movie).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể cập nhật phim", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, movie)
}

func (h *Handler) DeleteMovies(c *fiber.Ctx) error {
	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu danh sách id", nil)
	}
	if err := h.DB.Delete(&model.Movie{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể xoá phim", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": len(input.IDs)})
}

// UploadMoviePoster nhận multipart file, đẩy lên Cloudinary rồi lưu URL
func (h *Handler) UploadMoviePoster(c *fiber.Ctx) error {
	movieId, _ := c.Locals("inputId").(int)

	var movie model.Movie
	if err := h.DB.First(&movie, movieId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Phim không tồn tại", err)
	}

	file, err := c.FormFile("poster")
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Thiếu file poster", err, "poster")
	}
	ext := filepath.Ext(file.Filename)
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Định dạng file không hỗ trợ (chỉ hỗ trợ PNG, JPG, JPEG)", errors.New("invalid file format"), "poster")
	}

	reader, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không đọc được file", err)
	}
	defer reader.Close()

	url, err := helper.UploadPoster(c.Context(), h.Cld, reader, fmt.Sprintf("movie-%d", movie.ID))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Upload Cloudinary thất bại", err)
	}

	if err := h.DB.Model(&movie).Update("poster_url", url).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể lưu poster", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"posterUrl": url})
}

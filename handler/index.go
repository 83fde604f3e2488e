package handler

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cinema_booking/booking"
)

// Handler gom mọi dependency của tầng HTTP: DB, service đặt vé, Redis cho
// websocket và Cloudinary cho media. Bơm từ main, không dùng global.
type Handler struct {
	DB      *gorm.DB
	Booking *booking.Service
	Redis   *redis.Client
	Cld     *cloudinary.Cloudinary
}

func New(db *gorm.DB, svc *booking.Service, rdb *redis.Client, cld *cloudinary.Cloudinary) *Handler {
	return &Handler{DB: db, Booking: svc, Redis: rdb, Cld: cld}
}

// PublishSeatChange bắn tín hiệu lên kênh Redis của suất chiếu để các client
// websocket refetch sơ đồ ghế. Lỗi publish chỉ log, không chặn flow đặt vé.
func (h *Handler) PublishSeatChange(showtimeId uint) {
	if h.Redis == nil {
		return
	}
	channel := fmt.Sprintf("showtime:%d", showtimeId)
	if err := h.Redis.Publish(context.Background(), channel, "seats-updated").Err(); err != nil {
		log.Printf("[WS] publish %s: %v", channel, err)
	}
}

package booking

import (
	"context"
	"time"

	"cinema_booking/model"
)

// Các store là cổng duy nhất của core xuống DB. Bản GORM nằm ở package
// repository; test dùng fake in-memory.

type ShowtimeStore interface {
	ByID(ctx context.Context, id uint) (*model.Showtime, error)
}

type SeatStore interface {
	// ByRoom trả về toàn bộ ghế của phòng, kèm SeatType
	ByRoom(ctx context.Context, roomId uint) ([]model.Seat, error)
	// ByIDs trả về các ghế theo id, kèm SeatType
	ByIDs(ctx context.Context, ids []uint) ([]model.Seat, error)
}

type TicketStore interface {
	// ActiveByShowtime: mọi vé chưa hủy của suất chiếu (ghế đã bán)
	ActiveByShowtime(ctx context.Context, showtimeId uint) ([]model.Ticket, error)
	ActiveBySeats(ctx context.Context, showtimeId uint, seatIds []uint) ([]model.Ticket, error)
	ByBooking(ctx context.Context, bookingId uint) ([]model.Ticket, error)
	CancelByBooking(ctx context.Context, bookingId uint) error
}

type HoldStore interface {
	// ActiveByShowtime: hold HOLDING còn hạn (holdUntil > now)
	ActiveByShowtime(ctx context.Context, showtimeId uint, now time.Time) ([]model.SeatHold, error)
	ActiveBySeats(ctx context.Context, showtimeId uint, seatIds []uint, now time.Time) ([]model.SeatHold, error)
	ActiveByUser(ctx context.Context, showtimeId, userId uint, now time.Time) ([]model.SeatHold, error)

	// Create chèn cả lô; đụng index unique của hold đang hoạt động
	// thì trả ErrHoldConflict
	Create(ctx context.Context, holds []model.SeatHold) error

	// DeleteExpiredBySeats dọn các hold HOLDING đã quá hạn cho đúng các ghế
	// sắp giữ, để xác chết không chặn insert
	DeleteExpiredBySeats(ctx context.Context, showtimeId uint, seatIds []uint, now time.Time) error

	// DeleteOwned xóa hold HOLDING của chính user đó (idempotent)
	DeleteOwned(ctx context.Context, showtimeId uint, seatIds []uint, userId uint) (int64, error)

	// DeleteConfirmedBySeats gỡ hold CONFIRMED khi hủy booking
	DeleteConfirmedBySeats(ctx context.Context, showtimeId uint, seatIds []uint) (int64, error)

	// Confirm chuyển hold HOLDING của user thành CONFIRMED
	Confirm(ctx context.Context, showtimeId uint, seatIds []uint, userId uint) (int64, error)

	// DeleteExpired là sweep toàn cục, best-effort
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type BookingStore interface {
	// Create ghi booking + toàn bộ vé trong 1 transaction
	Create(ctx context.Context, b *model.Booking, tickets []model.Ticket) error
	ByID(ctx context.Context, id uint) (*model.Booking, error)
	SetPaid(ctx context.Context, id uint, at time.Time) error
	SetCancelled(ctx context.Context, id uint, at time.Time) error
	SetExpired(ctx context.Context, id uint) error
	// PendingBefore: booking PENDING tạo trước mốc cutoff
	PendingBefore(ctx context.Context, cutoff time.Time) ([]model.Booking, error)
}

type PromotionStore interface {
	// ActiveByCode trả (nil, nil) khi không có mã active trùng khớp
	ActiveByCode(ctx context.Context, code string) (*model.Promotion, error)
	IncrementUsage(ctx context.Context, id uint) error
}

type PaymentStore interface {
	Create(ctx context.Context, p *model.Payment) error
}

type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
}

// Stores gom toàn bộ cổng DB mà Service cần
type Stores struct {
	Showtimes     ShowtimeStore
	Seats         SeatStore
	Tickets       TicketStore
	Holds         HoldStore
	Bookings      BookingStore
	Promotions    PromotionStore
	Payments      PaymentStore
	Notifications NotificationStore
}

// Package repository cài các store của booking trên GORM/Postgres. Mỗi store
// nhận *gorm.DB bơm từ ngoài vào, không đụng global. Lỗi duplicate key do
// index unique partial được dịch thành booking.ErrHoldConflict để tầng
// service xử lý race.
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"cinema_booking/booking"
	"cinema_booking/model"
)

// NewStores gom đủ bộ store cho booking.NewService.
func NewStores(db *gorm.DB) booking.Stores {
	return booking.Stores{
		Showtimes:     ShowtimeRepo{db},
		Seats:         SeatRepo{db},
		Tickets:       TicketRepo{db},
		Holds:         HoldRepo{db},
		Bookings:      BookingRepo{db},
		Promotions:    PromotionRepo{db},
		Payments:      PaymentRepo{db},
		Notifications: NotificationRepo{db},
	}
}

// translate đổi lỗi GORM sang vocab của booking. Cần gorm.Config
// TranslateError để driver postgres trả về gorm.ErrDuplicatedKey.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return booking.ErrHoldConflict
	}
	return err
}

type ShowtimeRepo struct {
	db *gorm.DB
}

func (r ShowtimeRepo) ByID(ctx context.Context, id uint) (*model.Showtime, error) {
	var showtime model.Showtime
	err := r.db.WithContext(ctx).Preload("Movie").Preload("Room").First(&showtime, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &showtime, nil
}

type SeatRepo struct {
	db *gorm.DB
}

func (r SeatRepo) ByRoom(ctx context.Context, roomId uint) ([]model.Seat, error) {
	var seats []model.Seat
	err := r.db.WithContext(ctx).Preload("SeatType").
		Where("room_id = ?", roomId).
		Order("seat_row, seat_number").
		Find(&seats).Error
	return seats, err
}

func (r SeatRepo) ByIDs(ctx context.Context, ids []uint) ([]model.Seat, error) {
	var seats []model.Seat
	err := r.db.WithContext(ctx).Preload("SeatType").
		Where("id IN ?", ids).
		Find(&seats).Error
	return seats, err
}

type TicketRepo struct {
	db *gorm.DB
}

func (r TicketRepo) ActiveByShowtime(ctx context.Context, showtimeId uint) ([]model.Ticket, error) {
	var tickets []model.Ticket
	err := r.db.WithContext(ctx).
		Where("showtime_id = ? AND status <> ?", showtimeId, model.TicketCancelled).
		Find(&tickets).Error
	return tickets, err
}

func (r TicketRepo) ActiveBySeats(ctx context.Context, showtimeId uint, seatIds []uint) ([]model.Ticket, error) {
	var tickets []model.Ticket
	err := r.db.WithContext(ctx).
		Where("showtime_id = ? AND seat_id IN ? AND status <> ?", showtimeId, seatIds, model.TicketCancelled).
		Find(&tickets).Error
	return tickets, err
}

func (r TicketRepo) ByBooking(ctx context.Context, bookingId uint) ([]model.Ticket, error) {
	var tickets []model.Ticket
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingId).
		Order("seat_id").
		Find(&tickets).Error
	return tickets, err
}

func (r TicketRepo) CancelByBooking(ctx context.Context, bookingId uint) error {
	return r.db.WithContext(ctx).Model(&model.Ticket{}).
		Where("booking_id = ?", bookingId).
		Update("status", model.TicketCancelled).Error
}

type HoldRepo struct {
	db *gorm.DB
}

func (r HoldRepo) ActiveByShowtime(ctx context.Context, showtimeId uint, now time.Time) ([]model.SeatHold, error) {
	var holds []model.SeatHold
	err := r.db.WithContext(ctx).
		Where("showtime_id = ? AND status = ? AND hold_until > ?", showtimeId, model.HoldStatusHolding, now).
		Find(&holds).Error
	return holds, err
}

func (r HoldRepo) ActiveBySeats(ctx context.Context, showtimeId uint, seatIds []uint, now time.Time) ([]model.SeatHold, error) {
	var holds []model.SeatHold
	err := r.db.WithContext(ctx).
		Where("showtime_id = ? AND seat_id IN ? AND status = ? AND hold_until > ?", showtimeId, seatIds, model.HoldStatusHolding, now).
		Find(&holds).Error
	return holds, err
}

func (r HoldRepo) ActiveByUser(ctx context.Context, showtimeId, userId uint, now time.Time) ([]model.SeatHold, error) {
	var holds []model.SeatHold
	err := r.db.WithContext(ctx).
		Where("showtime_id = ? AND user_id = ? AND status = ? AND hold_until > ?", showtimeId, userId, model.HoldStatusHolding, now).
		Find(&holds).Error
	return holds, err
}

// Create insert cả lô trong một statement: một ghế đụng index unique là cả lô
// rollback, không giữ lẻ.
func (r HoldRepo) Create(ctx context.Context, holds []model.SeatHold) error {
	return translate(r.db.WithContext(ctx).Create(&holds).Error)
}

func (r HoldRepo) DeleteExpiredBySeats(ctx context.Context, showtimeId uint, seatIds []uint, now time.Time) error {
	return r.db.WithContext(ctx).
		Where("showtime_id = ? AND seat_id IN ? AND status = ? AND hold_until <= ?", showtimeId, seatIds, model.HoldStatusHolding, now).
		Delete(&model.SeatHold{}).Error
}

func (r HoldRepo) DeleteOwned(ctx context.Context, showtimeId uint, seatIds []uint, userId uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("showtime_id = ? AND seat_id IN ? AND user_id = ? AND status = ?", showtimeId, seatIds, userId, model.HoldStatusHolding).
		Delete(&model.SeatHold{})
	return result.RowsAffected, result.Error
}

func (r HoldRepo) DeleteConfirmedBySeats(ctx context.Context, showtimeId uint, seatIds []uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("showtime_id = ? AND seat_id IN ? AND status = ?", showtimeId, seatIds, model.HoldStatusConfirmed).
		Delete(&model.SeatHold{})
	return result.RowsAffected, result.Error
}

func (r HoldRepo) Confirm(ctx context.Context, showtimeId uint, seatIds []uint, userId uint) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.SeatHold{}).
		Where("showtime_id = ? AND seat_id IN ? AND user_id = ? AND status = ?", showtimeId, seatIds, userId, model.HoldStatusHolding).
		Update("status", model.HoldStatusConfirmed)
	return result.RowsAffected, result.Error
}

func (r HoldRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND hold_until <= ?", model.HoldStatusHolding, now).
		Delete(&model.SeatHold{})
	return result.RowsAffected, result.Error
}

type BookingRepo struct {
	db *gorm.DB
}

// Create ghi booking và vé trong một transaction: vé đụng uniq_sold_seat thì
// booking cũng không được ghi.
func (r BookingRepo) Create(ctx context.Context, b *model.Booking, tickets []model.Ticket) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		for i := range tickets {
			tickets[i].BookingId = b.ID
		}
		return tx.Create(&tickets).Error
	})
	return translate(err)
}

func (r BookingRepo) ByID(ctx context.Context, id uint) (*model.Booking, error) {
	var b model.Booking
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r BookingRepo) SetPaid(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": model.BookingPaid, "paid_at": at}).Error
}

func (r BookingRepo) SetCancelled(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": model.BookingCancelled, "cancelled_at": at}).Error
}

func (r BookingRepo) SetExpired(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", id).
		Update("status", model.BookingExpired).Error
}

func (r BookingRepo) PendingBefore(ctx context.Context, cutoff time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND booking_time < ?", model.BookingPending, cutoff).
		Find(&bookings).Error
	return bookings, err
}

type PromotionRepo struct {
	db *gorm.DB
}

func (r PromotionRepo) ActiveByCode(ctx context.Context, code string) (*model.Promotion, error) {
	var promo model.Promotion
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&promo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r PromotionRepo) IncrementUsage(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Promotion{}).
		Where("id = ?", id).
		Update("used_count", gorm.Expr("used_count + 1")).Error
}

type PaymentRepo struct {
	db *gorm.DB
}

func (r PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

type NotificationRepo struct {
	db *gorm.DB
}

func (r NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

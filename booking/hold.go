package booking

import (
	"context"
	"errors"
	"time"

	"cinema_booking/model"
)

// HoldSeats giữ cả lô ghế cho user trong holdMinutes phút (0 = mặc định).
// All-or-nothing: một ghế kẹt là cả lô fail, không giữ lẻ.
//
// Giữa bước check và bước insert có cửa sổ cho request khác chen vào — chấp
// nhận, vì insert đụng unique index sẽ fail và được dịch lại thành
// SeatsUnavailableError sau khi check lại. Check trước chỉ để fail sớm.
func (s *Service) HoldSeats(ctx context.Context, showtimeId uint, seatIds []uint, userId uint, holdMinutes int) error {
	if len(seatIds) == 0 {
		return ErrNoSeatsRequested
	}

	showtime, err := s.stores.Showtimes.ByID(ctx, showtimeId)
	if err != nil {
		return err
	}
	if showtime == nil {
		return ErrShowtimeNotFound
	}

	check, err := s.CheckSeatsAvailable(ctx, showtimeId, seatIds)
	if err != nil {
		return err
	}
	if !check.AllAvailable {
		return &SeatsUnavailableError{SeatIds: check.UnavailableSeats}
	}

	now := s.clock.Now()

	// Hold quá hạn vẫn nằm trong DB (status HOLDING) thì index unique sẽ chặn
	// insert dù ghế đã tự do về mặt logic. Dọn trước cho đúng các ghế này.
	if err := s.stores.Holds.DeleteExpiredBySeats(ctx, showtimeId, seatIds, now); err != nil {
		return err
	}

	ttl := s.holdTTL
	if holdMinutes > 0 {
		ttl = time.Duration(holdMinutes) * time.Minute
	}
	holdUntil := now.Add(ttl)

	holds := make([]model.SeatHold, 0, len(seatIds))
	for _, seatId := range seatIds {
		holds = append(holds, model.SeatHold{
			ShowtimeId: showtimeId,
			SeatId:     seatId,
			UserId:     userId,
			HoldUntil:  holdUntil,
			Status:     model.HoldStatusHolding,
		})
	}

	if err := s.stores.Holds.Create(ctx, holds); err != nil {
		if errors.Is(err, ErrHoldConflict) {
			// Thua race: check lại để báo đúng ghế nào bị giành mất
			recheck, cerr := s.CheckSeatsAvailable(ctx, showtimeId, seatIds)
			if cerr == nil && len(recheck.UnavailableSeats) > 0 {
				return &SeatsUnavailableError{SeatIds: recheck.UnavailableSeats}
			}
			return &SeatsUnavailableError{SeatIds: seatIds}
		}
		return err
	}

	s.seatsChanged(showtimeId)
	return nil
}

// ReleaseSeats trả ghế user đang giữ. Idempotent: thả ghế đã thả rồi hoặc đã
// hết hạn là no-op chứ không phải lỗi.
func (s *Service) ReleaseSeats(ctx context.Context, showtimeId uint, seatIds []uint, userId uint) error {
	if len(seatIds) == 0 {
		return ErrNoSeatsRequested
	}
	deleted, err := s.stores.Holds.DeleteOwned(ctx, showtimeId, seatIds, userId)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.seatsChanged(showtimeId)
	}
	return nil
}

// ConfirmSeats chốt hold HOLDING của user thành CONFIRMED, không tạo mới.
func (s *Service) ConfirmSeats(ctx context.Context, showtimeId uint, seatIds []uint, userId uint) error {
	if len(seatIds) == 0 {
		return ErrNoSeatsRequested
	}
	_, err := s.stores.Holds.Confirm(ctx, showtimeId, seatIds, userId)
	return err
}

// CleanupExpiredHolds là sweep định kỳ dọn hold quá hạn. Chỉ là garbage
// collection: mọi đường đọc/ghi đều tự lọc theo holdUntil nên hệ thống không
// phụ thuộc vào timing của sweep.
func (s *Service) CleanupExpiredHolds(ctx context.Context) (int64, error) {
	return s.stores.Holds.DeleteExpired(ctx, s.clock.Now())
}

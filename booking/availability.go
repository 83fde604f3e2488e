package booking

import (
	"context"
	"time"

	"cinema_booking/model"
)

const (
	SeatAvailable = "AVAILABLE"
	SeatHeld      = "HELD"
	SeatBooked    = "BOOKED"
)

// SeatStatus là trạng thái sống của 1 ghế trong 1 suất chiếu
type SeatStatus struct {
	SeatId     uint       `json:"seatId"`
	SeatRow    string     `json:"seatRow"`
	SeatNumber int        `json:"seatNumber"`
	SeatType   string     `json:"seatType"`
	Price      int64      `json:"price"`
	Status     string     `json:"status"`
	HeldBy     *uint      `json:"heldBy,omitempty"`
	HoldUntil  *time.Time `json:"holdUntil,omitempty"`
}

type CheckResult struct {
	AllAvailable     bool   `json:"allAvailable"`
	AvailableSeats   []uint `json:"availableSeats"`
	UnavailableSeats []uint `json:"unavailableSeats"`
}

// GetAvailability trả về trạng thái mọi ghế của phòng chiếu suất đó.
// Vé chưa hủy = BOOKED; hold HOLDING còn hạn = HELD; còn lại AVAILABLE.
// BOOKED thắng HELD khi 1 ghế dính cả hai (hold rác chưa kịp dọn).
// Chỉ đọc, không ghi gì.
func (s *Service) GetAvailability(ctx context.Context, showtimeId uint) ([]SeatStatus, error) {
	showtime, err := s.stores.Showtimes.ByID(ctx, showtimeId)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, ErrShowtimeNotFound
	}

	seats, err := s.stores.Seats.ByRoom(ctx, showtime.RoomId)
	if err != nil {
		return nil, err
	}

	tickets, err := s.stores.Tickets.ActiveByShowtime(ctx, showtimeId)
	if err != nil {
		return nil, err
	}
	booked := make(map[uint]bool, len(tickets))
	for _, t := range tickets {
		booked[t.SeatId] = true
	}

	// Lọc theo holdUntil > now ngay tại đây: không tin sweep chạy kịp
	now := s.clock.Now()
	holds, err := s.stores.Holds.ActiveByShowtime(ctx, showtimeId, now)
	if err != nil {
		return nil, err
	}
	held := make(map[uint]model.SeatHold, len(holds))
	for _, h := range holds {
		held[h.SeatId] = h
	}

	statuses := make([]SeatStatus, 0, len(seats))
	for _, seat := range seats {
		st := SeatStatus{
			SeatId:     seat.ID,
			SeatRow:    seat.SeatRow,
			SeatNumber: seat.SeatNumber,
			SeatType:   seat.SeatType.Code,
			Price:      SeatPrice(showtime.BasePrice, seat.SeatType.PriceMultiplier),
			Status:     SeatAvailable,
		}
		if booked[seat.ID] {
			st.Status = SeatBooked
		} else if h, ok := held[seat.ID]; ok {
			st.Status = SeatHeld
			userId := h.UserId
			holdUntil := h.HoldUntil
			st.HeldBy = &userId
			st.HoldUntil = &holdUntil
		}
		statuses = append(statuses, st)
	}

	return statuses, nil
}

// CheckSeatsAvailable kiểm tra nhanh các ghế được yêu cầu. Kết quả chỉ mang
// tính tham khảo để fail sớm: nguồn sự thật vẫn là ràng buộc unique lúc
// insert hold.
func (s *Service) CheckSeatsAvailable(ctx context.Context, showtimeId uint, seatIds []uint) (CheckResult, error) {
	if len(seatIds) == 0 {
		return CheckResult{}, ErrNoSeatsRequested
	}

	tickets, err := s.stores.Tickets.ActiveBySeats(ctx, showtimeId, seatIds)
	if err != nil {
		return CheckResult{}, err
	}
	holds, err := s.stores.Holds.ActiveBySeats(ctx, showtimeId, seatIds, s.clock.Now())
	if err != nil {
		return CheckResult{}, err
	}

	unavailable := make(map[uint]bool)
	for _, t := range tickets {
		unavailable[t.SeatId] = true
	}
	for _, h := range holds {
		unavailable[h.SeatId] = true
	}

	result := CheckResult{
		AvailableSeats:   []uint{},
		UnavailableSeats: []uint{},
	}
	for _, id := range seatIds {
		if unavailable[id] {
			result.UnavailableSeats = append(result.UnavailableSeats, id)
		} else {
			result.AvailableSeats = append(result.AvailableSeats, id)
		}
	}
	result.AllAvailable = len(result.UnavailableSeats) == 0

	return result, nil
}
